package entity

import "diagnosis_api/internal/domain/value"

// FeatureVector одна строка измерений в порядке обучения модели.
type FeatureVector []float64

func (f FeatureVector) Len() int {
	return len(f)
}

// Prediction результат классификации вместе с признаком попадания в кэш.
type Prediction struct {
	Label    value.ClassLabel
	CacheHit bool
}

// Descriptor описание сервиса для корневого эндпоинта.
type Descriptor struct {
	Status           string
	Message          string
	FeaturesExpected int
}
