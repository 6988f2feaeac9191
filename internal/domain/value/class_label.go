package value

import "fmt"

// ClassLabel бинарный диагноз: 0 злокачественная, 1 доброкачественная опухоль.
type ClassLabel int

const (
	LabelMalignant ClassLabel = 0
	LabelBenign    ClassLabel = 1
)

// ParseClassLabel принимает только метки бинарного классификатора.
func ParseClassLabel(label int) (ClassLabel, error) {
	switch ClassLabel(label) {
	case LabelMalignant, LabelBenign:
		return ClassLabel(label), nil
	default:
		return 0, fmt.Errorf("class label %d is not binary", label)
	}
}

func (l ClassLabel) Int() int {
	return int(l)
}

func (l ClassLabel) String() string {
	switch l {
	case LabelMalignant:
		return "malignant"
	case LabelBenign:
		return "benign"
	default:
		return fmt.Sprintf("unknown(%d)", int(l))
	}
}
