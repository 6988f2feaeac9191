package lox

// MapErr maps collection with iteratee and stops at the first error,
// reporting the index of the offending item.
func MapErr[T, R any](collection []T, iteratee func(item T) (R, error)) ([]R, error) {
	var err error

	result := make([]R, len(collection))

	for i, item := range collection {
		result[i], err = iteratee(item)
		if err != nil {
			return nil, &ItemError{Index: i, Err: err}
		}
	}

	return result, nil
}
