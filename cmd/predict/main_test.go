package main

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"diagnosis_api/pkg/lox"
)

func TestParseFeatures(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name     string
		args     []string
		expected []float64
		errIs    error
	}{
		{name: "Comma separated", args: []string{"17.99,10.38,122.8"}, expected: []float64{17.99, 10.38, 122.8}},
		{name: "Whitespace separated", args: []string{"17.99 10.38\t122.8"}, expected: []float64{17.99, 10.38, 122.8}},
		{name: "Mixed across arguments", args: []string{"17.99,", "10.38", ", 1e3"}, expected: []float64{17.99, 10.38, 1000}},
		{name: "Not a number", args: []string{"1,abc"}, errIs: strconv.ErrSyntax},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			features, err := parseFeatures(tc.args)

			if tc.errIs != nil {
				rq.ErrorIs(err, tc.errIs)

				var itemErr *lox.ItemError

				rq.ErrorAs(err, &itemErr)
				rq.Equal(1, itemErr.Index)

				return
			}

			rq.NoError(err)
			rq.Equal(tc.expected, features)
		})
	}

	_, err := parseFeatures([]string{" , "})
	rq.EqualError(err, "no feature values given")
}
