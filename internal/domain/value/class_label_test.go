package value_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"diagnosis_api/internal/domain/value"
)

func TestParseClassLabel(t *testing.T) {
	rq := require.New(t)

	label, err := value.ParseClassLabel(0)
	rq.NoError(err)
	rq.Equal(value.LabelMalignant, label)
	rq.Equal("malignant", label.String())

	label, err = value.ParseClassLabel(1)
	rq.NoError(err)
	rq.Equal(value.LabelBenign, label)
	rq.Equal(1, label.Int())

	_, err = value.ParseClassLabel(2)
	rq.ErrorContains(err, "class label 2 is not binary")
	rq.Equal("unknown(2)", value.ClassLabel(2).String())
}
