package partition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GooferByte/OfsaaValidator/internal/validator"
)

func TestSplit_Empty(t *testing.T) {
	p := Split(nil, nil)
	assert.Zero(t, p.Total())
}

func TestSplit_NoErrors(t *testing.T) {
	rows := [][]string{{"a"}, {"b"}, {"c"}}
	p := Split(rows, nil)

	assert.Len(t, p.Valid, 3)
	assert.Empty(t, p.Rejected)
	assert.Equal(t, 3, p.Total())
}

func TestSplit_RejectsRowsWithErrors(t *testing.T) {
	rows := [][]string{{"a"}, {"b"}, {"c"}}
	errs := []validator.Error{
		{Row: 2, Column: "V_CODE", Type: validator.ValueMissing, Message: "V_CODE [Value Missing]"},
	}

	p := Split(rows, errs)
	require.Len(t, p.Rejected, 1)
	assert.Equal(t, 1, p.Rejected[0].Index)
	assert.Equal(t, []string{"b"}, p.Rejected[0].Cells)
	assert.Equal(t, "V_CODE: V_CODE [Value Missing]", p.Rejected[0].Reasons)
	assert.Equal(t, 1, p.Rejected[0].ErrorCount)
	assert.Equal(t, [][]string{{"a"}, {"c"}}, p.Valid)
}

func TestSplit_JoinsMultipleReasonsInErrorOrder(t *testing.T) {
	rows := [][]string{{"x", "y"}}
	errs := []validator.Error{
		{Row: 1, Column: "N_AMOUNT", Message: "Invalid NUMBER format"},
		{Row: 1, Column: "N_AMOUNT", Message: "Length exceeds maximum 5 characters"},
		{Row: 1, Column: "V_EMAIL", Message: "Invalid email format"},
	}

	p := Split(rows, errs)
	require.Len(t, p.Rejected, 1)
	assert.Equal(t,
		"N_AMOUNT: Invalid NUMBER format | N_AMOUNT: Length exceeds maximum 5 characters | V_EMAIL: Invalid email format",
		p.Rejected[0].Reasons)
	assert.Equal(t, 3, p.Rejected[0].ErrorCount)
}

func TestSplit_IgnoresOutOfRangeErrors(t *testing.T) {
	rows := [][]string{{"a"}}
	errs := []validator.Error{
		{Row: 0, Column: "X"},  // below range
		{Row: 5, Column: "X"},  // beyond range
	}

	p := Split(rows, errs)
	assert.Len(t, p.Valid, 1)
	assert.Empty(t, p.Rejected)
}

func TestSplit_Idempotent(t *testing.T) {
	rows := [][]string{{"a"}, {"b"}}
	errs := []validator.Error{{Row: 1, Column: "C", Message: "m"}}

	first := Split(rows, errs)
	second := Split(rows, errs)
	assert.Equal(t, first, second)
}
