package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = Schema{
	{Name: "customerId", Tag: "required", Message: "Please select a customer."},
	{Name: "amount", Tag: "gt=0", Number: true, Message: "Please enter a valid amount."},
	{Name: "status", Tag: "oneof=pending paid", Message: "Please select an invoice status."},
	{Name: "email", Tag: "omitempty,email", Message: "Please enter a valid email."},
}

func TestSchema_Validate_OK(t *testing.T) {
	values, errs := testSchema.Validate(map[string]string{
		"customerId": "c1",
		"amount":     " 12.5 ",
		"status":     "paid",
		"email":      "amy@burns.com",
	})
	require.Nil(t, errs)
	assert.Equal(t, "c1", values.String("customerId"))
	assert.Equal(t, 12.5, values.Float("amount"))
	assert.Equal(t, "paid", values.String("status"))
}

func TestSchema_Validate_FieldErrors(t *testing.T) {
	values, errs := testSchema.Validate(map[string]string{
		"amount": "0",
		"status": "unknown",
		"email":  "not-an-email",
	})
	assert.Nil(t, values)
	assert.Equal(t, []string{"Please select a customer."}, errs["customerId"])
	assert.Equal(t, []string{"Please enter a valid amount."}, errs["amount"])
	assert.Equal(t, []string{"Please select an invoice status."}, errs["status"])
	assert.Equal(t, []string{"Please enter a valid email."}, errs["email"])
}

func TestSchema_Validate_NaN(t *testing.T) {
	_, errs := testSchema.Validate(map[string]string{
		"customerId": "c1",
		"amount":     "abc",
		"status":     "pending",
	})
	assert.Equal(t, []string{NaNMessage}, errs["amount"])
	assert.Len(t, errs, 1)
}

func TestCoerceNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"", 0, true},
		{"   ", 0, true},
		{"42", 42, true},
		{"-1.5", -1.5, true},
		{"1e2", 100, true},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
	}
	for _, tc := range cases {
		got, ok := CoerceNumber(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestFieldErrors_Add(t *testing.T) {
	errs := FieldErrors{}
	errs.Add("name", "a")
	errs.Add("name", "b")
	assert.Equal(t, []string{"a", "b"}, errs["name"])
}
