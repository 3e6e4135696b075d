// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validationSample struct {
	Mobile   string `json:"mobile" validate:"required,mobile"`
	Payment  string `json:"payment_method" validate:"required,payment_method"`
	Kind     string `json:"address_type" validate:"required,address_type"`
	Complain string `json:"type" validate:"omitempty,complaint_type"`
}

func TestValidateStruct(t *testing.T) {
	valid := validationSample{Mobile: "+919876543210", Payment: "UPI", Kind: "Work", Complain: "Wrong Item"}
	assert.NoError(t, ValidateStruct(valid))

	invalid := validationSample{Mobile: "12345", Payment: "Cash", Kind: "Office", Complain: "Rude"}
	err := ValidateStruct(invalid)
	require.Error(t, err)

	errs := GetValidationErrors(err)
	require.Len(t, errs, 4)

	byField := make(map[string]ValidationError, len(errs))
	for _, e := range errs {
		byField[e.Field] = e
	}
	assert.Equal(t, "Mobile number must be 10 to 13 digits", byField["mobile"].Message)
	assert.Equal(t, "payment_method must be one of: COD, UPI, CreditCard, DebitCard", byField["payment_method"].Message)
	assert.Equal(t, "address_type", byField["address_type"].Tag)
}
