package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type createBookingPayload struct {
	CustomerName  string  `json:"customer_name" validate:"required"`
	CustomerEmail string  `json:"customer_email" validate:"required,email"`
	Amount        float64 `json:"amount" validate:"gt=0"`
}

func TestValidateStructPasses(t *testing.T) {
	err := ValidateStruct(createBookingPayload{
		CustomerName:  "Jordan Smith",
		CustomerEmail: "jordan@example.com",
		Amount:        120.50,
	})
	require.NoError(t, err)
}

func TestValidateStructReportsJSONFieldNames(t *testing.T) {
	err := ValidateStruct(createBookingPayload{
		CustomerEmail: "not-an-email",
	})
	require.Error(t, err)

	ve, ok := err.(ValidationErrors)
	require.True(t, ok)
	require.Len(t, ve, 3)

	fields := map[string]string{}
	for _, failure := range ve {
		fields[failure.Field] = failure.Tag
	}
	require.Equal(t, "required", fields["customer_name"])
	require.Equal(t, "email", fields["customer_email"])
	require.Equal(t, "gt", fields["amount"])
}

func TestValidationErrorsMessage(t *testing.T) {
	ve := ValidationErrors{
		{Field: "amount", Tag: "gt", Param: "0"},
	}
	require.Equal(t, "amount failed on gt=0", ve.Error())
	require.Equal(t, "validation failed", ValidationErrors{}.Error())
}
