package middleware

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validationFixture struct {
	Email string `json:"email" binding:"required,email"`
	Age   int    `json:"age" binding:"gte=18"`
}

func TestSetupValidator_UsesJSONTagNames(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	err := v.Struct(validationFixture{Email: "not-an-email", Age: 10})
	require.Error(t, err)

	details := FormatValidationErrors(err)
	require.Len(t, details, 2)
	assert.Equal(t, "email", details[0].Field)
	assert.Equal(t, "Invalid email format", details[0].Message)
	assert.Equal(t, "age", details[1].Field)
	assert.Equal(t, "Must be greater than or equal to 18", details[1].Message)
}

func TestFormatValidationErrors_NonValidatorError(t *testing.T) {
	details := FormatValidationErrors(assert.AnError)
	assert.Empty(t, details)
}
