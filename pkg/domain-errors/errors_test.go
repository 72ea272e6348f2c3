package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	err := New(CodeNotFound, "charity not found")

	assert.True(t, HasCode(err, CodeNotFound))
	assert.False(t, HasCode(err, CodeUnauthorized))
	assert.False(t, HasCode(errors.New("plain"), CodeNotFound))
	assert.False(t, HasCode(nil, CodeNotFound))
}

func TestHasCode_Wrapped(t *testing.T) {
	inner := New(CodeIllegalTransition, "cannot transition donation from COMPLETED to PENDING")
	outer := fmt.Errorf("update donation: %w", inner)

	assert.True(t, HasCode(outer, CodeIllegalTransition))
	assert.Equal(t, CodeIllegalTransition, CodeOf(outer))
}

func TestCodeOf_DefaultsToInternal(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(errors.New("pool exhausted")))
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeInternal, "storage failure")

	assert.Equal(t, "storage failure", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestNewValidation(t *testing.T) {
	err := NewValidation([]Violation{
		{Field: "amount", Reason: "must be positive"},
		{Field: "currency", Reason: "must not be empty"},
	})

	assert.Equal(t, CodeValidation, CodeOf(err))
	assert.Len(t, ViolationsOf(err), 2)
	assert.Nil(t, ViolationsOf(New(CodeNotFound, "x")))
}
