package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaintextVerifier(t *testing.T) {
	v := PlaintextVerifier{}

	stored, err := v.Hash("hunter2")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", stored)

	assert.True(t, v.Verify("hunter2", stored))
	assert.False(t, v.Verify("Hunter2", stored))
	assert.False(t, v.Verify("", stored))
}

func TestBcryptVerifier(t *testing.T) {
	v := BcryptVerifier{}

	stored, err := v.Hash("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", stored)

	assert.True(t, v.Verify("hunter2", stored))
	assert.False(t, v.Verify("wrong", stored))
}

func TestNewPasswordVerifier(t *testing.T) {
	assert.IsType(t, BcryptVerifier{}, NewPasswordVerifier("bcrypt"))
	assert.IsType(t, PlaintextVerifier{}, NewPasswordVerifier("plaintext"))
	assert.IsType(t, PlaintextVerifier{}, NewPasswordVerifier(""))
}

func TestPINAuthorizer(t *testing.T) {
	a := NewPINAuthorizer("418667")
	assert.True(t, a.Authorize("418667"))
	assert.False(t, a.Authorize("418668"))
	assert.False(t, a.Authorize(""))

	// an unset PIN authorizes nobody, not everybody
	empty := NewPINAuthorizer("")
	assert.False(t, empty.Authorize(""))
	assert.False(t, empty.Authorize("anything"))
}
