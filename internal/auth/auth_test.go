package auth

import (
	"context"
	"testing"
	"time"

	"github.com/hariharanp05/eaclothingfrontend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestStubVerifierVerify(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	v := &StubVerifier{Now: func() time.Time { return now }}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"valid", "shopper@example.com", "secret1", nil},
		{"bad email", "not-an-email", "secret1", ErrInvalidEmail},
		{"missing domain", "shopper@", "secret1", ErrInvalidEmail},
		{"short password", "shopper@example.com", "abc", ErrPasswordTooShort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := v.Verify(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.email, user.Email)
			assert.Equal(t, "shopper", user.Name) // local part of the address
			assert.Equal(t, now, user.CreatedAt)
			assert.NotEmpty(t, user.ID)
		})
	}
}

func TestStubVerifierSignupPrefersGivenName(t *testing.T) {
	v := &StubVerifier{}

	user, err := v.Signup(context.Background(), "shopper@example.com", "secret1", "Asha Rao")
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", user.Name)

	user, err = v.Signup(context.Background(), "shopper@example.com", "secret1", "  ")
	require.NoError(t, err)
	assert.Equal(t, "shopper", user.Name)
}

func TestApplyProfileUpdate(t *testing.T) {
	user := &models.User{ID: "u1", Email: "shopper@example.com", Name: "Shopper", City: "Chennai"}

	updated := ApplyProfileUpdate(user, ProfileUpdate{Phone: "5551234", City: "Madurai"})
	require.NotNil(t, updated)
	assert.Equal(t, "5551234", updated.Phone)
	assert.Equal(t, "Madurai", updated.City)
	assert.Equal(t, "Shopper", updated.Name) // untouched field survives

	// Original value is not mutated.
	assert.Equal(t, "Chennai", user.City)
}

func TestApplyProfileUpdateNoUser(t *testing.T) {
	assert.Nil(t, ApplyProfileUpdate(nil, ProfileUpdate{Name: "X"}))
}

func TestAdminLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)
	admin := Admin{Email: "admin@eacloth.com", PasswordHash: string(hash)}

	assert.NoError(t, admin.Login("admin@eacloth.com", "hunter22"))
	assert.ErrorIs(t, admin.Login("admin@eacloth.com", "wrong"), ErrInvalidCredentials)
	assert.ErrorIs(t, admin.Login("other@eacloth.com", "hunter22"), ErrInvalidCredentials)
}

func TestAdminLoginUnconfigured(t *testing.T) {
	assert.ErrorIs(t, Admin{}.Login("admin@eacloth.com", "anything"), ErrInvalidCredentials)
}
