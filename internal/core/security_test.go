// AngelaMos | 2026
// security_test.go

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Str0ngPass")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotContains(t, hash, "Str0ngPass")

	valid, err := VerifyPassword("Str0ngPass", hash)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = VerifyPassword("WrongPass1", hash)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	first, err := HashPassword("Str0ngPass")
	require.NoError(t, err)

	second, err := HashPassword("Str0ngPass")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

// A nil hash must still burn a verification so missing accounts are not
// distinguishable by response time.
func TestVerifyPasswordTimingSafeNilHash(t *testing.T) {
	valid, _, err := VerifyPasswordTimingSafe("whatever", nil)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Str0ngPass", false},
		{"too short", "Ab1x", true},
		{"no uppercase", "str0ngpass", true},
		{"no lowercase", "STR0NGPASS", true},
		{"no digit", "StrongPass", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePasswordStrength(tt.password)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsAppError(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAppErrorWrapping(t *testing.T) {
	appErr := NotFoundError("booking")

	assert.ErrorIs(t, appErr, ErrNotFound)
	assert.True(t, IsAppError(appErr))
	assert.Equal(t, 404, appErr.Status)

	assert.False(t, IsAppError(ErrNotFound))
}

func TestAuthErrorStatusSplit(t *testing.T) {
	// Missing credentials are 401; bad credentials are 403. Clients rely on
	// the split to decide between "log in" and "session is stale".
	assert.Equal(t, 401, UnauthorizedError("").Status)
	assert.Equal(t, 403, TokenInvalidError().Status)
	assert.Equal(t, 403, TokenExpiredError().Status)
	assert.ErrorIs(t, TokenExpiredError(), ErrTokenExpired)
}
