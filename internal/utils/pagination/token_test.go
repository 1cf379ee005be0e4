package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	createdAt := time.Date(2024, 3, 1, 9, 15, 30, 123456789, time.UTC)
	ref := "6f1c2a0e-5a6b-4c1d-9e7f-0a1b2c3d4e5f"

	token := EncodeToken(createdAt, ref)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedAt, decodedRef, err := DecodeToken(token)
	assert.NoError(t, err)
	assert.Equal(t, createdAt, decodedAt)
	assert.Equal(t, ref, decodedRef)

	// Non-UTC input comes back normalised to UTC
	local := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("WAT", 3600))
	decodedLocal, _, err := DecodeToken(EncodeToken(local, ref))
	assert.NoError(t, err)
	assert.True(t, local.Equal(decodedLocal))
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	noSeparator := base64.URLEncoding.EncodeToString([]byte("2024-03-01T09:15:30Z"))
	_, _, err = DecodeToken(noSeparator)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	badDate := base64.URLEncoding.EncodeToString([]byte("notadate|abc"))
	_, _, err = DecodeToken(badDate)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "created_at parse")
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, ClampLimit(0))
	assert.Equal(t, DefaultLimit, ClampLimit(-5))
	assert.Equal(t, 7, ClampLimit(7))
	assert.Equal(t, MaxLimit, ClampLimit(1000))
}
