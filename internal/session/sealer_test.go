package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealer_RoundTrip(t *testing.T) {
	s, err := NewSealer([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	sealed, err := s.Seal("header.payload.sig")
	require.NoError(t, err)
	assert.NotEqual(t, "header.payload.sig", sealed)

	opened, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "header.payload.sig", opened)
}

func TestSealer_RejectsTamperingAndPlaintext(t *testing.T) {
	s, err := NewSealer([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	_, err = s.Open("header.payload.sig")
	assert.ErrorIs(t, err, ErrUnsealed)

	sealed, err := s.Seal("tok")
	require.NoError(t, err)
	tampered := sealed[:len(sealed)-2] + "AA"
	if tampered == sealed {
		tampered = sealed[:len(sealed)-2] + "BB"
	}
	_, err = s.Open(tampered)
	assert.Error(t, err)
}

func TestSealer_NilPassesThrough(t *testing.T) {
	s, err := NewSealer(nil)
	require.NoError(t, err)
	assert.Nil(t, s)

	v, err := s.Seal("tok")
	require.NoError(t, err)
	assert.Equal(t, "tok", v)

	_, err = NewSealer([]byte("short"))
	assert.Error(t, err)
}
