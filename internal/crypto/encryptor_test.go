package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validKey() []byte {
	return []byte("12345678901234567890123456789012")
}

func TestNewRejectsWrongKeySize(t *testing.T) {
	_, err := New([]byte("too-short"))
	require.Error(t, err)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	enc, err := New(validKey())
	require.NoError(t, err)

	plaintext := []byte(`{"msg":"hello world"}`)
	ciphertext, err := enc.Encrypt(plaintext)
	require.NoError(t, err)

	got, err := enc.Decrypt(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestEncryptProducesUniqueOutputsForSamePlaintext(t *testing.T) {
	enc, err := New(validKey())
	require.NoError(t, err)

	plaintext := []byte("same message")
	a, err := enc.Encrypt(plaintext)
	require.NoError(t, err)
	b, err := enc.Encrypt(plaintext)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)

	gotA, err := enc.Decrypt(a)
	require.NoError(t, err)
	gotB, err := enc.Decrypt(b)
	require.NoError(t, err)
	assert.Equal(t, plaintext, gotA)
	assert.Equal(t, plaintext, gotB)
}

func TestDecryptRejectsTamperedCiphertext(t *testing.T) {
	enc, err := New(validKey())
	require.NoError(t, err)

	ciphertext, err := enc.Encrypt([]byte("trust me"))
	require.NoError(t, err)
	ciphertext[len(ciphertext)-1] ^= 0xFF

	_, err = enc.Decrypt(ciphertext)
	assert.Error(t, err)
}

func TestDecryptRejectsShortInput(t *testing.T) {
	enc, err := New(validKey())
	require.NoError(t, err)
	_, err = enc.Decrypt([]byte("short"))
	assert.Error(t, err)
}

func TestDecryptRejectsWrongKey(t *testing.T) {
	enc1, err := New(validKey())
	require.NoError(t, err)
	enc2, err := New([]byte("00000000000000000000000000000000"[:32]))
	require.NoError(t, err)

	ciphertext, err := enc1.Encrypt([]byte("secret"))
	require.NoError(t, err)

	_, err = enc2.Decrypt(ciphertext)
	assert.Error(t, err)
}

func TestLineRoundTrip(t *testing.T) {
	enc, err := New(validKey())
	require.NoError(t, err)

	line, err := enc.EncryptToLine([]byte("line payload"))
	require.NoError(t, err)

	got, err := enc.DecryptFromLine(line)
	require.NoError(t, err)
	assert.Equal(t, "line payload", string(got))
}

func TestDisposeZeroesKeyAndRejectsFurtherUse(t *testing.T) {
	enc, err := New(validKey())
	require.NoError(t, err)

	enc.Dispose()

	_, err = enc.Encrypt([]byte("too late"))
	assert.ErrorIs(t, err, ErrDisposed)

	_, err = enc.Decrypt(make([]byte, 40))
	assert.ErrorIs(t, err, ErrDisposed)

	for _, b := range enc.key.bytes {
		assert.Equal(t, byte(0), b)
	}
}

func TestDisposeIsIdempotent(t *testing.T) {
	enc, err := New(validKey())
	require.NoError(t, err)
	enc.Dispose()
	assert.NotPanics(t, func() { enc.Dispose() })
}
