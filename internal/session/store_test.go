package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wisata/internal/sentinel"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemory()

	_, err := store.Read()
	assert.ErrorIs(t, err, sentinel.ErrNoSession)

	rec := Record{Token: "t1", User: []byte(`{"id":1}`), EmailVerified: true}
	require.NoError(t, store.Write(rec))

	got, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, "t1", got.Token)
	assert.JSONEq(t, `{"id":1}`, string(got.User))
	assert.True(t, got.EmailVerified)

	require.NoError(t, store.Clear())
	_, err = store.Read()
	assert.ErrorIs(t, err, sentinel.ErrNoSession)
}

func TestMemoryStoreCopiesUserBytes(t *testing.T) {
	store := NewMemory()
	user := []byte(`{"id":1}`)
	require.NoError(t, store.Write(Record{Token: "t1", User: user}))

	user[0] = 'X'

	got, err := store.Read()
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1}`, string(got.User))
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session")
	store := NewFile(path, "")

	_, err := store.Read()
	assert.ErrorIs(t, err, sentinel.ErrNoSession)

	rec := Record{Token: "t1", User: []byte(`{"id":1,"role":"user"}`), Device: "Chrome on macOS"}
	require.NoError(t, store.Write(rec))

	got, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, "t1", got.Token)
	assert.Equal(t, "Chrome on macOS", got.Device)

	require.NoError(t, store.Clear())
	_, err = store.Read()
	assert.ErrorIs(t, err, sentinel.ErrNoSession)

	// Clear is idempotent.
	require.NoError(t, store.Clear())
}

func TestFileStoreSealedRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session")
	store := NewFile(path, "passphrase")

	rec := Record{Token: "secret-bearer-token", User: []byte(`{"id":1}`), EmailVerified: true}
	require.NoError(t, store.Write(rec))

	// The on-disk form must not leak the token.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret-bearer-token")

	got, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, rec.Token, got.Token)
	assert.True(t, got.EmailVerified)
}

func TestFileStoreCorruptRecordIsClearedAndRecovered(t *testing.T) {
	cases := []struct {
		name string
		key  string
		data string
	}{
		{name: "invalid json", key: "", data: `{"token":`},
		{name: "wrong seal header", key: "passphrase", data: `{"token":"t1"}`},
		{name: "tampered seal", key: "passphrase", data: "v1:aW52YWxpZA"},
		{name: "half pair", key: "", data: `{"token":"t1"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "session")
			require.NoError(t, os.WriteFile(path, []byte(tc.data), 0o600))

			store := NewFile(path, tc.key)
			_, err := store.Read()
			assert.ErrorIs(t, err, sentinel.ErrCorrupt)

			// The corrupt file must be gone so the next read is a clean absence.
			_, err = store.Read()
			assert.ErrorIs(t, err, sentinel.ErrNoSession)
		})
	}
}

func TestFileStoreWrongPassphraseIsCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session")
	require.NoError(t, NewFile(path, "right").Write(Record{Token: "t1", User: []byte(`{}`)}))

	_, err := NewFile(path, "wrong").Read()
	assert.ErrorIs(t, err, sentinel.ErrCorrupt)
}
