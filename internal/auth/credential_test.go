package auth

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estudiarq/archisheets/internal/sheets"
)

func newTestStore(t *testing.T) *FileTokenStore {
	t.Helper()
	return NewFileTokenStore(filepath.Join(t.TempDir(), "creds", "token"))
}

func TestFileTokenStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Token()
	assert.ErrorIs(t, err, ErrNoCredential)

	require.NoError(t, store.Save("ya29.secret"))

	token, err := store.Token()
	require.NoError(t, err)
	assert.Equal(t, "ya29.secret", token)
}

func TestFileTokenStore_SaveTrimsWhitespace(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save("  ya29.secret \n"))

	token, err := store.Token()
	require.NoError(t, err)
	assert.Equal(t, "ya29.secret", token)
}

func TestFileTokenStore_Clear(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save("ya29.secret"))
	require.NoError(t, store.Clear())

	_, err := store.Token()
	assert.ErrorIs(t, err, ErrNoCredential)

	// Clearing again is a no-op.
	assert.NoError(t, store.Clear())
}

func TestFileTokenStore_FileMode(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save("ya29.secret"))

	info, err := os.Stat(store.path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestHandleRemoteError_UnauthorizedClearsCredential(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save("ya29.expired"))

	err := HandleRemoteError(store, sheets.ErrUnauthorized)
	require.Error(t, err)
	assert.ErrorIs(t, err, sheets.ErrUnauthorized)

	_, err = store.Token()
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestHandleRemoteError_OtherErrorsPassThrough(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save("ya29.valid"))

	cause := errors.New("network down")
	err := HandleRemoteError(store, cause)
	assert.Equal(t, cause, err)

	token, tokenErr := store.Token()
	require.NoError(t, tokenErr)
	assert.Equal(t, "ya29.valid", token)
}

func TestHandleRemoteError_Nil(t *testing.T) {
	assert.NoError(t, HandleRemoteError(newTestStore(t), nil))
}
