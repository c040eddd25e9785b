// Package auth supplies the bearer token the remote store expects.
// Token acquisition itself (the OAuth dance) happens outside this
// program; the user stores the resulting token and this package hands it
// out and drops it again when the remote store reports it expired.
package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/estudiarq/archisheets/internal/sheets"
)

// ErrNoCredential indicates no token is stored. The user must log in.
var ErrNoCredential = errors.New("no stored credential, run 'archisheets login'")

// CredentialProvider hands out the current bearer token.
type CredentialProvider interface {
	// Token returns the stored bearer token, or ErrNoCredential.
	Token() (string, error)

	// Save replaces the stored token.
	Save(token string) error

	// Clear drops the stored token. Clearing an empty store is a no-op.
	Clear() error
}

// FileTokenStore keeps the token in a mode-0600 file, the CLI analogue
// of the browser app's local storage.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore creates a store at the given path.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (s *FileTokenStore) Token() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoCredential
		}
		return "", fmt.Errorf("reading credential: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoCredential
	}
	return token, nil
}

func (s *FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating credential directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(strings.TrimSpace(token)+"\n"), 0600); err != nil {
		return fmt.Errorf("storing credential: %w", err)
	}
	return nil
}

func (s *FileTokenStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clearing credential: %w", err)
	}
	return nil
}

// HandleRemoteError translates a remote-store failure into the action the
// caller should surface. An unauthorized response clears the stored
// credential so the next command prompts for a fresh login; every other
// error passes through unchanged.
func HandleRemoteError(provider CredentialProvider, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sheets.ErrUnauthorized) {
		if clearErr := provider.Clear(); clearErr != nil {
			return fmt.Errorf("%w (and clearing credential failed: %v)", err, clearErr)
		}
		return fmt.Errorf("%w: credential cleared, log in again", err)
	}
	return err
}
