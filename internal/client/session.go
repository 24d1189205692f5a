package client

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/fakturan-app/pricelist-api/internal/http/handlers"
)

// Session is the locally persisted login state: the bearer token and the
// cached user profile, the file-based stand-in for browser local storage.
type Session struct {
	Token string            `json:"token"`
	User  handlers.AuthUser `json:"user"`
}

// LoadSession reads a saved session. A missing file is not an error; it
// just means nobody is logged in.
func LoadSession(path string) (Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Session{}, nil
		}
		return Session{}, err
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, err
	}
	return s, nil
}

// Save writes the session to disk, readable only by the owner.
func (s Session) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Clear removes the saved session; logging out is purely a client-side
// discard, the token itself stays valid until it expires.
func (s *Session) Clear(path string) error {
	s.Token = ""
	s.User = handlers.AuthUser{}
	err := os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
