package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
)

const sessionFile = "session.json"

// Profile is the user blob returned by the login endpoint.
type Profile struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Session holds the bearer token and user profile for one logged-in user.
// It is passed explicitly into the API client and the command guards; there
// is no ambient global state.
type Session struct {
	Token *oauth2.Token `json:"token"`
	User  Profile       `json:"user"`
}

// LoggedIn reports whether the session carries a usable token. An expired
// token counts as logged out.
func (s *Session) LoggedIn() bool {
	return s != nil && s.Token != nil && s.Token.Valid()
}

// IsAdmin reports whether the session's user may use the admin surface.
func (s *Session) IsAdmin() bool {
	return s != nil && strings.EqualFold(s.User.Role, "admin")
}

// Bearer returns the raw access token for the Authorization header, or an
// empty string when logged out.
func (s *Session) Bearer() string {
	if s == nil || s.Token == nil {
		return ""
	}
	return s.Token.AccessToken
}

// DefaultDir returns the storage directory for session state (~/.worklog).
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("os.UserHomeDir: %w", err)
	}
	return filepath.Join(home, ".worklog"), nil
}

// Load reads the stored session from dir. A missing file means nobody is
// logged in and returns (nil, nil).
func Load(dir string) (*Session, error) {
	path := filepath.Join(dir, sessionFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}
	return &sess, nil
}

// Save writes the session to dir, creating the directory if needed. The file
// holds a bearer token, so permissions stay owner-only.
func (s *Session) Save(dir string) error {
	if err := ensureDir(dir); err != nil {
		return fmt.Errorf("ensureDir: %w", err)
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	path := filepath.Join(dir, sessionFile)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("os.WriteFile: %w", err)
	}
	return nil
}

// Clear removes the stored session. Clearing an absent session is fine.
func Clear(dir string) error {
	path := filepath.Join(dir, sessionFile)
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("os.Remove: %w", err)
	}
	return nil
}

func ensureDir(dir string) error {
	finfo, err := os.Stat(dir)
	if err == nil && !finfo.IsDir() {
		return fmt.Errorf("session storage path %s is not a directory", dir)
	}

	if err != nil && os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("os.MkdirAll(%s): %w", dir, err)
		}
		return nil
	}

	if err != nil {
		return fmt.Errorf("os.Stat: %w", err)
	}
	return nil
}
