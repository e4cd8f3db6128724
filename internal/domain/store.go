package domain

import (
	"errors"
	"fmt"
	"strings"
)

const SessionExt = ".json"

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrInvalidSessionName = errors.New("invalid session name")
)

// SessionStore persists named conversations. Save overwrites an existing
// session with the same normalised name and returns the name it was stored
// under.
type SessionStore interface {
	Save(name string, conv *Conversation) (string, error)
	List() ([]string, error)
	Load(name string) (*Conversation, error)
}

// NormalizeSessionName trims the name and makes it carry the .json suffix
// exactly once.
func NormalizeSessionName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q contains a path separator", ErrInvalidSessionName, name)
	}
	if !strings.HasSuffix(name, SessionExt) {
		name += SessionExt
	}
	if name == SessionExt || name == "."+SessionExt || name == ".."+SessionExt {
		return "", fmt.Errorf("%w: empty name", ErrInvalidSessionName)
	}
	return name, nil
}
