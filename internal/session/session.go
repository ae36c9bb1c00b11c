package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"core_site_echo/internal/demo"
	"core_site_echo/internal/site"
)

// ErrNotFound is returned by a Store for unknown or expired sessions
var ErrNotFound = errors.New("session not found")

// Session holds the UI state of one browser tab between requests. Tabs of the
// same visitor share ID and are told apart by TabID.
type Session struct {
	ID         string               `json:"id"`
	TabID      string               `json:"tab_id"`
	Navigation site.NavigationState `json:"navigation"`
	Demo       demo.State           `json:"demo"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

// New returns a fresh tab at the entry path with the demo form closed.
// Empty ids are generated.
func New(id, tabID string) *Session {
	if id == "" {
		id = uuid.New().String()
	}
	if tabID == "" {
		tabID = uuid.New().String()
	}
	s := &Session{ID: id, TabID: tabID}
	s.Reset()
	return s
}

// Reset discards all UI state, as a page reload does
func (s *Session) Reset() {
	s.Navigation = site.NavigationState{CurrentPath: site.DefaultPath}
	s.Demo = demo.State{}
}

// ValidID reports whether id has the shape of a generated visitor or tab id
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil && len(id) == 36
}

func storeKey(id, tabID string) string {
	return id + ":" + tabID
}

// Store persists the state of each tab. Tabs expire independently.
type Store interface {
	Get(ctx context.Context, id, tabID string) (*Session, error)
	Save(ctx context.Context, s *Session) error
}
