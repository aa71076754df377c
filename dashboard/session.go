package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/rpupo63/lifestyle-cms-backend/client"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Session holds the state of every tab plus which tab is active
type Session struct {
	mu     sync.Mutex
	active Tab
	states map[Tab]State
	logger zerolog.Logger
}

func NewSession() *Session {
	s := &Session{
		active: TabVlogs,
		states: make(map[Tab]State, len(Tabs)),
		logger: log.With().Str("component", "dashboard").Logger(),
	}
	for _, tab := range Tabs {
		s.states[tab] = State{Tab: tab}
	}
	return s
}

// Active returns the tab currently shown
func (s *Session) Active() Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Select makes tab active and closes any modal left open on it
func (s *Session) Select(tab Tab) State {
	s.mu.Lock()
	s.active = tab
	s.mu.Unlock()
	return s.Dispatch(tab, SelectTab{Tab: tab})
}

func (s *Session) State(tab Tab) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked(tab)
}

func (s *Session) stateLocked(tab Tab) State {
	state, ok := s.states[tab]
	if !ok {
		state = State{Tab: tab}
	}
	return state
}

// Dispatch applies action to the state of tab and returns the new state
func (s *Session) Dispatch(tab Tab, action Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := Reduce(s.stateLocked(tab), action)
	s.states[tab] = next
	return next
}

// Run executes fn as a save on tab. Saving is set for the duration of fn and
// cleared on every exit path, panics included. A failure becomes an error
// notification and Run returns false.
func (s *Session) Run(ctx context.Context, tab Tab, label string, fn func(context.Context) error) bool {
	s.Dispatch(tab, SaveStarted{})
	defer s.Dispatch(tab, SaveFinished{})

	if err := fn(ctx); err != nil {
		s.fail(tab, label, err)
		return false
	}

	s.Dispatch(tab, Notify{Notification: Notification{
		Kind:    NotificationSuccess,
		Message: capitalize(label) + " succeeded",
	}})
	return true
}

// Load is Run for reads: it toggles Loading instead of Saving and only notifies on failure
func (s *Session) Load(ctx context.Context, tab Tab, fn func(context.Context) error) bool {
	s.Dispatch(tab, LoadStarted{})
	defer s.Dispatch(tab, LoadFinished{})

	if err := fn(ctx); err != nil {
		s.fail(tab, "load "+string(tab), err)
		return false
	}
	return true
}

func (s *Session) fail(tab Tab, label string, err error) {
	s.logger.Error().Err(err).Str("tab", string(tab)).Str("action", label).Msg("Dashboard action failed")
	s.Dispatch(tab, Notify{Notification: Notification{
		Kind:    NotificationError,
		Message: fmt.Sprintf("Could not %s: %s", label, Message(err)),
	}})
}

// MarshalJSON encodes the active tab and every tab's state
func (s *Session) MarshalJSON() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return json.Marshal(struct {
		Active Tab           `json:"active"`
		Tabs   map[Tab]State `json:"tabs"`
	}{Active: s.active, Tabs: s.states})
}

// Message turns err into text fit for a notification
func Message(err error) string {
	var apiErr *client.APIError
	var urlErr *url.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "the request timed out"
	case errors.Is(err, context.Canceled):
		return "the request was cancelled"
	case errors.As(err, &apiErr):
		if apiErr.StatusCode >= http.StatusInternalServerError {
			return "the server ran into a problem, please try again"
		}
		if apiErr.Details != "" {
			return apiErr.Details
		}
		return apiErr.Message
	case errors.As(err, &urlErr):
		return "could not reach the server"
	default:
		return err.Error()
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
