// Package dashboard holds the admin dashboard UI state as plain data.
// Every change goes through Reduce, so a state can be stored, diffed or sent as JSON.
package dashboard

import "github.com/google/uuid"

// Tab is one section of the dashboard
type Tab string

const (
	TabVlogs      Tab = "vlogs"
	TabHealing    Tab = "healing"
	TabStorefront Tab = "storefront"
	TabPlaylists  Tab = "playlists"
	TabAlbums     Tab = "albums"
	TabRecipes    Tab = "recipes"
	TabCarousels  Tab = "carousels"
	TabBackup     Tab = "backup"
)

var Tabs = []Tab{TabVlogs, TabHealing, TabStorefront, TabPlaylists, TabAlbums, TabRecipes, TabCarousels, TabBackup}

type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
	NotificationInfo    NotificationKind = "info"
)

type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Message string           `json:"message"`
}

// State is the UI state of one tab. An empty Modal means no modal is open;
// a nil EditingID with an open modal means a new row is being created.
type State struct {
	Tab          Tab           `json:"tab"`
	Loading      bool          `json:"loading"`
	Saving       bool          `json:"saving"`
	Modal        string        `json:"modal,omitempty"`
	EditingID    *uuid.UUID    `json:"editing_id,omitempty"`
	Notification *Notification `json:"notification,omitempty"`
}

// Action is one state transition
type Action interface {
	apply(State) State
}

type SelectTab struct{ Tab Tab }

type OpenModal struct{ Modal string }

type CloseModal struct{}

type StartEdit struct {
	Modal string
	ID    uuid.UUID
}

type LoadStarted struct{}

type LoadFinished struct{}

type SaveStarted struct{}

type SaveFinished struct{}

type Notify struct{ Notification Notification }

type DismissNotification struct{}

// Reduce returns the state after action. It never mutates s.
func Reduce(s State, action Action) State {
	if action == nil {
		return s
	}
	return action.apply(s)
}

// Switching tabs closes whatever modal was open
func (a SelectTab) apply(s State) State {
	s.Tab = a.Tab
	s.Modal = ""
	s.EditingID = nil
	return s
}

func (a OpenModal) apply(s State) State {
	s.Modal = a.Modal
	s.EditingID = nil
	return s
}

func (CloseModal) apply(s State) State {
	s.Modal = ""
	s.EditingID = nil
	return s
}

func (a StartEdit) apply(s State) State {
	id := a.ID
	s.Modal = a.Modal
	s.EditingID = &id
	return s
}

func (LoadStarted) apply(s State) State {
	s.Loading = true
	return s
}

func (LoadFinished) apply(s State) State {
	s.Loading = false
	return s
}

func (SaveStarted) apply(s State) State {
	s.Saving = true
	return s
}

func (SaveFinished) apply(s State) State {
	s.Saving = false
	return s
}

func (a Notify) apply(s State) State {
	n := a.Notification
	s.Notification = &n
	return s
}

func (DismissNotification) apply(s State) State {
	s.Notification = nil
	return s
}
