package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/rpupo63/lifestyle-cms-backend/api"
	"github.com/rpupo63/lifestyle-cms-backend/client"
	"github.com/rpupo63/lifestyle-cms-backend/database"
	"github.com/rpupo63/lifestyle-cms-backend/media"
	"github.com/rpupo63/lifestyle-cms-backend/models"
	"github.com/rpupo63/lifestyle-cms-backend/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_RunSuccess(t *testing.T) {
	s := NewSession()

	var savingDuringRun bool
	ok := s.Run(t.Context(), TabVlogs, "save vlog", func(context.Context) error {
		savingDuringRun = s.State(TabVlogs).Saving
		return nil
	})

	assert.True(t, ok)
	assert.True(t, savingDuringRun)
	state := s.State(TabVlogs)
	assert.False(t, state.Saving)
	require.NotNil(t, state.Notification)
	assert.Equal(t, Notification{Kind: NotificationSuccess, Message: "Save vlog succeeded"}, *state.Notification)
}

func TestSession_RunFailure(t *testing.T) {
	s := NewSession()

	ok := s.Run(t.Context(), TabRecipes, "delete recipe", func(context.Context) error {
		return &client.APIError{StatusCode: http.StatusNotFound, Message: "recipe not found"}
	})

	assert.False(t, ok)
	state := s.State(TabRecipes)
	assert.False(t, state.Saving)
	require.NotNil(t, state.Notification)
	assert.Equal(t, NotificationError, state.Notification.Kind)
	assert.Equal(t, "Could not delete recipe: recipe not found", state.Notification.Message)

	assert.Nil(t, s.State(TabVlogs).Notification)
}

func TestSession_RunPanicClearsSaving(t *testing.T) {
	s := NewSession()

	assert.Panics(t, func() {
		s.Run(t.Context(), TabAlbums, "save album", func(context.Context) error {
			panic("boom")
		})
	})
	assert.False(t, s.State(TabAlbums).Saving)
}

func TestSession_Load(t *testing.T) {
	s := NewSession()

	ok := s.Load(t.Context(), TabHealing, func(context.Context) error { return nil })
	assert.True(t, ok)
	assert.False(t, s.State(TabHealing).Loading)
	assert.Nil(t, s.State(TabHealing).Notification)

	ok = s.Load(t.Context(), TabHealing, func(context.Context) error { return errors.New("disk full") })
	assert.False(t, ok)
	state := s.State(TabHealing)
	assert.False(t, state.Loading)
	require.NotNil(t, state.Notification)
	assert.Equal(t, "Could not load healing: disk full", state.Notification.Message)
}

func TestSession_SelectAndJSON(t *testing.T) {
	s := NewSession()
	assert.Equal(t, TabVlogs, s.Active())

	s.Dispatch(TabStorefront, OpenModal{Modal: "product"})
	state := s.Select(TabStorefront)
	assert.Equal(t, TabStorefront, s.Active())
	assert.Empty(t, state.Modal)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	var decoded struct {
		Active Tab           `json:"active"`
		Tabs   map[Tab]State `json:"tabs"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, TabStorefront, decoded.Active)
	assert.Len(t, decoded.Tabs, len(Tabs))
}

func TestSession_ConcurrentRuns(t *testing.T) {
	s := NewSession()

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Run(context.Background(), TabPlaylists, "save playlist", func(context.Context) error { return nil })
		}()
	}
	wg.Wait()
	assert.False(t, s.State(TabPlaylists).Saving)
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"api details", &client.APIError{StatusCode: 400, Message: "missing required field", Details: "Missing required field: title"}, "Missing required field: title"},
		{"api message", &client.APIError{StatusCode: 409, Message: "carousel already exists"}, "carousel already exists"},
		{"server error", &client.APIError{StatusCode: 500, Message: "internal"}, "the server ran into a problem, please try again"},
		{"timeout", context.DeadlineExceeded, "the request timed out"},
		{"cancelled", context.Canceled, "the request was cancelled"},
		{"network", &url.Error{Op: "Get", URL: "http://localhost", Err: errors.New("connection refused")}, "could not reach the server"},
		{"plain", errors.New("nope"), "nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Message(tt.err))
		})
	}
}

func TestSession_WithClient(t *testing.T) {
	db, err := database.OpenMemory("dashboard_test_" + strings.ReplaceAll(t.Name(), "/", "_"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	d := database.New(db)
	resolver := media.NewResolver("/images/placeholder.jpg")
	server := httptest.NewServer(api.NewRouter(services.New(d, resolver), resolver, d))
	t.Cleanup(server.Close)

	c := client.New(server.URL, client.WithHTTPClient(server.Client()))
	s := NewSession()

	s.Dispatch(TabVlogs, OpenModal{Modal: "vlog"})
	ok := s.Run(t.Context(), TabVlogs, "save vlog", func(ctx context.Context) error {
		_, err := client.Create[models.VlogVideo](ctx, c, client.Vlogs, map[string]any{"title": "Bad", "youtubeUrl": "not-a-url"})
		return err
	})
	assert.False(t, ok)
	state := s.State(TabVlogs)
	assert.Equal(t, "vlog", state.Modal)
	require.NotNil(t, state.Notification)
	assert.Contains(t, state.Notification.Message, "Could not save vlog")
	assert.Contains(t, state.Notification.Message, "not-a-url")

	ok = s.Run(t.Context(), TabVlogs, "save vlog", func(ctx context.Context) error {
		_, err := client.Create[models.VlogVideo](ctx, c, client.Vlogs, map[string]any{"title": "Good", "youtubeUrl": "https://youtu.be/dQw4w9WgXcQ"})
		return err
	})
	assert.True(t, ok)
	s.Dispatch(TabVlogs, CloseModal{})

	var vlogs []models.VlogVideo
	ok = s.Load(t.Context(), TabVlogs, func(ctx context.Context) error {
		var err error
		vlogs, err = client.List[models.VlogVideo](ctx, c, client.Vlogs, nil)
		return err
	})
	assert.True(t, ok)
	assert.Len(t, vlogs, 1)
	assert.Empty(t, s.State(TabVlogs).Modal)
}
