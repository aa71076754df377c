package services

import (
	"context"
	"testing"

	"github.com/rpupo63/lifestyle-cms-backend/errs"
	"github.com/rpupo63/lifestyle-cms-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaylistService_AddParsesSpotifyURL(t *testing.T) {
	svc, _ := setupTestServices(t)
	ctx := context.Background()

	playlist, err := svc.Playlists.Add(ctx, models.SpotifyPlaylist{
		Title:      "Morning",
		SpotifyURL: "https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M?si=abc",
		IsActive:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, "playlist", playlist.SpotifyType)
	assert.Equal(t, "37i9dQZF1DXcBWIGoYBM5M", playlist.SpotifyID)
	assert.Equal(t, "https://open.spotify.com/embed/playlist/37i9dQZF1DXcBWIGoYBM5M", playlist.EmbedURL)
	assert.Equal(t, testPlaceholder, playlist.CoverURL)

	_, err = svc.Playlists.Add(ctx, models.SpotifyPlaylist{Title: "Bad", SpotifyURL: "https://example.com/playlist/1"})
	require.Error(t, err)
	assert.True(t, errs.IsInvalidURLError(err))
	assert.Contains(t, err.Error(), "invalid Spotify URL")

	_, err = svc.Playlists.Add(ctx, models.SpotifyPlaylist{Title: "Empty"})
	assert.True(t, errs.IsMissingRequiredFieldError(err))

	all, err := svc.Playlists.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestPlaylistService_UpdateAndActive(t *testing.T) {
	svc, _ := setupTestServices(t)
	ctx := context.Background()
	a, err := svc.Playlists.Add(ctx, models.SpotifyPlaylist{Title: "A", SpotifyURL: "spotify:playlist:37i9dQZF1DXcBWIGoYBM5M", IsActive: true, OrderIndex: 2})
	require.NoError(t, err)
	_, err = svc.Playlists.Add(ctx, models.SpotifyPlaylist{Title: "B", SpotifyURL: "spotify:playlist:37i9dQZF1DX0XUsuxWHRQd", IsActive: false, OrderIndex: 1})
	require.NoError(t, err)

	updated, err := svc.Playlists.Update(ctx, a.ID, models.SpotifyPlaylistPatch{SpotifyURL: strPtr("https://open.spotify.com/album/4aawyAB9vmqN3uQ7FjRGTy")})
	require.NoError(t, err)
	assert.Equal(t, "album", updated.SpotifyType)
	assert.Equal(t, "4aawyAB9vmqN3uQ7FjRGTy", updated.SpotifyID)

	_, err = svc.Playlists.Update(ctx, a.ID, models.SpotifyPlaylistPatch{SpotifyURL: strPtr("nope")})
	assert.True(t, errs.IsInvalidURLError(err))
	stored, err := svc.Playlists.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "album", stored.SpotifyType)

	active, err := svc.Playlists.GetActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, a.ID, active[0].ID)

	all, err := svc.Playlists.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "B", all[0].Title)

	require.NoError(t, svc.Playlists.Delete(ctx, a.ID))
	_, err = svc.Playlists.Get(ctx, a.ID)
	assert.True(t, errs.IsNotFound(err))
}
