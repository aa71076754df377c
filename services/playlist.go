package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/lifestyle-cms-backend/database"
	"github.com/rpupo63/lifestyle-cms-backend/errs"
	"github.com/rpupo63/lifestyle-cms-backend/media"
	"github.com/rpupo63/lifestyle-cms-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type PlaylistService struct {
	db       database.Database
	resolver *media.Resolver
	logger   zerolog.Logger
}

func NewPlaylistService(db database.Database, resolver *media.Resolver) *PlaylistService {
	return &PlaylistService{
		db:       db,
		resolver: resolver,
		logger:   log.With().Str("service", "playlist").Logger(),
	}
}

func (s *PlaylistService) GetAll(ctx context.Context) ([]models.SpotifyPlaylist, error) {
	playlists, err := s.db.PlaylistRepo().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	sortByOrderIndex(playlists, func(p models.SpotifyPlaylist) int { return p.OrderIndex })
	for i := range playlists {
		s.decorate(ctx, &playlists[i])
	}
	return playlists, nil
}

func (s *PlaylistService) GetActive(ctx context.Context) ([]models.SpotifyPlaylist, error) {
	playlists, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]models.SpotifyPlaylist, 0, len(playlists))
	for _, p := range playlists {
		if p.IsActive {
			active = append(active, p)
		}
	}
	return active, nil
}

func (s *PlaylistService) Get(ctx context.Context, id uuid.UUID) (*models.SpotifyPlaylist, error) {
	playlist, err := s.db.PlaylistRepo().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.decorate(ctx, playlist)
	return playlist, nil
}

// Add validates the Spotify link and stores the playlist with its extracted type and id
func (s *PlaylistService) Add(ctx context.Context, playlist models.SpotifyPlaylist) (*models.SpotifyPlaylist, error) {
	if err := requireTitle(playlist.Title); err != nil {
		return nil, err
	}
	if err := deriveSpotify(&playlist); err != nil {
		return nil, err
	}
	playlist.ID = uuid.Nil
	if err := s.db.PlaylistRepo().Add(ctx, &playlist); err != nil {
		return nil, err
	}
	s.logger.Info().Str("playlistID", playlist.ID.String()).Str("spotifyID", playlist.SpotifyID).Msg("Playlist added")
	s.decorate(ctx, &playlist)
	return &playlist, nil
}

func (s *PlaylistService) Update(ctx context.Context, id uuid.UUID, patch models.SpotifyPlaylistPatch) (*models.SpotifyPlaylist, error) {
	playlist, err := s.db.PlaylistRepo().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(playlist)
	if err := requireTitle(playlist.Title); err != nil {
		return nil, err
	}
	if patch.SpotifyURL != nil {
		if err := deriveSpotify(playlist); err != nil {
			return nil, err
		}
	}
	if err := s.db.PlaylistRepo().Update(ctx, playlist); err != nil {
		return nil, err
	}
	s.decorate(ctx, playlist)
	return playlist, nil
}

func (s *PlaylistService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.PlaylistRepo().Delete(ctx, id)
}

func (s *PlaylistService) decorate(ctx context.Context, playlist *models.SpotifyPlaylist) {
	playlist.EmbedURL = media.SpotifyRef{Type: playlist.SpotifyType, ID: playlist.SpotifyID}.EmbedURL()
	playlist.CoverURL = s.resolver.ResolveImage(ctx, playlist.CoverPath)
}

func deriveSpotify(playlist *models.SpotifyPlaylist) error {
	playlist.SpotifyURL = strings.TrimSpace(playlist.SpotifyURL)
	if playlist.SpotifyURL == "" {
		return errs.NewMissingRequiredFieldError("spotify_url")
	}
	ref, ok := media.ParseSpotifyURL(playlist.SpotifyURL)
	if !ok {
		return errs.NewInvalidURLError("Spotify", "spotify_url", playlist.SpotifyURL)
	}
	playlist.SpotifyType = ref.Type
	playlist.SpotifyID = ref.ID
	return nil
}
