package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/lifestyle-cms-backend/database"
	"github.com/rpupo63/lifestyle-cms-backend/media"
	"github.com/rpupo63/lifestyle-cms-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// AlbumService stores photo albums and mirrors each into the home page album carousel
type AlbumService struct {
	db       database.Database
	resolver *media.Resolver
	logger   zerolog.Logger
}

func NewAlbumService(db database.Database, resolver *media.Resolver) *AlbumService {
	return &AlbumService{
		db:       db,
		resolver: resolver,
		logger:   log.With().Str("service", "album").Logger(),
	}
}

func (s *AlbumService) GetAll(ctx context.Context) ([]models.PhotoAlbum, error) {
	albums, err := s.db.AlbumRepo().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	sortByOrderIndex(albums, func(a models.PhotoAlbum) int { return a.OrderIndex })
	for i := range albums {
		s.decorate(ctx, &albums[i])
	}
	return albums, nil
}

func (s *AlbumService) Get(ctx context.Context, id uuid.UUID) (*models.PhotoAlbum, error) {
	album, err := s.db.AlbumRepo().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.decorate(ctx, album)
	return album, nil
}

// Add stores the album and appends it to the album carousel in one transaction
func (s *AlbumService) Add(ctx context.Context, album models.PhotoAlbum) (*models.PhotoAlbum, error) {
	if err := requireTitle(album.Title); err != nil {
		return nil, err
	}
	if err := validateStringArray("photos", album.Photos); err != nil {
		return nil, err
	}

	album.ID = uuid.Nil
	err := s.db.Transaction(ctx, "add album", func(tx database.Database) error {
		if err := tx.AlbumRepo().Add(ctx, &album); err != nil {
			return err
		}
		_, err := attach(ctx, tx, PhotoAlbumsSlot, models.CarouselItemInput{
			Kind:      models.ItemKindAlbum,
			RefID:     &album.ID,
			ImagePath: album.CoverPath,
			Caption:   strPtr(album.Title),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("albumID", album.ID.String()).Msg("Album added")
	s.decorate(ctx, &album)
	return &album, nil
}

// Update merges patch and keeps the carousel item's caption and cover in step
func (s *AlbumService) Update(ctx context.Context, id uuid.UUID, patch models.PhotoAlbumPatch) (*models.PhotoAlbum, error) {
	var album *models.PhotoAlbum
	err := s.db.Transaction(ctx, "update album", func(tx database.Database) error {
		var err error
		if album, err = tx.AlbumRepo().FindByID(ctx, id); err != nil {
			return err
		}
		patch.Apply(album)
		if err := requireTitle(album.Title); err != nil {
			return err
		}
		if err := validateStringArray("photos", album.Photos); err != nil {
			return err
		}
		if err := tx.AlbumRepo().Update(ctx, album); err != nil {
			return err
		}

		if patch.Title == nil && patch.CoverPath == nil {
			return nil
		}
		item, found, err := membership(ctx, tx, PhotoAlbumsSlot, models.ItemKindAlbum, album.ID)
		if err != nil || !found {
			return err
		}
		_, err = tx.CarouselItemRepo().UpdateItem(ctx, item.ID, models.CarouselItemPatch{
			Caption:   strPtr(album.Title),
			ImagePath: strPtr(stringValue(album.CoverPath)),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	s.decorate(ctx, album)
	return album, nil
}

// Delete removes the album's carousel memberships, then the album, atomically
func (s *AlbumService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.Transaction(ctx, "delete album", func(tx database.Database) error {
		if _, err := tx.AlbumRepo().FindByID(ctx, id); err != nil {
			return err
		}
		if _, err := tx.CarouselItemRepo().DeleteItemsByRef(ctx, models.ItemKindAlbum, id); err != nil {
			return err
		}
		return tx.AlbumRepo().Delete(ctx, id)
	})
}

func (s *AlbumService) decorate(ctx context.Context, album *models.PhotoAlbum) {
	album.CoverURL = s.resolver.ResolveImage(ctx, album.CoverPath)
}
