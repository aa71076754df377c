package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/lifestyle-cms-backend/database"
	"github.com/rpupo63/lifestyle-cms-backend/errs"
	"github.com/rpupo63/lifestyle-cms-backend/media"
	"github.com/rpupo63/lifestyle-cms-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type VlogService struct {
	db       database.Database
	resolver *media.Resolver
	logger   zerolog.Logger
}

func NewVlogService(db database.Database, resolver *media.Resolver) *VlogService {
	return &VlogService{
		db:       db,
		resolver: resolver,
		logger:   log.With().Str("service", "vlog").Logger(),
	}
}

// GetAll returns every vlog sorted by order_index
func (s *VlogService) GetAll(ctx context.Context) ([]models.VlogVideo, error) {
	vlogs, err := s.db.VlogRepo().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	sortByOrderIndex(vlogs, func(v models.VlogVideo) int { return v.OrderIndex })
	for i := range vlogs {
		s.decorate(ctx, &vlogs[i])
	}
	return vlogs, nil
}

// GetByCarousel returns the vlogs of one vlog carousel, at most limit of them when limit > 0
func (s *VlogService) GetByCarousel(ctx context.Context, carousel string, limit int) ([]models.VlogVideo, error) {
	vlogs, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]models.VlogVideo, 0, len(vlogs))
	for _, v := range vlogs {
		if v.Carousel == carousel {
			filtered = append(filtered, v)
		}
	}
	return Limit(filtered, limit), nil
}

func (s *VlogService) GetMainChannelVlogs(ctx context.Context, limit int) ([]models.VlogVideo, error) {
	return s.GetByCarousel(ctx, models.VlogCarouselMain, limit)
}

func (s *VlogService) Get(ctx context.Context, id uuid.UUID) (*models.VlogVideo, error) {
	vlog, err := s.db.VlogRepo().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.decorate(ctx, vlog)
	return vlog, nil
}

// Add validates the vlog, derives its YouTube id and thumbnail, and stores it
func (s *VlogService) Add(ctx context.Context, vlog models.VlogVideo) (*models.VlogVideo, error) {
	if err := requireTitle(vlog.Title); err != nil {
		return nil, err
	}
	if vlog.Carousel == "" {
		vlog.Carousel = models.VlogCarouselMain
	}
	if err := validateVlogCarousel(vlog.Carousel); err != nil {
		return nil, err
	}

	var err error
	vlog.YoutubeID, vlog.ThumbnailURL, err = deriveYouTube(vlog.YoutubeURL, vlog.ThumbnailURL)
	if err != nil {
		return nil, err
	}

	vlog.ID = uuid.Nil
	if err := s.db.VlogRepo().Add(ctx, &vlog); err != nil {
		return nil, err
	}
	s.logger.Info().Str("vlogID", vlog.ID.String()).Str("youtubeID", vlog.YoutubeID).Msg("Vlog added")
	s.decorate(ctx, &vlog)
	return &vlog, nil
}

// Update merges patch into the stored vlog, re-deriving video fields when the URL changes
func (s *VlogService) Update(ctx context.Context, id uuid.UUID, patch models.VlogPatch) (*models.VlogVideo, error) {
	vlog, err := s.db.VlogRepo().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldID, oldThumbnail := vlog.YoutubeID, vlog.ThumbnailURL

	patch.Apply(vlog)
	if err := requireTitle(vlog.Title); err != nil {
		return nil, err
	}
	if err := validateVlogCarousel(vlog.Carousel); err != nil {
		return nil, err
	}
	if patch.YoutubeURL != nil || patch.ThumbnailURL != nil {
		vlog.YoutubeID, vlog.ThumbnailURL, err = rederiveYouTube(oldID, oldThumbnail, vlog.YoutubeURL, vlog.ThumbnailURL, patch.ThumbnailURL != nil)
		if err != nil {
			return nil, err
		}
	}

	if err := s.db.VlogRepo().Update(ctx, vlog); err != nil {
		return nil, err
	}
	s.decorate(ctx, vlog)
	return vlog, nil
}

// Delete removes the vlog's carousel memberships, then the vlog, atomically
func (s *VlogService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.Transaction(ctx, "delete vlog", func(tx database.Database) error {
		if _, err := tx.VlogRepo().FindByID(ctx, id); err != nil {
			return err
		}
		if _, err := tx.CarouselItemRepo().DeleteItemsByRef(ctx, models.ItemKindVideo, id); err != nil {
			return err
		}
		return tx.VlogRepo().Delete(ctx, id)
	})
}

func (s *VlogService) SetFeatured(ctx context.Context, id uuid.UUID) (*models.VlogVideo, error) {
	var vlog *models.VlogVideo
	err := s.db.Transaction(ctx, "set featured vlog", func(tx database.Database) error {
		var err error
		if vlog, err = tx.VlogRepo().FindByID(ctx, id); err != nil {
			return err
		}
		_, err = setFeatured(ctx, tx, VlogsFeaturedSlot, models.CarouselItemInput{
			Kind:      models.ItemKindVideo,
			YoutubeID: strPtr(vlog.YoutubeID),
			RefID:     &vlog.ID,
			Caption:   strPtr(vlog.Title),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	s.decorate(ctx, vlog)
	return vlog, nil
}

// Featured returns the featured vlog. found is false when none is set.
func (s *VlogService) Featured(ctx context.Context) (*models.VlogVideo, bool, error) {
	refID, found, err := featuredRef(ctx, s.db, VlogsFeaturedSlot)
	if err != nil || !found {
		return nil, false, err
	}
	vlog, err := s.db.VlogRepo().FindByID(ctx, refID)
	if errs.IsNotFound(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	s.decorate(ctx, vlog)
	return vlog, true, nil
}

func (s *VlogService) RemoveFeatured(ctx context.Context) error {
	return removeFeatured(ctx, s.db, VlogsFeaturedSlot)
}

func (s *VlogService) decorate(ctx context.Context, vlog *models.VlogVideo) {
	vlog.DisplayThumbnailURL = s.resolver.Resolve(ctx, &vlog.ThumbnailURL, vlog.YoutubeID)
}

func validateVlogCarousel(carousel string) error {
	switch carousel {
	case models.VlogCarouselMain, models.VlogCarouselBehindTheScene:
		return nil
	}
	return errs.NewInvalidFieldError("carousel", "must be main-channel or behind-the-scenes")
}
