package services

import (
	"cmp"
	"context"
	"slices"

	"github.com/google/uuid"
	"github.com/rpupo63/lifestyle-cms-backend/database"
	"github.com/rpupo63/lifestyle-cms-backend/errs"
	"github.com/rpupo63/lifestyle-cms-backend/media"
	"github.com/rpupo63/lifestyle-cms-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// HealingVideoService stores healing videos and keeps each one attached to the
// carousel of its part. Display order is the order of that carousel.
type HealingVideoService struct {
	db       database.Database
	resolver *media.Resolver
	logger   zerolog.Logger
}

func NewHealingVideoService(db database.Database, resolver *media.Resolver) *HealingVideoService {
	return &HealingVideoService{
		db:       db,
		resolver: resolver,
		logger:   log.With().Str("service", "healingVideo").Logger(),
	}
}

// GetAll returns every healing video ordered by part, then by carousel order
func (s *HealingVideoService) GetAll(ctx context.Context) ([]models.HealingVideo, error) {
	videos, err := s.db.HealingVideoRepo().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	order := map[uuid.UUID]int{}
	for _, part := range HealingParts {
		items, err := slotMembers(ctx, s.db, HealingPartSlot(part))
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			if item.RefID != nil {
				order[*item.RefID] = item.OrderIndex
			}
		}
	}

	for i := range videos {
		videos[i].OrderIndex = order[videos[i].ID]
		s.decorate(ctx, &videos[i])
	}
	slices.SortStableFunc(videos, func(a, b models.HealingVideo) int {
		if c := cmp.Compare(a.Part, b.Part); c != 0 {
			return c
		}
		return cmp.Compare(a.OrderIndex, b.OrderIndex)
	})
	return videos, nil
}

// GetByPart returns the active videos of one part in carousel order
func (s *HealingVideoService) GetByPart(ctx context.Context, part int) ([]models.HealingVideo, error) {
	if err := validateHealingPart(part); err != nil {
		return nil, err
	}
	items, err := slotItems(ctx, s.db, HealingPartSlot(part))
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if item.RefID != nil {
			ids = append(ids, *item.RefID)
		}
	}
	rows, err := s.db.HealingVideoRepo().FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]models.HealingVideo, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}

	videos := make([]models.HealingVideo, 0, len(items))
	for _, item := range items {
		if item.RefID == nil {
			continue
		}
		video, ok := byID[*item.RefID]
		if !ok {
			s.logger.Warn().Str("itemID", item.ID.String()).Msg("Carousel item references a missing healing video")
			continue
		}
		video.OrderIndex = item.OrderIndex
		s.decorate(ctx, &video)
		videos = append(videos, video)
	}
	return videos, nil
}

func (s *HealingVideoService) Get(ctx context.Context, id uuid.UUID) (*models.HealingVideo, error) {
	video, err := s.db.HealingVideoRepo().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item, found, err := membership(ctx, s.db, HealingPartSlot(video.Part), models.ItemKindVideo, video.ID); err != nil {
		return nil, err
	} else if found {
		video.OrderIndex = item.OrderIndex
	}
	s.decorate(ctx, video)
	return video, nil
}

// Add stores the video and appends it to its part's carousel in one transaction
func (s *HealingVideoService) Add(ctx context.Context, video models.HealingVideo) (*models.HealingVideo, error) {
	if err := requireTitle(video.Title); err != nil {
		return nil, err
	}
	if video.Part == 0 {
		video.Part = HealingParts[0]
	}
	if err := validateHealingPart(video.Part); err != nil {
		return nil, err
	}

	var err error
	video.YoutubeID, video.ThumbnailURL, err = deriveYouTube(video.YoutubeURL, video.ThumbnailURL)
	if err != nil {
		return nil, err
	}

	video.ID = uuid.Nil
	err = s.db.Transaction(ctx, "add healing video", func(tx database.Database) error {
		if err := tx.HealingVideoRepo().Add(ctx, &video); err != nil {
			return err
		}
		item, err := attach(ctx, tx, HealingPartSlot(video.Part), healingItemInput(&video))
		if err != nil {
			return err
		}
		video.OrderIndex = item.OrderIndex
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("videoID", video.ID.String()).Int("part", video.Part).Msg("Healing video added")
	s.decorate(ctx, &video)
	return &video, nil
}

// Update merges patch, re-derives video fields when the URL changes, and
// moves the membership when the part changes.
func (s *HealingVideoService) Update(ctx context.Context, id uuid.UUID, patch models.HealingVideoPatch) (*models.HealingVideo, error) {
	var video *models.HealingVideo
	err := s.db.Transaction(ctx, "update healing video", func(tx database.Database) error {
		var err error
		if video, err = tx.HealingVideoRepo().FindByID(ctx, id); err != nil {
			return err
		}
		oldPart, oldID, oldThumbnail := video.Part, video.YoutubeID, video.ThumbnailURL

		patch.Apply(video)
		if err := requireTitle(video.Title); err != nil {
			return err
		}
		if err := validateHealingPart(video.Part); err != nil {
			return err
		}
		if patch.YoutubeURL != nil || patch.ThumbnailURL != nil {
			video.YoutubeID, video.ThumbnailURL, err = rederiveYouTube(oldID, oldThumbnail, video.YoutubeURL, video.ThumbnailURL, patch.ThumbnailURL != nil)
			if err != nil {
				return err
			}
		}
		if err := tx.HealingVideoRepo().Update(ctx, video); err != nil {
			return err
		}

		if video.Part != oldPart {
			if err := detach(ctx, tx, HealingPartSlot(oldPart), models.ItemKindVideo, video.ID); err != nil {
				return err
			}
			item, err := attach(ctx, tx, HealingPartSlot(video.Part), healingItemInput(video))
			if err != nil {
				return err
			}
			video.OrderIndex = item.OrderIndex
			return nil
		}

		item, found, err := membership(ctx, tx, HealingPartSlot(video.Part), models.ItemKindVideo, video.ID)
		if err != nil {
			return err
		}
		if found {
			item, err = tx.CarouselItemRepo().UpdateItem(ctx, item.ID, models.CarouselItemPatch{
				Caption:   strPtr(video.Title),
				YoutubeID: strPtr(video.YoutubeID),
			})
		} else {
			item, err = attach(ctx, tx, HealingPartSlot(video.Part), healingItemInput(video))
		}
		if err != nil {
			return err
		}
		video.OrderIndex = item.OrderIndex
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.decorate(ctx, video)
	return video, nil
}

// Delete removes every membership of the video, then the video, atomically
func (s *HealingVideoService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.Transaction(ctx, "delete healing video", func(tx database.Database) error {
		if _, err := tx.HealingVideoRepo().FindByID(ctx, id); err != nil {
			return err
		}
		if _, err := tx.CarouselItemRepo().DeleteItemsByRef(ctx, models.ItemKindVideo, id); err != nil {
			return err
		}
		return tx.HealingVideoRepo().Delete(ctx, id)
	})
}

func (s *HealingVideoService) SetFeatured(ctx context.Context, id uuid.UUID) (*models.HealingVideo, error) {
	var video *models.HealingVideo
	err := s.db.Transaction(ctx, "set featured healing video", func(tx database.Database) error {
		var err error
		if video, err = tx.HealingVideoRepo().FindByID(ctx, id); err != nil {
			return err
		}
		_, err = setFeatured(ctx, tx, HealingFeaturedSlot, healingItemInput(video))
		return err
	})
	if err != nil {
		return nil, err
	}
	s.decorate(ctx, video)
	return video, nil
}

func (s *HealingVideoService) Featured(ctx context.Context) (*models.HealingVideo, bool, error) {
	refID, found, err := featuredRef(ctx, s.db, HealingFeaturedSlot)
	if err != nil || !found {
		return nil, false, err
	}
	video, err := s.db.HealingVideoRepo().FindByID(ctx, refID)
	if errs.IsNotFound(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	s.decorate(ctx, video)
	return video, true, nil
}

func (s *HealingVideoService) RemoveFeatured(ctx context.Context) error {
	return removeFeatured(ctx, s.db, HealingFeaturedSlot)
}

func (s *HealingVideoService) decorate(ctx context.Context, video *models.HealingVideo) {
	video.DisplayThumbnailURL = s.resolver.Resolve(ctx, &video.ThumbnailURL, video.YoutubeID)
}

func healingItemInput(video *models.HealingVideo) models.CarouselItemInput {
	return models.CarouselItemInput{
		Kind:      models.ItemKindVideo,
		YoutubeID: strPtr(video.YoutubeID),
		RefID:     &video.ID,
		Caption:   strPtr(video.Title),
	}
}

func validateHealingPart(part int) error {
	if !slices.Contains(HealingParts, part) {
		return errs.NewInvalidFieldError("part", "must be 1 or 2")
	}
	return nil
}

// HealingProductService manages the affiliate products of the healing page
type HealingProductService struct {
	db       database.Database
	resolver *media.Resolver
	logger   zerolog.Logger
}

func NewHealingProductService(db database.Database, resolver *media.Resolver) *HealingProductService {
	return &HealingProductService{
		db:       db,
		resolver: resolver,
		logger:   log.With().Str("service", "healingProduct").Logger(),
	}
}

func (s *HealingProductService) GetAll(ctx context.Context) ([]models.HealingProduct, error) {
	products, err := s.db.HealingProductRepo().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	sortByOrderIndex(products, func(p models.HealingProduct) int { return p.OrderIndex })
	for i := range products {
		s.decorate(ctx, &products[i])
	}
	return products, nil
}

// GetActive returns the active products, at most limit of them when limit > 0
func (s *HealingProductService) GetActive(ctx context.Context, limit int) ([]models.HealingProduct, error) {
	products, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]models.HealingProduct, 0, len(products))
	for _, p := range products {
		if p.IsActive {
			active = append(active, p)
		}
	}
	return Limit(active, limit), nil
}

func (s *HealingProductService) Get(ctx context.Context, id uuid.UUID) (*models.HealingProduct, error) {
	product, err := s.db.HealingProductRepo().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.decorate(ctx, product)
	return product, nil
}

func (s *HealingProductService) Add(ctx context.Context, product models.HealingProduct) (*models.HealingProduct, error) {
	if err := requireTitle(product.Title); err != nil {
		return nil, err
	}
	product.ID = uuid.Nil
	if err := s.db.HealingProductRepo().Add(ctx, &product); err != nil {
		return nil, err
	}
	s.logger.Info().Str("productID", product.ID.String()).Msg("Healing product added")
	s.decorate(ctx, &product)
	return &product, nil
}

func (s *HealingProductService) Update(ctx context.Context, id uuid.UUID, patch models.HealingProductPatch) (*models.HealingProduct, error) {
	product, err := s.db.HealingProductRepo().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(product)
	if err := requireTitle(product.Title); err != nil {
		return nil, err
	}
	if err := s.db.HealingProductRepo().Update(ctx, product); err != nil {
		return nil, err
	}
	s.decorate(ctx, product)
	return product, nil
}

func (s *HealingProductService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.HealingProductRepo().Delete(ctx, id)
}

func (s *HealingProductService) decorate(ctx context.Context, product *models.HealingProduct) {
	product.ImageURL = s.resolver.ResolveImage(ctx, product.ImagePath)
}
