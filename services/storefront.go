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

type StorefrontProductService struct {
	db       database.Database
	resolver *media.Resolver
	logger   zerolog.Logger
}

func NewStorefrontProductService(db database.Database, resolver *media.Resolver) *StorefrontProductService {
	return &StorefrontProductService{
		db:       db,
		resolver: resolver,
		logger:   log.With().Str("service", "storefrontProduct").Logger(),
	}
}

func (s *StorefrontProductService) GetAll(ctx context.Context) ([]models.StorefrontProduct, error) {
	products, err := s.db.StorefrontProductRepo().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	sortByOrderIndex(products, func(p models.StorefrontProduct) int { return p.OrderIndex })
	for i := range products {
		s.decorate(ctx, &products[i])
	}
	return products, nil
}

// GetByCategory filters by category, case-insensitively, keeping at most limit products when limit > 0
func (s *StorefrontProductService) GetByCategory(ctx context.Context, category string, limit int) ([]models.StorefrontProduct, error) {
	products, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]models.StorefrontProduct, 0, len(products))
	for _, p := range products {
		if strings.EqualFold(p.Category, category) {
			filtered = append(filtered, p)
		}
	}
	return Limit(filtered, limit), nil
}

// GetPublished returns the products visitors can see
func (s *StorefrontProductService) GetPublished(ctx context.Context, limit int) ([]models.StorefrontProduct, error) {
	products, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	published := make([]models.StorefrontProduct, 0, len(products))
	for _, p := range products {
		if p.Status == models.StatusPublished {
			published = append(published, p)
		}
	}
	return Limit(published, limit), nil
}

func (s *StorefrontProductService) Get(ctx context.Context, id uuid.UUID) (*models.StorefrontProduct, error) {
	product, err := s.db.StorefrontProductRepo().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.decorate(ctx, product)
	return product, nil
}

func (s *StorefrontProductService) Add(ctx context.Context, product models.StorefrontProduct) (*models.StorefrontProduct, error) {
	if product.Status == "" {
		product.Status = models.StatusDraft
	}
	if err := validateStorefrontProduct(&product); err != nil {
		return nil, err
	}
	product.ID = uuid.Nil
	if err := s.db.StorefrontProductRepo().Add(ctx, &product); err != nil {
		return nil, err
	}
	s.logger.Info().Str("productID", product.ID.String()).Str("category", product.Category).Msg("Storefront product added")
	s.decorate(ctx, &product)
	return &product, nil
}

// Update merges patch. Any status may be set from any other.
func (s *StorefrontProductService) Update(ctx context.Context, id uuid.UUID, patch models.StorefrontProductPatch) (*models.StorefrontProduct, error) {
	product, err := s.db.StorefrontProductRepo().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(product)
	if err := validateStorefrontProduct(product); err != nil {
		return nil, err
	}
	if err := s.db.StorefrontProductRepo().Update(ctx, product); err != nil {
		return nil, err
	}
	s.decorate(ctx, product)
	return product, nil
}

func (s *StorefrontProductService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.StorefrontProductRepo().Delete(ctx, id)
}

func (s *StorefrontProductService) decorate(ctx context.Context, product *models.StorefrontProduct) {
	product.ImageURL = s.resolver.ResolveImage(ctx, product.ImagePath)
}

func validateStorefrontProduct(product *models.StorefrontProduct) error {
	if err := requireTitle(product.Title); err != nil {
		return err
	}
	if !product.Status.Valid() {
		return errs.NewInvalidFieldError("status", "must be draft, published or archived")
	}
	product.Category = strings.TrimSpace(product.Category)
	return nil
}
