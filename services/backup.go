package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/rpupo63/lifestyle-cms-backend/database"
	"github.com/rpupo63/lifestyle-cms-backend/errs"
	"github.com/rpupo63/lifestyle-cms-backend/models"
	"github.com/rpupo63/lifestyle-cms-backend/normalize"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Backup is the export document: one array per stored collection
type Backup struct {
	Carousels          []models.Carousel          `json:"carousels"`
	CarouselItems      []models.CarouselItem      `json:"carousel_items"`
	Vlogs              []models.VlogVideo         `json:"vlogs"`
	HealingVideos      []models.HealingVideo      `json:"healing_videos"`
	HealingProducts    []models.HealingProduct    `json:"healing_products"`
	StorefrontProducts []models.StorefrontProduct `json:"storefront_products"`
	Playlists          []models.SpotifyPlaylist   `json:"playlists"`
	Albums             []models.PhotoAlbum        `json:"albums"`
	Recipes            []models.Recipe            `json:"recipes"`
}

// collection restores one key of a backup document
type collection struct {
	key     string
	parse   func(raw json.RawMessage) (int, error)
	replace func(ctx context.Context, tx database.Database) error
}

type BackupService struct {
	db     database.Database
	logger zerolog.Logger
}

func NewBackupService(db database.Database) *BackupService {
	return &BackupService{
		db:     db,
		logger: log.With().Str("service", "backup").Logger(),
	}
}

// Load reads every collection, concurrently
func (s *BackupService) Load(ctx context.Context) (*Backup, error) {
	var backup Backup
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) { backup.Carousels, err = s.db.CarouselRepo().FindAll(gctx); return })
	g.Go(func() (err error) { backup.CarouselItems, err = s.db.CarouselItemRepo().FindAll(gctx); return })
	g.Go(func() (err error) { backup.Vlogs, err = s.db.VlogRepo().FindAll(gctx); return })
	g.Go(func() (err error) { backup.HealingVideos, err = s.db.HealingVideoRepo().FindAll(gctx); return })
	g.Go(func() (err error) { backup.HealingProducts, err = s.db.HealingProductRepo().FindAll(gctx); return })
	g.Go(func() (err error) { backup.StorefrontProducts, err = s.db.StorefrontProductRepo().FindAll(gctx); return })
	g.Go(func() (err error) { backup.Playlists, err = s.db.PlaylistRepo().FindAll(gctx); return })
	g.Go(func() (err error) { backup.Albums, err = s.db.AlbumRepo().FindAll(gctx); return })
	g.Go(func() (err error) { backup.Recipes, err = s.db.RecipeRepo().FindAll(gctx); return })

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &backup, nil
}

// Export serializes every collection as indented JSON
func (s *BackupService) Export(ctx context.Context) ([]byte, error) {
	backup, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return nil, errs.NewInternalErrorWithCause("encoding backup", err)
	}
	return data, nil
}

// Import replaces each collection present in data. The whole document is
// parsed before anything is written; a parse failure changes nothing.
// Carousels and their items are restored together in one transaction when
// either key is present; every other collection gets its own transaction.
// It returns the number of rows restored per key.
func (s *BackupService) Import(ctx context.Context, data []byte) (map[string]int, error) {
	// collection names, then the keys of each row
	normalized, err := normalize.KeysToDepth(data, 2)
	if err != nil {
		return nil, errs.NewInvalidJSONError(err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(normalized, &doc); err != nil {
		return nil, errs.NewInvalidJSONError(err)
	}
	if doc == nil {
		return nil, errs.NewInvalidJSONError(fmt.Errorf("backup must be a JSON object"))
	}

	var backup Backup
	collections := []collection{
		// restored as a pair by restoreCarousels
		restorable("carousels", &backup.Carousels, nil),
		restorable("carousel_items", &backup.CarouselItems, nil),
		restorable("vlogs", &backup.Vlogs, func(ctx context.Context, tx database.Database) error {
			return tx.VlogRepo().ReplaceAll(ctx, backup.Vlogs)
		}),
		restorable("healing_videos", &backup.HealingVideos, func(ctx context.Context, tx database.Database) error {
			return tx.HealingVideoRepo().ReplaceAll(ctx, backup.HealingVideos)
		}),
		restorable("healing_products", &backup.HealingProducts, func(ctx context.Context, tx database.Database) error {
			return tx.HealingProductRepo().ReplaceAll(ctx, backup.HealingProducts)
		}),
		restorable("storefront_products", &backup.StorefrontProducts, func(ctx context.Context, tx database.Database) error {
			return tx.StorefrontProductRepo().ReplaceAll(ctx, backup.StorefrontProducts)
		}),
		restorable("playlists", &backup.Playlists, func(ctx context.Context, tx database.Database) error {
			return tx.PlaylistRepo().ReplaceAll(ctx, backup.Playlists)
		}),
		restorable("albums", &backup.Albums, func(ctx context.Context, tx database.Database) error {
			return tx.AlbumRepo().ReplaceAll(ctx, backup.Albums)
		}),
		restorable("recipes", &backup.Recipes, func(ctx context.Context, tx database.Database) error {
			return tx.RecipeRepo().ReplaceAll(ctx, backup.Recipes)
		}),
	}

	known := make(map[string]bool, len(collections))
	present := make([]collection, 0, len(collections))
	counts := make(map[string]int, len(collections))
	for _, c := range collections {
		known[c.key] = true
		raw, ok := doc[c.key]
		if !ok {
			continue
		}
		n, err := c.parse(raw)
		if err != nil {
			return nil, errs.NewInvalidJSONError(fmt.Errorf("%s: %w", c.key, err))
		}
		counts[c.key] = n
		present = append(present, c)
	}

	var unknown []string
	for key := range doc {
		if !known[key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		s.logger.Warn().Strs("keys", unknown).Msg("Ignoring unknown backup collections")
	}

	_, withCarousels := counts["carousels"]
	_, withItems := counts["carousel_items"]
	if withCarousels || withItems {
		if err := s.restoreCarousels(ctx, &backup, withCarousels, withItems); err != nil {
			return nil, err
		}
	}

	for _, c := range present {
		if c.replace == nil {
			continue
		}
		if err := s.db.Transaction(ctx, "restore "+c.key, func(tx database.Database) error {
			return c.replace(ctx, tx)
		}); err != nil {
			return nil, err
		}
		s.logger.Info().Str("collection", c.key).Int("rows", counts[c.key]).Msg("Collection restored")
	}
	return counts, nil
}

// restoreCarousels writes carousels and items in one transaction. A side missing
// from the document keeps its current rows; kept items whose carousel is gone
// are dropped.
func (s *BackupService) restoreCarousels(ctx context.Context, backup *Backup, withCarousels, withItems bool) error {
	dropped := 0
	err := s.db.Transaction(ctx, "restore carousels", func(tx database.Database) error {
		items := backup.CarouselItems
		if !withItems {
			current, err := tx.CarouselItemRepo().FindAll(ctx)
			if err != nil {
				return err
			}
			ids := make(map[uuid.UUID]bool, len(backup.Carousels))
			for _, c := range backup.Carousels {
				ids[c.ID] = true
			}
			items = make([]models.CarouselItem, 0, len(current))
			for _, item := range current {
				if ids[item.CarouselID] {
					items = append(items, item)
				}
			}
			dropped = len(current) - len(items)
		}

		// items reference carousels, so they are cleared first and written last
		if err := tx.CarouselItemRepo().ReplaceAll(ctx, nil); err != nil {
			return err
		}
		if withCarousels {
			if err := tx.CarouselRepo().ReplaceAll(ctx, backup.Carousels); err != nil {
				return err
			}
		}
		return tx.CarouselItemRepo().ReplaceAll(ctx, items)
	})
	if err != nil {
		return err
	}

	event := s.logger.Info()
	if withCarousels {
		event = event.Int("carousels", len(backup.Carousels))
	}
	if withItems {
		event = event.Int("carousel_items", len(backup.CarouselItems))
	}
	if dropped > 0 {
		event = event.Int("orphanedItems", dropped)
	}
	event.Msg("Carousels restored")
	return nil
}

func restorable[T any](key string, dst *[]T, replace func(ctx context.Context, tx database.Database) error) collection {
	return collection{
		key: key,
		parse: func(raw json.RawMessage) (int, error) {
			var rows []T
			if err := json.Unmarshal(raw, &rows); err != nil {
				return 0, err
			}
			*dst = rows
			return len(rows), nil
		},
		replace: replace,
	}
}
