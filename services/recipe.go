package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/lifestyle-cms-backend/database"
	"github.com/rpupo63/lifestyle-cms-backend/errs"
	"github.com/rpupo63/lifestyle-cms-backend/media"
	"github.com/rpupo63/lifestyle-cms-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RecipeService stores recipes. Being a beginner recipe is membership in the
// beginner carousel; the featured recipe lives in its own carousel.
type RecipeService struct {
	db       database.Database
	resolver *media.Resolver
	logger   zerolog.Logger
}

func NewRecipeService(db database.Database, resolver *media.Resolver) *RecipeService {
	return &RecipeService{
		db:       db,
		resolver: resolver,
		logger:   log.With().Str("service", "recipe").Logger(),
	}
}

// GetAll returns every recipe in insertion order with IsBeginner filled in
func (s *RecipeService) GetAll(ctx context.Context) ([]models.Recipe, error) {
	recipes, err := s.db.RecipeRepo().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	beginner, err := s.beginnerIDs(ctx)
	if err != nil {
		return nil, err
	}
	for i := range recipes {
		recipes[i].IsBeginner = beginner[recipes[i].ID]
		s.decorate(ctx, &recipes[i])
	}
	return recipes, nil
}

// GetBeginner returns the beginner recipes whose items are active, in carousel order
func (s *RecipeService) GetBeginner(ctx context.Context) ([]models.Recipe, error) {
	items, err := slotItems(ctx, s.db, RecipesBeginnerSlot)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if item.RefID != nil {
			ids = append(ids, *item.RefID)
		}
	}
	rows, err := s.db.RecipeRepo().FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]models.Recipe, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}

	recipes := make([]models.Recipe, 0, len(ids))
	for _, id := range ids {
		recipe, ok := byID[id]
		if !ok {
			continue
		}
		recipe.IsBeginner = true
		s.decorate(ctx, &recipe)
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}

// GetPublished returns the recipes whose effective status at now is published
func (s *RecipeService) GetPublished(ctx context.Context, now time.Time) ([]models.Recipe, error) {
	recipes, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return PublishedRecipes(recipes, now), nil
}

// PublishedRecipes keeps the recipes a visitor sees as published at now, in order
func PublishedRecipes(recipes []models.Recipe, now time.Time) []models.Recipe {
	published := make([]models.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if r.EffectiveStatus(now) == models.StatusPublished {
			published = append(published, r)
		}
	}
	return published
}

func (s *RecipeService) Get(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	recipe, err := s.db.RecipeRepo().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	_, recipe.IsBeginner, err = membership(ctx, s.db, RecipesBeginnerSlot, models.ItemKindRecipe, id)
	if err != nil {
		return nil, err
	}
	s.decorate(ctx, recipe)
	return recipe, nil
}

// Add stores the recipe and, for beginner recipes, its beginner membership, in one transaction
func (s *RecipeService) Add(ctx context.Context, recipe models.Recipe) (*models.Recipe, error) {
	if recipe.Status == "" {
		recipe.Status = models.StatusDraft
	}
	if err := validateRecipe(&recipe); err != nil {
		return nil, err
	}

	recipe.ID = uuid.Nil
	err := s.db.Transaction(ctx, "add recipe", func(tx database.Database) error {
		if err := tx.RecipeRepo().Add(ctx, &recipe); err != nil {
			return err
		}
		if !recipe.IsBeginner {
			return nil
		}
		_, err := attach(ctx, tx, RecipesBeginnerSlot, recipeItemInput(&recipe))
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("recipeID", recipe.ID.String()).Bool("beginner", recipe.IsBeginner).Msg("Recipe added")
	s.decorate(ctx, &recipe)
	return &recipe, nil
}

// Update merges patch; IsBeginner attaches or detaches the beginner membership
func (s *RecipeService) Update(ctx context.Context, id uuid.UUID, patch models.RecipePatch) (*models.Recipe, error) {
	var recipe *models.Recipe
	err := s.db.Transaction(ctx, "update recipe", func(tx database.Database) error {
		var err error
		if recipe, err = tx.RecipeRepo().FindByID(ctx, id); err != nil {
			return err
		}
		patch.Apply(recipe)
		if err := validateRecipe(recipe); err != nil {
			return err
		}
		if err := tx.RecipeRepo().Update(ctx, recipe); err != nil {
			return err
		}

		item, member, err := membership(ctx, tx, RecipesBeginnerSlot, models.ItemKindRecipe, id)
		if err != nil {
			return err
		}
		recipe.IsBeginner = member

		switch {
		case patch.IsBeginner == nil:
		case *patch.IsBeginner && !member:
			if _, err := attach(ctx, tx, RecipesBeginnerSlot, recipeItemInput(recipe)); err != nil {
				return err
			}
			recipe.IsBeginner = true
			return nil
		case !*patch.IsBeginner && member:
			if err := detach(ctx, tx, RecipesBeginnerSlot, models.ItemKindRecipe, id); err != nil {
				return err
			}
			recipe.IsBeginner = false
			return nil
		}

		if member && (patch.Title != nil || patch.ImagePath != nil) {
			_, err = tx.CarouselItemRepo().UpdateItem(ctx, item.ID, models.CarouselItemPatch{
				Caption:   strPtr(recipe.Title),
				ImagePath: strPtr(stringValue(recipe.ImagePath)),
			})
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	s.decorate(ctx, recipe)
	return recipe, nil
}

// Delete removes every membership of the recipe, then the recipe, atomically
func (s *RecipeService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.Transaction(ctx, "delete recipe", func(tx database.Database) error {
		if _, err := tx.RecipeRepo().FindByID(ctx, id); err != nil {
			return err
		}
		if _, err := tx.CarouselItemRepo().DeleteItemsByRef(ctx, models.ItemKindRecipe, id); err != nil {
			return err
		}
		return tx.RecipeRepo().Delete(ctx, id)
	})
}

func (s *RecipeService) SetFeatured(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe *models.Recipe
	err := s.db.Transaction(ctx, "set featured recipe", func(tx database.Database) error {
		var err error
		if recipe, err = tx.RecipeRepo().FindByID(ctx, id); err != nil {
			return err
		}
		_, err = setFeatured(ctx, tx, RecipesFeaturedSlot, recipeItemInput(recipe))
		return err
	})
	if err != nil {
		return nil, err
	}
	s.decorate(ctx, recipe)
	return recipe, nil
}

func (s *RecipeService) Featured(ctx context.Context) (*models.Recipe, bool, error) {
	refID, found, err := featuredRef(ctx, s.db, RecipesFeaturedSlot)
	if err != nil || !found {
		return nil, false, err
	}
	recipe, err := s.Get(ctx, refID)
	if errs.IsNotFound(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return recipe, true, nil
}

func (s *RecipeService) RemoveFeatured(ctx context.Context) error {
	return removeFeatured(ctx, s.db, RecipesFeaturedSlot)
}

// beginnerIDs reads membership the way Get does: a deactivated item still
// makes its recipe a beginner recipe, it is only hidden from GetBeginner
func (s *RecipeService) beginnerIDs(ctx context.Context) (map[uuid.UUID]bool, error) {
	items, err := slotMembers(ctx, s.db, RecipesBeginnerSlot)
	if err != nil {
		return nil, err
	}
	ids := make(map[uuid.UUID]bool, len(items))
	for _, item := range items {
		if item.RefID != nil {
			ids[*item.RefID] = true
		}
	}
	return ids, nil
}

func (s *RecipeService) decorate(ctx context.Context, recipe *models.Recipe) {
	recipe.ImageURL = s.resolver.ResolveImage(ctx, recipe.ImagePath)
}

func recipeItemInput(recipe *models.Recipe) models.CarouselItemInput {
	return models.CarouselItemInput{
		Kind:      models.ItemKindRecipe,
		RefID:     &recipe.ID,
		ImagePath: recipe.ImagePath,
		Caption:   strPtr(recipe.Title),
	}
}

func validateRecipe(recipe *models.Recipe) error {
	if err := requireTitle(recipe.Title); err != nil {
		return err
	}
	if !recipe.Status.Valid() {
		return errs.NewInvalidFieldError("status", "must be draft, published or archived")
	}
	if err := validateJSONArray("ingredients", recipe.Ingredients); err != nil {
		return err
	}
	return validateJSONArray("steps", recipe.Steps)
}
