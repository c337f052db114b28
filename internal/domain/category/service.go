package category

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/saurabhsolanke/expensify-be/internal/domain/apperr"
	"github.com/saurabhsolanke/expensify-be/internal/domain/ids"
)

const maxNameLength = 50

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type Service struct {
	repo     Repository
	cache    Cache
	cacheTTL time.Duration
}

func NewService(repo Repository) *Service {
	return NewServiceWithCache(repo, nil, 0)
}

func NewServiceWithCache(repo Repository, cache Cache, ttl time.Duration) *Service {
	if cache == nil || ttl <= 0 {
		cache = noopCache{}
	}
	return &Service{repo: repo, cache: cache, cacheTTL: ttl}
}

func (s *Service) ListCategories(ctx context.Context, userID string) ([]Category, error) {
	if cached, ok := s.cache.GetByUserID(userID); ok {
		return cached, nil
	}

	categories, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []Category{}
	}

	s.cache.SetByUserID(userID, categories, s.cacheTTL)
	return categories, nil
}

// GetCategory returns the category only when userID owns it.
func (s *Service) GetCategory(ctx context.Context, userID, categoryID string) (*Category, error) {
	id, err := ids.Parse("category_id", categoryID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, userID, id)
}

func (s *Service) CreateCategory(ctx context.Context, input CreateInput) (*Category, error) {
	name, err := normalizeName(input.Name)
	if err != nil {
		return nil, err
	}
	color, err := normalizeColor(input.Color)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountByName(ctx, input.UserID, name, "")
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrCategoryNameTaken
	}

	category := Category{
		ID:     ids.New(),
		UserID: input.UserID,
		Name:   name,
		Color:  color,
		Icon:   normalizeIcon(input.Icon),
	}
	if err := s.repo.Create(ctx, &category); err != nil {
		return nil, err
	}

	s.cache.DeleteByUserID(input.UserID)
	return &category, nil
}

func (s *Service) UpdateCategory(ctx context.Context, input UpdateInput) (*Category, error) {
	category, err := s.GetCategory(ctx, input.UserID, input.CategoryID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name, err := normalizeName(*input.Name)
		if err != nil {
			return nil, err
		}
		count, err := s.repo.CountByName(ctx, input.UserID, name, category.ID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrCategoryNameTaken
		}
		category.Name = name
	}
	if input.Color != nil {
		color, err := normalizeColor(input.Color)
		if err != nil {
			return nil, err
		}
		category.Color = color
	}
	if input.Icon != nil {
		category.Icon = normalizeIcon(input.Icon)
	}

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}

	s.cache.DeleteByUserID(input.UserID)
	return category, nil
}

func (s *Service) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	category, err := s.GetCategory(ctx, userID, categoryID)
	if err != nil {
		return err
	}
	if category.IsDefault {
		return ErrDefaultCategory
	}

	inUse, err := s.repo.CountExpenses(ctx, userID, category.ID)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return ErrCategoryInUse
	}

	deleted, err := s.repo.Delete(ctx, userID, category.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCategoryNotFound
	}

	s.cache.DeleteByUserID(userID)
	return nil
}

// SetupDefaults seeds the fixed default categories. It refuses to run twice
// for the same user, and when the user already has every default name.
func (s *Service) SetupDefaults(ctx context.Context, userID string) ([]Category, error) {
	var created []Category
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		count, err := tx.CountDefaults(ctx, userID)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrDefaultsAlreadySetUp
		}

		created = make([]Category, 0, len(defaultCategories))
		for _, item := range defaultCategories {
			taken, err := tx.CountByName(ctx, userID, item.Name, "")
			if err != nil {
				return err
			}
			if taken > 0 {
				continue
			}
			created = append(created, Category{
				ID:        ids.New(),
				UserID:    userID,
				Name:      item.Name,
				Color:     item.Color,
				Icon:      item.Icon,
				IsDefault: true,
			})
		}
		if len(created) == 0 {
			return ErrDefaultsAlreadySetUp
		}
		return tx.CreateMany(ctx, created)
	})
	if err != nil {
		return nil, err
	}

	s.cache.DeleteByUserID(userID)
	return created, nil
}

func normalizeName(value string) (string, error) {
	name := strings.TrimSpace(value)
	if name == "" {
		return "", apperr.Validation("name", value, "name is required")
	}
	if len([]rune(name)) > maxNameLength {
		return "", apperr.Validation("name", value, "name must be at most 50 characters")
	}
	return name, nil
}

func normalizeColor(value *string) (string, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return DefaultColor, nil
	}
	color := strings.TrimSpace(*value)
	if !colorPattern.MatchString(color) {
		return "", ErrInvalidColor
	}
	return strings.ToUpper(color), nil
}

func normalizeIcon(value *string) string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return DefaultIcon
	}
	return strings.TrimSpace(*value)
}
