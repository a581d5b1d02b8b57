package service

import (
	"context"

	"github.com/aussiebroadwan/climblog/internal/devserver/domain"
	"github.com/aussiebroadwan/climblog/internal/devserver/store"
)

// CatalogService serves the public reference data.
type CatalogService struct {
	Store store.Store
}

func (s *CatalogService) ListGyms(ctx context.Context) ([]domain.Gym, error) {
	return s.Store.Catalog().ListGyms(ctx)
}

func (s *CatalogService) ListStyles(ctx context.Context) ([]domain.Style, error) {
	return s.Store.Catalog().ListStyles(ctx)
}

func (s *CatalogService) ListSkillLevels(ctx context.Context) ([]domain.SkillLevel, error) {
	return s.Store.Catalog().ListSkillLevels(ctx)
}
