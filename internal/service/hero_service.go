package service

import (
	"context"
	"errors"
	"strings"

	"github.com/dom/hero-service/internal/domain"
	"github.com/dom/hero-service/internal/metrics"
	"github.com/dom/hero-service/internal/query"
	"github.com/dom/hero-service/internal/repository"
	"github.com/dom/hero-service/internal/source"
	"go.uber.org/zap"
)

type HeroService struct {
	heroRepo repository.HeroRepository
	source   source.Source
	logger   *zap.Logger
}

// NewHeroService wires the repository to the externally selected source.
// The source is chosen once at startup; the service never switches between
// providers per request.
func NewHeroService(heroRepo repository.HeroRepository, src source.Source, logger *zap.Logger) *HeroService {
	return &HeroService{
		heroRepo: heroRepo,
		source:   src,
		logger:   logger,
	}
}

// CreateOrUpdate fetches the named hero from the active source and upserts
// the canonical record. The stored attributes are fully replaced with the
// freshly fetched values, never merged. created reports whether the row is
// new (drives 201 vs 200 at the HTTP boundary).
func (s *HeroService) CreateOrUpdate(ctx context.Context, name string) (*domain.Hero, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, domain.ErrInvalidRequest
	}

	hero, err := s.source.FetchHero(ctx, name)
	if err != nil {
		metrics.ObserveSourceFetch(s.source.Name(), fetchOutcome(err))
		return nil, false, err
	}
	metrics.ObserveSourceFetch(s.source.Name(), "hit")

	created, err := s.heroRepo.Upsert(ctx, hero)
	if err != nil {
		s.logger.Error("hero upsert failed", zap.String("name", hero.Name), zap.Error(err))
		return nil, false, err
	}

	s.logger.Info("hero stored",
		zap.String("name", hero.Name),
		zap.String("source", s.source.Name()),
		zap.Bool("created", created))

	return hero, created, nil
}

// List returns the stored heroes matching the filter conjunction.
func (s *HeroService) List(ctx context.Context, filters []query.Filter) ([]*domain.Hero, error) {
	return s.heroRepo.List(ctx, filters)
}

func fetchOutcome(err error) string {
	if errors.Is(err, domain.ErrHeroNotFound) {
		return "miss"
	}
	return "error"
}
