package repository

import (
	"context"

	"github.com/dom/hero-service/internal/domain"
	"github.com/dom/hero-service/internal/query"
)

type HeroRepository interface {
	// Upsert creates the row if no hero with that name exists, otherwise
	// overwrites its attributes. created reports which of the two happened.
	Upsert(ctx context.Context, hero *domain.Hero) (created bool, err error)
	// List returns the heroes matching every filter, all heroes when the
	// filter list is empty.
	List(ctx context.Context, filters []query.Filter) ([]*domain.Hero, error)
	GetByName(ctx context.Context, name string) (*domain.Hero, error)
}

type Repositories struct {
	Hero HeroRepository
}
