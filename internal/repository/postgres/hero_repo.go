package postgres

import (
	"context"
	"errors"

	"github.com/dom/hero-service/internal/domain"
	"github.com/dom/hero-service/internal/query"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type heroRepository struct {
	db *gorm.DB
}

func NewHeroRepository(db *gorm.DB) *heroRepository {
	return &heroRepository{db: db}
}

// Upsert is keyed on the hero name. The write itself is a single
// ON CONFLICT statement, so its atomicity is the database's; the
// existence check beforehand only decides the created flag.
func (r *heroRepository) Upsert(ctx context.Context, hero *domain.Hero) (bool, error) {
	created := false

	var existing domain.Hero
	err := r.db.WithContext(ctx).First(&existing, "name = ?", hero.Name).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		created = true
	case err != nil:
		return false, err
	default:
		// The insert must not carry the existing id: the conflict arbiter is
		// the name index, and a proposed row that also collides on the
		// primary key would error instead of updating. RETURNING fills in
		// the id either way.
		hero.CreatedAt = existing.CreatedAt
	}

	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"intelligence", "strength", "speed", "power",
			"raw_stats", "source", "last_synced_at", "updated_at",
		}),
	}).Create(hero).Error
	if err != nil {
		return false, err
	}

	return created, nil
}

func (r *heroRepository) List(ctx context.Context, filters []query.Filter) ([]*domain.Hero, error) {
	db := r.db.WithContext(ctx)
	for _, f := range filters {
		cond, arg := f.Condition()
		db = db.Where(cond, arg)
	}

	var heroes []*domain.Hero
	err := db.Order("name ASC").Find(&heroes).Error
	if err != nil {
		return nil, err
	}
	return heroes, nil
}

func (r *heroRepository) GetByName(ctx context.Context, name string) (*domain.Hero, error) {
	var hero domain.Hero
	err := r.db.WithContext(ctx).First(&hero, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrHeroNotFound
	}
	if err != nil {
		return nil, err
	}
	return &hero, nil
}
