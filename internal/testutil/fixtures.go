package testutil

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dom/hero-service/internal/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// IntPtr returns a pointer to n, for populating nullable stat fields.
func IntPtr(n int) *int {
	return &n
}

// StubSource is an in-memory hero source for tests. Lookups follow the real
// sources' contract: case-insensitive exact name match, ErrHeroNotFound on
// a miss, and an injectable failure via Err.
type StubSource struct {
	mu     sync.Mutex
	heroes map[string]*domain.Hero
	Err    error
}

func NewStubSource() *StubSource {
	return &StubSource{heroes: make(map[string]*domain.Hero)}
}

func (s *StubSource) Name() string {
	return "stub"
}

// Add registers a hero under its lower-cased name.
func (s *StubSource) Add(hero *domain.Hero) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.heroes[strings.ToLower(hero.Name)] = hero
}

func (s *StubSource) FetchHero(ctx context.Context, name string) (*domain.Hero, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	hero, ok := s.heroes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, domain.ErrHeroNotFound
	}

	// Hand out a copy so repository writes never mutate the fixture.
	out := *hero
	out.Source = s.Name()
	out.LastSyncedAt = time.Now()
	return &out, nil
}

// HeroBuilder creates test heroes with a builder pattern
type HeroBuilder struct {
	name         string
	intelligence *int
	strength     *int
	speed        *int
	power        *int
	rawStats     datatypes.JSON
}

// NewHeroBuilder creates a new HeroBuilder with default values
func NewHeroBuilder(name string) *HeroBuilder {
	return &HeroBuilder{
		name:         name,
		intelligence: IntPtr(50),
		strength:     IntPtr(50),
		speed:        IntPtr(50),
		power:        IntPtr(50),
	}
}

// WithStats sets all four canonical stats at once
func (b *HeroBuilder) WithStats(intelligence, strength, speed, power int) *HeroBuilder {
	b.intelligence = IntPtr(intelligence)
	b.strength = IntPtr(strength)
	b.speed = IntPtr(speed)
	b.power = IntPtr(power)
	return b
}

// WithNullStats clears every stat, as for a hero the source knows nothing about
func (b *HeroBuilder) WithNullStats() *HeroBuilder {
	b.intelligence = nil
	b.strength = nil
	b.speed = nil
	b.power = nil
	return b
}

// Hero returns the built hero without persisting it
func (b *HeroBuilder) Hero() *domain.Hero {
	return &domain.Hero{
		Name:         b.name,
		Intelligence: b.intelligence,
		Strength:     b.strength,
		Speed:        b.speed,
		Power:        b.power,
		RawStats:     b.rawStats,
		Source:       "stub",
		LastSyncedAt: time.Now(),
	}
}

// Build creates the hero in the database and returns it
func (b *HeroBuilder) Build(t *testing.T, db *gorm.DB) *domain.Hero {
	t.Helper()

	hero := b.Hero()
	if err := db.Create(hero).Error; err != nil {
		t.Fatalf("failed to create hero: %v", err)
	}
	return hero
}
