// Package source fetches superhero data from an external provider and
// normalizes it into the canonical domain record.
//
// Two providers exist: the token-gated official API and a free static
// dataset. Which one is active is decided once at startup from
// configuration; the two never chain or fall back to each other.
package source

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/dom/hero-service/internal/domain"
	"gorm.io/datatypes"
)

// Source locates a hero by name at an external provider. Implementations
// return domain.ErrHeroNotFound when no exact (case-insensitive) name match
// exists, and domain.ErrSourceUnavailable when the call itself fails.
type Source interface {
	FetchHero(ctx context.Context, name string) (*domain.Hero, error)
	Name() string
}

// canonicalStats are the powerstats projected into typed columns. The
// providers report more (durability, combat); those survive only in the
// raw stats JSON.
var canonicalStats = []string{"intelligence", "strength", "speed", "power"}

func newHero(name string, powerstats json.RawMessage, sourceName string) (*domain.Hero, error) {
	stats := map[string]any{}
	if len(powerstats) > 0 {
		// A null or malformed powerstats group means every stat is unknown,
		// not that the hero is missing.
		_ = json.Unmarshal(powerstats, &stats)
	}

	hero := &domain.Hero{
		Name:         name,
		Source:       sourceName,
		LastSyncedAt: time.Now(),
	}
	if len(powerstats) > 0 && string(powerstats) != "null" {
		hero.RawStats = datatypes.JSON(powerstats)
	}

	values := make([]*int, len(canonicalStats))
	for i, stat := range canonicalStats {
		values[i] = normalizeStat(stats[stat])
	}
	hero.Intelligence = values[0]
	hero.Strength = values[1]
	hero.Speed = values[2]
	hero.Power = values[3]

	return hero, nil
}

// normalizeStat coerces a raw stat value into an integer. The official API
// reports stats as strings and uses "null" for unknown; the dataset uses
// JSON numbers or null. Anything that does not parse is treated as missing.
func normalizeStat(v any) *int {
	switch value := v.(type) {
	case float64:
		n := int(value)
		return &n
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil
		}
		return &n
	default:
		return nil
	}
}

func matchesName(candidate, target string) bool {
	return strings.EqualFold(strings.TrimSpace(candidate), strings.TrimSpace(target))
}
