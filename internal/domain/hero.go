package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Hero is the canonical record stored for a superhero, regardless of which
// external source produced it. Stat columns are pointers: a stat the source
// reports as "null"/"unknown" (or omits entirely) stays NULL rather than
// collapsing to zero.
type Hero struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name         string         `json:"name" gorm:"uniqueIndex;not null"`
	Intelligence *int           `json:"intelligence"`
	Strength     *int           `json:"strength"`
	Speed        *int           `json:"speed"`
	Power        *int           `json:"power"`
	RawStats     datatypes.JSON `json:"rawStats" gorm:"type:jsonb"` // full powerstats object as the source returned it
	Source       string         `json:"source"`                     // "official" or "dataset"
	LastSyncedAt time.Time      `json:"lastSyncedAt"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}
