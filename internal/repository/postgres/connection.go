package postgres

import (
	"fmt"
	"time"

	"github.com/dom/hero-service/internal/domain"
	"github.com/dom/hero-service/internal/repository"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.Hero{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// NewConnectionWithRetry keeps retrying the initial connection so the
// service can start before the database container finishes booting.
func NewConnectionWithRetry(databaseURL string, attempts int, delay time.Duration, log *zap.Logger) (*gorm.DB, error) {
	var lastErr error
	for i := 0; i < attempts; i++ {
		db, err := NewConnection(databaseURL)
		if err == nil {
			return db, nil
		}
		lastErr = err
		log.Warn("database not ready, retrying",
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", attempts),
			zap.Error(err))
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database unavailable after %d attempts: %w", attempts, lastErr)
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		Hero: NewHeroRepository(db),
	}
}
