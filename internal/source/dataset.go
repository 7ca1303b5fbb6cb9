package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/dom/hero-service/internal/domain"
	"go.uber.org/zap"
)

// DatasetSource serves lookups from a single large static dataset listing
// every hero. The list is fetched once and kept in memory for the
// configured TTL; lookups within the TTL are a linear scan over the cached
// copy. Used when no API token is configured.
type DatasetSource struct {
	datasetURL string
	ttl        time.Duration
	httpClient *http.Client
	logger     *zap.Logger

	mu        sync.RWMutex
	heroes    []datasetHero
	fetchedAt time.Time
}

type datasetHero struct {
	Name       string          `json:"name"`
	Powerstats json.RawMessage `json:"powerstats"`
}

func NewDatasetSource(datasetURL string, ttl time.Duration, httpClient *http.Client, logger *zap.Logger) *DatasetSource {
	return &DatasetSource{
		datasetURL: datasetURL,
		ttl:        ttl,
		httpClient: httpClient,
		logger:     logger,
	}
}

func (s *DatasetSource) Name() string {
	return "dataset"
}

func (s *DatasetSource) FetchHero(ctx context.Context, name string) (*domain.Hero, error) {
	heroes, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	for _, entry := range heroes {
		if matchesName(entry.Name, name) {
			return newHero(entry.Name, entry.Powerstats, s.Name())
		}
	}

	return nil, domain.ErrHeroNotFound
}

func (s *DatasetSource) load(ctx context.Context) ([]datasetHero, error) {
	s.mu.RLock()
	if s.heroes != nil && time.Since(s.fetchedAt) < s.ttl {
		heroes := s.heroes
		s.mu.RUnlock()
		return heroes, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another request may have refreshed the dataset while we waited.
	if s.heroes != nil && time.Since(s.fetchedAt) < s.ttl {
		return s.heroes, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.datasetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn("dataset fetch failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("dataset fetch returned non-200", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrSourceUnavailable, resp.StatusCode)
	}

	var heroes []datasetHero
	if err := json.NewDecoder(resp.Body).Decode(&heroes); err != nil {
		return nil, fmt.Errorf("%w: decoding dataset: %v", domain.ErrSourceUnavailable, err)
	}

	s.heroes = heroes
	s.fetchedAt = time.Now()
	s.logger.Info("hero dataset refreshed", zap.Int("heroes", len(heroes)))

	return s.heroes, nil
}
