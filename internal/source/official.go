package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dom/hero-service/internal/domain"
	"go.uber.org/zap"
)

// OfficialSource queries superheroapi.com's search-by-name endpoint. The
// provider is rate-limited and token-gated, so it is only selected when a
// token is configured.
type OfficialSource struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewOfficialSource(baseURL, token string, httpClient *http.Client, logger *zap.Logger) *OfficialSource {
	return &OfficialSource{
		baseURL:    baseURL,
		token:      token,
		httpClient: httpClient,
		logger:     logger,
	}
}

func (s *OfficialSource) Name() string {
	return "official"
}

type searchResponse struct {
	Response string         `json:"response"`
	Error    string         `json:"error"`
	Results  []searchResult `json:"results"`
}

type searchResult struct {
	Name       string          `json:"name"`
	Powerstats json.RawMessage `json:"powerstats"`
}

// FetchHero searches the provider by name. The search may return several
// partial matches; only an exact case-insensitive name match is accepted.
func (s *OfficialSource) FetchHero(ctx context.Context, name string) (*domain.Hero, error) {
	searchURL := fmt.Sprintf("%s/api/%s/search/%s", s.baseURL, s.token, url.PathEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn("superhero api request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("superhero api returned non-200", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrSourceUnavailable, resp.StatusCode)
	}

	var search searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", domain.ErrSourceUnavailable, err)
	}

	// The provider reports no-match through its error envelope.
	if search.Response != "success" {
		return nil, domain.ErrHeroNotFound
	}

	for _, result := range search.Results {
		if matchesName(result.Name, name) {
			return newHero(result.Name, result.Powerstats, s.Name())
		}
	}

	return nil, domain.ErrHeroNotFound
}
