package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dom/hero-service/internal/domain"
	"github.com/dom/hero-service/internal/query"
	"github.com/dom/hero-service/internal/service"
	"go.uber.org/zap"
)

type HeroHandler struct {
	heroService *service.HeroService
	logger      *zap.Logger
}

func NewHeroHandler(heroService *service.HeroService, logger *zap.Logger) *HeroHandler {
	return &HeroHandler{heroService: heroService, logger: logger}
}

type CreateHeroRequest struct {
	Name string `json:"name"`
}

type HeroListResponse struct {
	Heroes []*domain.Hero `json:"heroes"`
}

// Create fetches the named hero from the active external source and stores
// it, overwriting any previous record with the same name. Responds 201 on
// first create, 200 on subsequent updates.
func (h *HeroHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateHeroRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	hero, created, err := h.heroService.CreateOrUpdate(r.Context(), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRequest):
			writeError(w, http.StatusBadRequest, `Parameter "name" is required`)
		case errors.Is(err, domain.ErrHeroNotFound):
			writeError(w, http.StatusNotFound, fmt.Sprintf("Hero %q not found", req.Name))
		case errors.Is(err, domain.ErrSourceUnavailable):
			h.logger.Error("hero source unavailable", zap.String("name", req.Name), zap.Error(err))
			writeError(w, http.StatusBadGateway, "Hero source unavailable")
		default:
			h.logger.Error("hero create failed", zap.String("name", req.Name), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, hero)
}

// List returns the stored heroes matching the query-string filters, every
// stored hero when no filters are supplied. Zero matches is an empty array,
// not an error.
func (h *HeroHandler) List(w http.ResponseWriter, r *http.Request) {
	filters, err := query.ParseFilters(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	heroes, err := h.heroService.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("hero list failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if heroes == nil {
		heroes = []*domain.Hero{}
	}
	writeJSON(w, http.StatusOK, HeroListResponse{Heroes: heroes})
}
