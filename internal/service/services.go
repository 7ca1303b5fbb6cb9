package service

import (
	"github.com/dom/hero-service/internal/repository"
	"github.com/dom/hero-service/internal/source"
	"go.uber.org/zap"
)

type Services struct {
	Hero *HeroService
}

func NewServices(repos *repository.Repositories, src source.Source, logger *zap.Logger) *Services {
	return &Services{
		Hero: NewHeroService(repos.Hero, src, logger),
	}
}
