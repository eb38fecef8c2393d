package app

import (
	"github.com/coursekg/coursekg-backend/internal/platform/envutil"
	"github.com/coursekg/coursekg-backend/internal/services"
)

type Config struct {
	Port        string
	Environment string
	Version     string

	CrossDomain services.CrossDomainThresholds
}

func LoadConfig() Config {
	return Config{
		Port:        envutil.String("PORT", "8000"),
		Environment: envutil.String("APP_ENV", "development"),
		Version:     envutil.String("APP_VERSION", "dev"),
		CrossDomain: services.CrossDomainThresholds{
			Limit:           envutil.Int("CROSS_DOMAIN_LIMIT", 3),
			MinSimilarity:   envutil.Float("CROSS_DOMAIN_MIN_SIMILARITY", 0.7),
			MinSkillOverlap: envutil.Float("CROSS_DOMAIN_MIN_SKILL_OVERLAP", 0.15),
		},
	}
}
