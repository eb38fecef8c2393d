package app

import (
	"fmt"

	"github.com/coursekg/coursekg-backend/internal/clients/mlserve"
	"github.com/coursekg/coursekg-backend/internal/platform/logger"
	"github.com/coursekg/coursekg-backend/internal/platform/neo4jdb"
	"github.com/coursekg/coursekg-backend/internal/platform/openai"
	"github.com/coursekg/coursekg-backend/internal/platform/redisdb"
)

type Clients struct {
	Neo4j   *neo4jdb.Client
	Embed   openai.Client
	Cache   *redisdb.Cache
	MLServe *mlserve.Client
}

func wireClients(log *logger.Logger) (Clients, error) {
	neo, err := neo4jdb.NewFromEnv(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init neo4j: %w", err)
	}

	embed, err := openai.NewClient(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init embeddings client: %w", err)
	}

	cache, err := redisdb.NewCacheFromEnv(log)
	if err != nil {
		// Cache is optional; a broken Redis should not block startup.
		log.Warn("redis cache unavailable, continuing without cache", "error", err)
		cache = nil
	}

	ml, err := mlserve.NewFromEnv(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init model server client: %w", err)
	}

	return Clients{
		Neo4j:   neo,
		Embed:   embed,
		Cache:   cache,
		MLServe: ml,
	}, nil
}
