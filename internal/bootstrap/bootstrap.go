// --------------------------------------------------------------------------------
// Author: Thomas F McGeehan V
//
// This file is part of a software project developed by Thomas F McGeehan V.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//
// For more information about the MIT License, please visit:
// https://opensource.org/licenses/MIT
//
// Acknowledgment appreciated but not required.
// --------------------------------------------------------------------------------

// Package bootstrap wires configuration, reference data and caches into a
// ready engine for the binaries.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/TFMV/nlmunicipality/internal/cache"
	"github.com/TFMV/nlmunicipality/internal/matcher"
	"github.com/TFMV/nlmunicipality/pkg/config"
	"github.com/TFMV/nlmunicipality/pkg/db"
	"github.com/TFMV/nlmunicipality/pkg/refdata"
	"github.com/TFMV/nlmunicipality/pkg/utils"
)

// Runtime holds the engine and the connections it depends on.
type Runtime struct {
	Config *config.Config
	Engine *matcher.Engine
	Cache  *cache.Counting

	pool  *pgxpool.Pool
	redis *redis.Client
}

// LoadConfig reads .env, the YAML file at path (if any) and the environment
// overrides, in that order.
func LoadConfig(path string) (*config.Config, error) {
	if err := config.LoadEnv(); err != nil {
		return nil, err
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// New loads the reference tables and builds the engine. Close releases the
// connections.
func New(ctx context.Context, cfg *config.Config, log *utils.Logger) (*Runtime, error) {
	if log == nil {
		log = utils.NewLogger("bootstrap")
	}
	rt := &Runtime{Config: cfg}

	source, err := rt.source(ctx, log)
	if err != nil {
		return nil, err
	}
	tables, err := source.Load(ctx)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("failed to load reference data: %w", err)
	}
	log.Info("reference data loaded",
		"source", cfg.Data.Source,
		"municipalities", len(tables.Municipalities),
		"places", len(tables.Places),
		"neighbourhoods", len(tables.Neighbourhoods),
		"encyclopedia", len(tables.Encyclopedia),
		"register", len(tables.Register),
	)

	rt.Cache = cache.NewCounting(rt.backend(ctx, log))

	rt.Engine, err = matcher.NewEngine(tables, cfg.EngineConfig(),
		matcher.WithCache(rt.Cache),
		matcher.WithLogger(log),
	)
	if err != nil {
		rt.Close()
		return nil, err
	}
	return rt, nil
}

func (rt *Runtime) source(ctx context.Context, log *utils.Logger) (refdata.Source, error) {
	if rt.Config.Data.Source != "postgres" {
		return refdata.NewDirSource(rt.Config.Data.Dir), nil
	}
	pool, err := db.NewConnection(ctx, rt.Config.DBCreds.ConnString())
	if err != nil {
		return nil, err
	}
	rt.pool = pool
	log.Info("reading reference data from postgres", "host", pool.Config().ConnConfig.Host)
	return db.NewPostgresSource(pool), nil
}

// backend picks the configured cache. An unreachable Redis falls back to the
// in-memory cache.
func (rt *Runtime) backend(ctx context.Context, log *utils.Logger) cache.Cache {
	c := rt.Config.Cache
	switch c.Backend {
	case "none":
		return cache.Noop{}
	case "redis":
		client := cache.OpenRedis(c.Redis.Addr, c.Redis.Password, c.Redis.DB)
		if client == nil {
			log.Warn("redis cache selected without an address, using memory")
			return cache.NewMemory()
		}
		r := cache.NewRedis(client, c.Redis.Prefix, c.Redis.TTL, log)
		if err := r.Ping(ctx); err != nil {
			log.Warn("redis unreachable, using memory", "addr", c.Redis.Addr, "error", err)
			client.Close()
			return cache.NewMemory()
		}
		rt.redis = client
		return r
	}
	return cache.NewMemory()
}

// Pool returns the Postgres pool, or nil when tables come from CSV.
func (rt *Runtime) Pool() *pgxpool.Pool { return rt.pool }

// Close releases the database pool and the Redis client.
func (rt *Runtime) Close() {
	if rt.pool != nil {
		rt.pool.Close()
	}
	if rt.redis != nil {
		rt.redis.Close()
	}
}
