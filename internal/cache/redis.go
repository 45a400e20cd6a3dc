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

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/TFMV/nlmunicipality/pkg/utils"
)

// DefaultPrefix namespaces the keys written by Redis.
const DefaultPrefix = "nlm:"

// Redis stores results in a Redis server, shared between processes. Errors
// are logged and reported as a miss.
type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	log    *utils.Logger
}

// NewRedis wraps an open client. A zero ttl keeps entries forever.
func NewRedis(client *redis.Client, prefix string, ttl time.Duration, log *utils.Logger) *Redis {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if log == nil {
		log = utils.NewLogger("cache")
	}
	return &Redis{client: client, prefix: prefix, ttl: ttl, log: log}
}

// OpenRedis opens a client for addr. It returns nil when addr is empty.
func OpenRedis(addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
}

func (c *Redis) Get(ctx context.Context, key Key) (Result, bool) {
	s, err := c.client.Get(ctx, c.prefix+key.String()).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Error("redis get failed", "error", err)
		}
		return Result{}, false
	}
	var r Result
	if err := json.Unmarshal([]byte(s), &r); err != nil {
		c.log.Error("redis entry unreadable", "key", key.String(), "error", err)
		return Result{}, false
	}
	return r, true
}

func (c *Redis) Set(ctx context.Context, key Key, r Result) {
	b, err := json.Marshal(r)
	if err != nil {
		c.log.Error("redis encode failed", "error", err)
		return
	}
	if err := c.client.Set(ctx, c.prefix+key.String(), string(b), c.ttl).Err(); err != nil {
		c.log.Error("redis set failed", "error", err)
	}
}

// Ping checks the connection.
func (c *Redis) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
