/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package redisx

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/snipurl/snipurl/cores"
	"github.com/vogo/vogo/vlog"
)

const (
	defaultKeyPrefix = "shortlink:cache:"

	// absentValue marks a confirmed-absent code so repeated misses do not
	// hammer the backing store.
	absentValue = "\x00"
)

// RedisLinkCache implements cores.LinkCache with Redis storage. Links are
// stored as JSON values under per-code keys with a TTL, absent codes as a
// negative sentinel.
type RedisLinkCache struct {
	redis     *redis.Client
	keyPrefix string
}

type CacheOption func(c *RedisLinkCache)

func WithCacheKeyPrefix(prefix string) CacheOption {
	return func(c *RedisLinkCache) {
		c.keyPrefix = prefix
	}
}

// NewRedisLinkCache creates a new RedisLinkCache.
func NewRedisLinkCache(redisClient *redis.Client, opts ...CacheOption) *RedisLinkCache {
	c := &RedisLinkCache{
		redis:     redisClient,
		keyPrefix: defaultKeyPrefix,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *RedisLinkCache) cacheKey(key string) string {
	return c.keyPrefix + key
}

// GetOrCreate implements cores.LinkCache.GetOrCreate
//
// A Redis failure degrades to a plain fetch without populating the cache;
// the read path must not depend on cache availability.
func (c *RedisLinkCache) GetOrCreate(ctx context.Context, key string, ttl time.Duration, fetch cores.FetchFunc) (*cores.ShortLink, error) {
	value, err := c.redis.Get(ctx, c.cacheKey(key)).Result()
	if err == nil {
		if value == absentValue {
			return nil, nil
		}

		var link cores.ShortLink
		if unmarshalErr := json.Unmarshal([]byte(value), &link); unmarshalErr == nil {
			return &link, nil
		}

		// fall through and refetch on a corrupt entry
		vlog.Errorf("corrupt cache entry, key: %s", key)
	} else if !errors.Is(err, redis.Nil) {
		vlog.Errorf("cache get failed, key: %s, err: %v", key, err)

		return fetch(ctx)
	}

	link, err := fetch(ctx)
	if err != nil {
		if errors.Is(err, cores.ErrLinkNotFound) {
			c.setValue(ctx, key, absentValue, ttl)
			return nil, nil
		}

		return nil, err
	}

	if err = c.Set(ctx, key, link, ttl); err != nil {
		vlog.Errorf("cache populate failed, key: %s, err: %v", key, err)
	}

	return link, nil
}

// Set implements cores.LinkCache.Set
func (c *RedisLinkCache) Set(ctx context.Context, key string, link *cores.ShortLink, ttl time.Duration) error {
	if link == nil {
		c.setValue(ctx, key, absentValue, ttl)
		return nil
	}

	data, err := json.Marshal(link)
	if err != nil {
		return err
	}

	return c.redis.Set(ctx, c.cacheKey(key), data, ttl).Err()
}

// Remove implements cores.LinkCache.Remove
func (c *RedisLinkCache) Remove(ctx context.Context, key string) error {
	return c.redis.Del(ctx, c.cacheKey(key)).Err()
}

func (c *RedisLinkCache) setValue(ctx context.Context, key, value string, ttl time.Duration) {
	if err := c.redis.Set(ctx, c.cacheKey(key), value, ttl).Err(); err != nil {
		vlog.Errorf("cache set failed, key: %s, err: %v", key, err)
	}
}
