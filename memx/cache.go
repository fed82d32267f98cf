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

package memx

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/snipurl/snipurl/cores"
)

type cacheEntry struct {
	// link is nil for a confirmed-absent code
	link       *cores.ShortLink
	expireTime time.Time
}

// MemoryLinkCache implements cores.LinkCache with in-memory storage and
// TTL expiry checked on read.
type MemoryLinkCache struct {
	mutex   sync.RWMutex
	entries map[string]cacheEntry
}

// NewMemoryLinkCache creates a new MemoryLinkCache.
func NewMemoryLinkCache() *MemoryLinkCache {
	return &MemoryLinkCache{
		entries: make(map[string]cacheEntry),
	}
}

// GetOrCreate implements cores.LinkCache.GetOrCreate
func (c *MemoryLinkCache) GetOrCreate(ctx context.Context, key string, ttl time.Duration, fetch cores.FetchFunc) (*cores.ShortLink, error) {
	c.mutex.RLock()
	entry, exists := c.entries[key]
	c.mutex.RUnlock()

	if exists && time.Now().Before(entry.expireTime) {
		return copyLink(entry.link), nil
	}

	// The lock is not held across the fetch; concurrent misses may fetch
	// twice, the last population wins.
	link, err := fetch(ctx)
	if err != nil {
		if errors.Is(err, cores.ErrLinkNotFound) {
			c.store(key, nil, ttl)
			return nil, nil
		}

		return nil, err
	}

	c.store(key, link, ttl)

	return copyLink(link), nil
}

// Set implements cores.LinkCache.Set
func (c *MemoryLinkCache) Set(ctx context.Context, key string, link *cores.ShortLink, ttl time.Duration) error {
	c.store(key, link, ttl)
	return nil
}

// Remove implements cores.LinkCache.Remove
func (c *MemoryLinkCache) Remove(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.entries, key)

	return nil
}

func (c *MemoryLinkCache) store(key string, link *cores.ShortLink, ttl time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = cacheEntry{
		link:       copyLink(link),
		expireTime: time.Now().Add(ttl),
	}
}

func copyLink(link *cores.ShortLink) *cores.ShortLink {
	if link == nil {
		return nil
	}

	copied := *link

	return &copied
}
