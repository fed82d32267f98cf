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

package cores

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LinkFilter scopes a listing. OwnerID is always applied. A non-blank
// Search additionally requires the code, short URL or long URL to contain
// it as a case-sensitive substring.
type LinkFilter struct {
	OwnerID uuid.UUID
	Search  string
}

// LinkRepository is the transactional persistence gateway for short links.
// Each write commits on return; the unique index on Code is the final
// authority on uniqueness and a duplicate insert surfaces ErrAlreadyExists.
type LinkRepository interface {
	// Add persists a new link. The gateway assigns CreateTime when it is
	// zero.
	Add(ctx context.Context, link *ShortLink) error

	// Remove deletes a previously fetched link by its code.
	Remove(ctx context.Context, link *ShortLink) error

	// GetByCode fetches the link with an exact code match, or
	// ErrLinkNotFound.
	GetByCode(ctx context.Context, code string) (*ShortLink, error)

	// CodeTaken reports whether any record already uses the code.
	CodeTaken(ctx context.Context, code string) (bool, error)

	// IncrementClicks atomically adds one to the click counter of the
	// record with the given code.
	IncrementClicks(ctx context.Context, code string) error

	// Page returns one page of the filtered listing, sorted ascending by
	// create time, paging clamped per NormalizePaging.
	Page(ctx context.Context, filter LinkFilter, pageNumber, pageSize int) (*Page[*ShortLink], error)
}

// FetchFunc loads a link from the authoritative store on a cache miss.
// It returns ErrLinkNotFound for an absent record.
type FetchFunc func(ctx context.Context) (*ShortLink, error)

// LinkCache is a key/value store with read-through fetch, explicit set and
// removal. Entries expire by TTL.
//
// GetOrCreate returns the cached link on a hit without touching fetch.
// On a miss it calls fetch and populates the cache with the result; a fetch
// ending in ErrLinkNotFound populates a negative "absent" entry. A nil link
// with a nil error means confirmed absent.
type LinkCache interface {
	GetOrCreate(ctx context.Context, key string, ttl time.Duration, fetch FetchFunc) (*ShortLink, error)
	Set(ctx context.Context, key string, link *ShortLink, ttl time.Duration) error
	Remove(ctx context.Context, key string) error
}

// CacheKey returns the cache key for a short code.
func CacheKey(code string) string {
	return "code-" + code
}
