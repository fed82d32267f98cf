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
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/vogo/vogo/vlog"
)

const (
	// DefaultMaxAttempts bounds the unique-code retry loop.
	DefaultMaxAttempts = 10

	// DefaultCacheTTL is the expiry for cache-aside entries.
	DefaultCacheTTL = time.Hour

	// DefaultLRUSize bounds the in-process redirect cache.
	DefaultLRUSize = 4096
)

// AnonymousDeletePolicy decides who may delete a link that has no owner.
type AnonymousDeletePolicy int

const (
	// AnonymousDeleteNobody forbids deleting ownerless links entirely.
	AnonymousDeleteNobody AnonymousDeletePolicy = iota

	// AnonymousDeleteAnyone lets any identified requester delete
	// ownerless links.
	AnonymousDeleteAnyone
)

// ShortLinkService orchestrates validation, unique-code generation with
// bounded collision retry, cache-aside reads with click accounting,
// ownership-checked deletion and ownership-scoped paginated listing.
//
// The service holds no cross-request mutable state beyond the shared
// repository and cache handles and a bounded LRU of resolved redirects;
// uniqueness is serialized solely by the persistence layer's unique index.
type ShortLinkService struct {
	Repo  LinkRepository
	Cache LinkCache
	Gen   *CodeGenerator

	retry      retryPolicy
	cacheTTL   time.Duration
	authToken  string
	anonDelete AnonymousDeletePolicy
	lruSize    int

	// memCache holds code -> long URL for the redirect hot path. Stale
	// entries are evicted on Delete in this process and by capacity
	// otherwise.
	memCache *lru.Cache[string, string]
}

// ServiceOption configures a ShortLinkService.
type ServiceOption func(s *ShortLinkService)

// WithMaxAttempts overrides the unique-code retry budget.
func WithMaxAttempts(n int) ServiceOption {
	return func(s *ShortLinkService) {
		s.retry.maxAttempts = n
	}
}

// WithCacheTTL overrides the cache-aside entry TTL.
func WithCacheTTL(ttl time.Duration) ServiceOption {
	return func(s *ShortLinkService) {
		s.cacheTTL = ttl
	}
}

// WithAuthToken guards the HTTP management operations.
func WithAuthToken(token string) ServiceOption {
	return func(s *ShortLinkService) {
		s.authToken = token
	}
}

// WithAnonymousDelete sets the deletion policy for ownerless links.
func WithAnonymousDelete(policy AnonymousDeletePolicy) ServiceOption {
	return func(s *ShortLinkService) {
		s.anonDelete = policy
	}
}

// WithLRUSize overrides the in-process redirect cache capacity.
func WithLRUSize(n int) ServiceOption {
	return func(s *ShortLinkService) {
		s.lruSize = n
	}
}

// NewShortLinkService creates the service. Dependencies are passed in
// explicitly and shared across all requests.
func NewShortLinkService(repo LinkRepository, cache LinkCache, gen *CodeGenerator, opts ...ServiceOption) *ShortLinkService {
	s := &ShortLinkService{
		Repo:  repo,
		Cache: cache,
		Gen:   gen,

		retry:    retryPolicy{maxAttempts: DefaultMaxAttempts},
		cacheTTL: DefaultCacheTTL,
		lruSize:  DefaultLRUSize,
	}

	for _, opt := range opts {
		opt(s)
	}

	memCache, err := lru.New[string, string](s.lruSize)
	if err != nil {
		vlog.Panicf("create redirect lru cache failed, err: %v", err)
	}
	s.memCache = memCache

	return s
}

// CreateLinkRequest carries the inputs of Create. Scheme and Host come from
// the inbound request so the composed short URL follows the caller's own
// origin. A zero OwnerID creates an anonymous link.
type CreateLinkRequest struct {
	LongURL string
	OwnerID uuid.UUID
	Scheme  string
	Host    string
}

// Create validates the long URL, generates a unique code retrying against
// the repository, persists the record and returns the composed short URL
// "{scheme}://{host}/{code}".
//
// The uniqueness check is advisory; if a concurrent Create wins the race
// the unique index rejects the insert and the failure is reported as the
// same exhaustion class.
func (s *ShortLinkService) Create(ctx context.Context, req CreateLinkRequest) (string, error) {
	if err := ValidateLongURL(req.LongURL); err != nil {
		return "", err
	}

	code, err := s.retry.Run(ctx, func(ctx context.Context) (string, bool, error) {
		candidate := s.Gen.Generate()

		taken, err := s.Repo.CodeTaken(ctx, candidate)
		if err != nil {
			return "", false, err
		}

		return candidate, !taken, nil
	})
	if err != nil {
		return "", err
	}

	shortURL := fmt.Sprintf("%s://%s/%s", req.Scheme, req.Host, code)

	link := &ShortLink{
		ID:       uuid.New(),
		Code:     code,
		LongURL:  req.LongURL,
		ShortURL: shortURL,
		Clicks:   0,
		OwnerID:  req.OwnerID,
	}

	if err = s.Repo.Add(ctx, link); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return "", fmt.Errorf("%w: %v", ErrCodeExhausted, err)
		}

		return "", err
	}

	return shortURL, nil
}

// Get resolves a code through the cache-aside path and counts the click.
//
// On a cache miss the record is fetched from the repository once and the
// cache is populated, absent results included. When the record exists, one
// atomic click increment goes directly to the repository; the cached copy
// is left alone, so its click count may lag until the TTL expires. An
// increment failure is logged, never surfaced.
func (s *ShortLinkService) Get(ctx context.Context, code string) (*LinkView, error) {
	if code == "" {
		return nil, ErrLinkNotFound
	}

	link, err := s.Cache.GetOrCreate(ctx, CacheKey(code), s.cacheTTL, func(ctx context.Context) (*ShortLink, error) {
		return s.Repo.GetByCode(ctx, code)
	})
	if err != nil {
		return nil, err
	}

	if link == nil {
		return nil, ErrLinkNotFound
	}

	s.countClick(ctx, code)

	return link.View(), nil
}

// Resolve returns the long URL for a code on the redirect hot path,
// consulting the in-process LRU before the shared cache. Every successful
// resolution counts one click.
func (s *ShortLinkService) Resolve(ctx context.Context, code string) (string, error) {
	if target, ok := s.memCache.Get(code); ok {
		s.countClick(ctx, code)
		return target, nil
	}

	view, err := s.Get(ctx, code)
	if err != nil {
		return "", err
	}

	s.memCache.Add(code, view.LongURL)

	return view.LongURL, nil
}

func (s *ShortLinkService) countClick(ctx context.Context, code string) {
	if err := s.Repo.IncrementClicks(ctx, code); err != nil {
		vlog.Errorf("increment clicks failed, code: %s, err: %v", code, err)
	}
}

// Delete removes the link with the given code after an ownership check.
// The record is fetched from the repository, never the cache. A missing
// record is ErrLinkNotFound, an ownership mismatch is ErrForbidden and
// leaves the record untouched. After the delete commits, the cache entry is
// invalidated best effort; TTL expiry is the backstop.
func (s *ShortLinkService) Delete(ctx context.Context, code string, requesterID uuid.UUID) error {
	link, err := s.Repo.GetByCode(ctx, code)
	if err != nil {
		return err
	}

	if !s.ownerMatches(link, requesterID) {
		return ErrForbidden
	}

	if err = s.Repo.Remove(ctx, link); err != nil {
		return err
	}

	s.memCache.Remove(code)

	if err = s.Cache.Remove(ctx, CacheKey(code)); err != nil {
		vlog.Errorf("remove cache entry failed, code: %s, err: %v", code, err)
	}

	return nil
}

// ownerMatches is the explicit ownership equality rule. An owned link is
// deletable only by its exact owner. An ownerless link follows the
// configured AnonymousDeletePolicy and is never deletable by an
// unidentified requester.
func (s *ShortLinkService) ownerMatches(link *ShortLink, requesterID uuid.UUID) bool {
	if link.Anonymous() {
		return s.anonDelete == AnonymousDeleteAnyone && requesterID != uuid.Nil
	}

	return link.OwnerID == requesterID
}

// List returns one page of the requester's links, optionally filtered by a
// search substring over code, short URL and long URL, sorted ascending by
// create time. A zero ownerID is a caller error.
func (s *ShortLinkService) List(ctx context.Context, ownerID uuid.UUID, search string, pageNumber, pageSize int) (*Page[*LinkView], error) {
	if ownerID == uuid.Nil {
		return nil, ErrOwnerRequired
	}

	filter := LinkFilter{
		OwnerID: ownerID,
		Search:  strings.TrimSpace(search),
	}

	page, err := s.Repo.Page(ctx, filter, pageNumber, pageSize)
	if err != nil {
		return nil, err
	}

	views := make([]*LinkView, len(page.Items))
	for i, link := range page.Items {
		views[i] = link.View()
	}

	return &Page[*LinkView]{
		Items:      views,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
		TotalCount: page.TotalCount,
		TotalPages: page.TotalPages,
	}, nil
}
