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
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/snipurl/snipurl/cores"
)

// MemoryLinkRepository implements cores.LinkRepository with in-memory
// storage. Intended for examples and tests.
type MemoryLinkRepository struct {
	mutex sync.RWMutex
	// map[code]*ShortLink
	links map[string]*cores.ShortLink
}

// NewMemoryLinkRepository creates a new MemoryLinkRepository.
func NewMemoryLinkRepository() *MemoryLinkRepository {
	return &MemoryLinkRepository{
		links: make(map[string]*cores.ShortLink),
	}
}

// Add implements cores.LinkRepository.Add
func (r *MemoryLinkRepository) Add(ctx context.Context, link *cores.ShortLink) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.links[link.Code]; exists {
		return cores.ErrAlreadyExists
	}

	if link.CreateTime.IsZero() {
		link.CreateTime = time.Now()
	}

	stored := *link
	r.links[link.Code] = &stored

	return nil
}

// Remove implements cores.LinkRepository.Remove
func (r *MemoryLinkRepository) Remove(ctx context.Context, link *cores.ShortLink) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.links[link.Code]; !exists {
		return cores.ErrLinkNotFound
	}

	delete(r.links, link.Code)

	return nil
}

// GetByCode implements cores.LinkRepository.GetByCode
func (r *MemoryLinkRepository) GetByCode(ctx context.Context, code string) (*cores.ShortLink, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	link, exists := r.links[code]
	if !exists {
		return nil, cores.ErrLinkNotFound
	}

	found := *link

	return &found, nil
}

// CodeTaken implements cores.LinkRepository.CodeTaken
func (r *MemoryLinkRepository) CodeTaken(ctx context.Context, code string) (bool, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	_, exists := r.links[code]

	return exists, nil
}

// IncrementClicks implements cores.LinkRepository.IncrementClicks
func (r *MemoryLinkRepository) IncrementClicks(ctx context.Context, code string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	link, exists := r.links[code]
	if !exists {
		return cores.ErrLinkNotFound
	}

	link.Clicks++

	return nil
}

// Page implements cores.LinkRepository.Page
func (r *MemoryLinkRepository) Page(ctx context.Context, filter cores.LinkFilter, pageNumber, pageSize int) (*cores.Page[*cores.ShortLink], error) {
	r.mutex.RLock()

	var matched []*cores.ShortLink
	for _, link := range r.links {
		if link.OwnerID != filter.OwnerID {
			continue
		}

		if filter.Search != "" && !matchesSearch(link, filter.Search) {
			continue
		}

		found := *link
		matched = append(matched, &found)
	}

	r.mutex.RUnlock()

	// ascending create time, code as tie breaker for determinism
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreateTime.Equal(matched[j].CreateTime) {
			return matched[i].Code < matched[j].Code
		}
		return matched[i].CreateTime.Before(matched[j].CreateTime)
	})

	totalCount := len(matched)
	pageNumber, pageSize = cores.NormalizePaging(pageNumber, pageSize, totalCount)

	start := (pageNumber - 1) * pageSize
	if start > totalCount {
		start = totalCount
	}

	end := start + pageSize
	if end > totalCount {
		end = totalCount
	}

	return cores.NewPage(matched[start:end], totalCount, pageNumber, pageSize), nil
}

func matchesSearch(link *cores.ShortLink, search string) bool {
	return strings.Contains(link.Code, search) ||
		strings.Contains(link.ShortURL, search) ||
		strings.Contains(link.LongURL, search)
}
