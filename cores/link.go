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
	"time"

	"github.com/google/uuid"
)

// ShortLink is a persisted mapping from a unique short code to a long URL.
// Code is globally unique and case sensitive, LongURL and Code are never
// updated in place, Clicks only ever grows.
type ShortLink struct {
	ID         uuid.UUID `json:"id" comment:"record ID"`
	Code       string    `json:"code" comment:"unique short code"`
	LongURL    string    `json:"long_url" comment:"original link"`
	ShortURL   string    `json:"short_url" comment:"composed redirect URL"`
	Clicks     int64     `json:"clicks" comment:"resolution counter"`
	OwnerID    uuid.UUID `json:"owner_id" comment:"creating user, zero for anonymous"`
	CreateTime time.Time `json:"create_time" comment:"create time"`
}

// Anonymous reports whether the link was created without an owning user.
func (l *ShortLink) Anonymous() bool {
	return l.OwnerID == uuid.Nil
}

// LinkView is the outward projection of a ShortLink handed to callers.
type LinkView struct {
	ID         string    `json:"id"`
	Code       string    `json:"code"`
	LongURL    string    `json:"long_url"`
	ShortURL   string    `json:"short_url"`
	Clicks     int64     `json:"clicks"`
	CreateTime time.Time `json:"create_time"`
}

// View maps the link into its outward projection.
func (l *ShortLink) View() *LinkView {
	return &LinkView{
		ID:         l.ID.String(),
		Code:       l.Code,
		LongURL:    l.LongURL,
		ShortURL:   l.ShortURL,
		Clicks:     l.Clicks,
		CreateTime: l.CreateTime,
	}
}

// Page is one page of a filtered, sorted listing.
type Page[T any] struct {
	Items      []T `json:"items"`
	PageNumber int `json:"page_number"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
}

// NormalizePaging clamps the requested page number and size: both are raised
// to at least 1, and the size is lowered to the total count when fewer rows
// match (but never below 1, so an empty result keeps a usable size).
func NormalizePaging(pageNumber, pageSize, totalCount int) (int, int) {
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if totalCount >= 1 && pageSize > totalCount {
		pageSize = totalCount
	}
	return pageNumber, pageSize
}

// NewPage builds a page from already-clamped paging values.
// TotalPages is ceil(totalCount/pageSize), zero when nothing matches.
func NewPage[T any](items []T, totalCount, pageNumber, pageSize int) *Page[T] {
	totalPages := 0
	if totalCount > 0 {
		totalPages = (totalCount + pageSize - 1) / pageSize
	}

	return &Page[T]{
		Items:      items,
		PageNumber: pageNumber,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}
