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
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/snipurl/snipurl/cores"
)

func TestAddRejectsDuplicateCode(t *testing.T) {
	repo := NewMemoryLinkRepository()
	ctx := context.Background()

	link := &cores.ShortLink{ID: uuid.New(), Code: "abc1234", LongURL: "https://example.org"}
	if err := repo.Add(ctx, link); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	dup := &cores.ShortLink{ID: uuid.New(), Code: "abc1234", LongURL: "https://example.net"}
	if err := repo.Add(ctx, dup); !errors.Is(err, cores.ErrAlreadyExists) {
		t.Fatalf("Add() duplicate error = %v, expected ErrAlreadyExists", err)
	}
}

func TestAddAssignsCreateTime(t *testing.T) {
	repo := NewMemoryLinkRepository()
	ctx := context.Background()

	link := &cores.ShortLink{ID: uuid.New(), Code: "abc1234"}
	if err := repo.Add(ctx, link); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if link.CreateTime.IsZero() {
		t.Error("CreateTime not assigned on insert")
	}
}

func TestGetByCodeReturnsCopy(t *testing.T) {
	repo := NewMemoryLinkRepository()
	ctx := context.Background()

	if err := repo.Add(ctx, &cores.ShortLink{Code: "abc1234", LongURL: "https://example.org"}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	got, err := repo.GetByCode(ctx, "abc1234")
	if err != nil {
		t.Fatalf("GetByCode() error = %v", err)
	}

	// mutating the returned copy must not leak into the store
	got.LongURL = "https://tampered.example.org"

	again, err := repo.GetByCode(ctx, "abc1234")
	if err != nil {
		t.Fatalf("GetByCode() error = %v", err)
	}
	if again.LongURL != "https://example.org" {
		t.Errorf("stored link mutated through returned copy: %q", again.LongURL)
	}
}

func TestIncrementClicks(t *testing.T) {
	repo := NewMemoryLinkRepository()
	ctx := context.Background()

	if err := repo.Add(ctx, &cores.ShortLink{Code: "abc1234"}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := repo.IncrementClicks(ctx, "abc1234"); err != nil {
			t.Fatalf("IncrementClicks() error = %v", err)
		}
	}

	link, err := repo.GetByCode(ctx, "abc1234")
	if err != nil {
		t.Fatalf("GetByCode() error = %v", err)
	}
	if link.Clicks != 3 {
		t.Errorf("clicks = %d, expected 3", link.Clicks)
	}

	if err := repo.IncrementClicks(ctx, "zzzzzzz"); !errors.Is(err, cores.ErrLinkNotFound) {
		t.Errorf("IncrementClicks() unknown code error = %v, expected ErrLinkNotFound", err)
	}
}

func seedPageData(t *testing.T, repo *MemoryLinkRepository, owner uuid.UUID, count int) {
	t.Helper()

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < count; i++ {
		link := &cores.ShortLink{
			ID:         uuid.New(),
			Code:       fmt.Sprintf("code%03d", i),
			LongURL:    fmt.Sprintf("https://example.org/page/%d", i),
			ShortURL:   fmt.Sprintf("https://sho.rt/code%03d", i),
			OwnerID:    owner,
			CreateTime: base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Add(context.Background(), link); err != nil {
			t.Fatalf("seed link %d: %v", i, err)
		}
	}
}

func TestPageScopedToOwner(t *testing.T) {
	repo := NewMemoryLinkRepository()

	owner := uuid.New()
	other := uuid.New()
	seedPageData(t, repo, owner, 5)

	foreign := &cores.ShortLink{ID: uuid.New(), Code: "xyz9876", OwnerID: other,
		LongURL: "https://example.net", CreateTime: time.Now()}
	if err := repo.Add(context.Background(), foreign); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	page, err := repo.Page(context.Background(), cores.LinkFilter{OwnerID: owner}, 1, 10)
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}

	if page.TotalCount != 5 {
		t.Errorf("TotalCount = %d, expected 5", page.TotalCount)
	}
	for _, link := range page.Items {
		if link.OwnerID != owner {
			t.Errorf("page leaked foreign link %q", link.Code)
		}
	}
}

func TestPageSearchFilter(t *testing.T) {
	repo := NewMemoryLinkRepository()
	owner := uuid.New()
	seedPageData(t, repo, owner, 12)

	// "page/1" matches long urls /page/1, /page/10 and /page/11
	page, err := repo.Page(context.Background(), cores.LinkFilter{OwnerID: owner, Search: "page/1"}, 1, 10)
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}

	if page.TotalCount != 3 {
		t.Errorf("TotalCount = %d, expected 3", page.TotalCount)
	}

	// search also covers codes
	page, err = repo.Page(context.Background(), cores.LinkFilter{OwnerID: owner, Search: "code007"}, 1, 10)
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}
	if page.TotalCount != 1 || page.Items[0].Code != "code007" {
		t.Errorf("code search returned %d items", page.TotalCount)
	}
}

func TestPageOrderAndBounds(t *testing.T) {
	repo := NewMemoryLinkRepository()
	owner := uuid.New()
	seedPageData(t, repo, owner, 7)

	page, err := repo.Page(context.Background(), cores.LinkFilter{OwnerID: owner}, 2, 3)
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}

	if len(page.Items) != 3 {
		t.Fatalf("len(Items) = %d, expected 3", len(page.Items))
	}
	if page.TotalCount != 7 || page.TotalPages != 3 {
		t.Errorf("TotalCount/TotalPages = %d/%d, expected 7/3", page.TotalCount, page.TotalPages)
	}

	// ascending create time: second page of size 3 holds items 3..5
	for i, link := range page.Items {
		expected := fmt.Sprintf("code%03d", i+3)
		if link.Code != expected {
			t.Errorf("Items[%d].Code = %q, expected %q", i, link.Code, expected)
		}
	}

	// last page carries the remainder
	page, err = repo.Page(context.Background(), cores.LinkFilter{OwnerID: owner}, 3, 3)
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Code != "code006" {
		t.Errorf("last page items = %d, expected the single remainder", len(page.Items))
	}

	// past the end is empty, never an error
	page, err = repo.Page(context.Background(), cores.LinkFilter{OwnerID: owner}, 9, 3)
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}
	if len(page.Items) != 0 {
		t.Errorf("page past the end returned %d items", len(page.Items))
	}
}

func TestPageClampsInputs(t *testing.T) {
	repo := NewMemoryLinkRepository()
	owner := uuid.New()
	seedPageData(t, repo, owner, 3)

	page, err := repo.Page(context.Background(), cores.LinkFilter{OwnerID: owner}, 0, -5)
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}

	if page.PageNumber != 1 {
		t.Errorf("PageNumber = %d, expected clamp to 1", page.PageNumber)
	}
	if page.PageSize < 1 {
		t.Errorf("PageSize = %d, expected clamp to at least 1", page.PageSize)
	}
	if len(page.Items) > page.PageSize {
		t.Errorf("len(Items) = %d exceeds PageSize %d", len(page.Items), page.PageSize)
	}
}

func TestPageEmptyResult(t *testing.T) {
	repo := NewMemoryLinkRepository()

	page, err := repo.Page(context.Background(), cores.LinkFilter{OwnerID: uuid.New()}, 1, 10)
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}

	if len(page.Items) != 0 || page.TotalCount != 0 || page.TotalPages != 0 {
		t.Errorf("empty page = %+v, expected zero counts", page)
	}
}
