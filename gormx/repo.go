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

package gormx

import (
	"context"
	"errors"
	"time"

	"github.com/snipurl/snipurl/cores"
	"gorm.io/gorm"
)

// GormLinkRepository implements cores.LinkRepository with GORM. Every write
// commits in its own transaction. Open the gorm.DB with TranslateError so
// duplicate inserts surface as gorm.ErrDuplicatedKey.
type GormLinkRepository struct {
	db *gorm.DB
}

// NewGormLinkRepository creates a new GormLinkRepository.
func NewGormLinkRepository(db *gorm.DB) *GormLinkRepository {
	return &GormLinkRepository{
		db: db,
	}
}

// Add implements cores.LinkRepository.Add
func (r *GormLinkRepository) Add(ctx context.Context, link *cores.ShortLink) error {
	model := FromCore(link)

	if model.CreateTime.IsZero() {
		model.CreateTime = time.Now()
	}

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return cores.ErrAlreadyExists
		}

		return result.Error
	}

	link.CreateTime = model.CreateTime

	return nil
}

// Remove implements cores.LinkRepository.Remove
func (r *GormLinkRepository) Remove(ctx context.Context, link *cores.ShortLink) error {
	result := r.db.WithContext(ctx).
		Where("code = ?", link.Code).
		Delete(&ShortLinkModel{})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return cores.ErrLinkNotFound
	}

	return nil
}

// GetByCode implements cores.LinkRepository.GetByCode
func (r *GormLinkRepository) GetByCode(ctx context.Context, code string) (*cores.ShortLink, error) {
	var model ShortLinkModel

	result := r.db.WithContext(ctx).Where("code = ?", code).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, cores.ErrLinkNotFound
		}

		return nil, result.Error
	}

	return model.ToCore(), nil
}

// CodeTaken implements cores.LinkRepository.CodeTaken
func (r *GormLinkRepository) CodeTaken(ctx context.Context, code string) (bool, error) {
	var count int64

	result := r.db.WithContext(ctx).
		Model(&ShortLinkModel{}).
		Where("code = ?", code).
		Count(&count)

	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

// IncrementClicks implements cores.LinkRepository.IncrementClicks
func (r *GormLinkRepository) IncrementClicks(ctx context.Context, code string) error {
	result := r.db.WithContext(ctx).
		Model(&ShortLinkModel{}).
		Where("code = ?", code).
		UpdateColumn("clicks", gorm.Expr("clicks + ?", 1))

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return cores.ErrLinkNotFound
	}

	return nil
}

// Page implements cores.LinkRepository.Page
//
// Search matching uses LIKE, so its case sensitivity follows the column
// collation.
func (r *GormLinkRepository) Page(ctx context.Context, filter cores.LinkFilter, pageNumber, pageSize int) (*cores.Page[*cores.ShortLink], error) {
	query := r.db.WithContext(ctx).
		Model(&ShortLinkModel{}).
		Where("owner_id = ?", filter.OwnerID.String())

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("code LIKE ? OR short_url LIKE ? OR long_url LIKE ?", like, like, like)
	}

	var count int64
	if result := query.Count(&count); result.Error != nil {
		return nil, result.Error
	}

	totalCount := int(count)
	pageNumber, pageSize = cores.NormalizePaging(pageNumber, pageSize, totalCount)

	var models []ShortLinkModel
	result := query.
		Order("create_time ASC, code ASC").
		Limit(pageSize).
		Offset((pageNumber - 1) * pageSize).
		Find(&models)

	if result.Error != nil {
		return nil, result.Error
	}

	links := make([]*cores.ShortLink, len(models))
	for i := range models {
		links[i] = models[i].ToCore()
	}

	return cores.NewPage(links, totalCount, pageNumber, pageSize), nil
}
