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
	"time"

	"github.com/google/uuid"
	"github.com/snipurl/snipurl/cores"
	"gorm.io/gorm"
)

var shortLinkTableName = "short_links"

func SetShortLinkTableName(name string) {
	shortLinkTableName = name
}

// ShortLinkModel is the GORM model for short links. The unique index on
// Code is the final authority on code uniqueness.
type ShortLinkModel struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36" comment:"record ID"`
	Code       string    `json:"code" gorm:"uniqueIndex;size:32" comment:"unique short code"`
	LongURL    string    `json:"long_url" gorm:"column:long_url;size:2048" comment:"original link"`
	ShortURL   string    `json:"short_url" gorm:"column:short_url;size:256" comment:"composed redirect URL"`
	Clicks     int64     `json:"clicks" comment:"resolution counter"`
	OwnerID    string    `json:"owner_id" gorm:"column:owner_id;index;size:36" comment:"owning user, empty for anonymous"`
	CreateTime time.Time `json:"create_time" gorm:"column:create_time" comment:"create time"`
}

// TableName returns the table name for the ShortLinkModel
func (ShortLinkModel) TableName() string {
	return shortLinkTableName
}

// ToCore converts a ShortLinkModel to a cores.ShortLink
func (m *ShortLinkModel) ToCore() *cores.ShortLink {
	id, _ := uuid.Parse(m.ID)

	ownerID := uuid.Nil
	if m.OwnerID != "" {
		ownerID, _ = uuid.Parse(m.OwnerID)
	}

	return &cores.ShortLink{
		ID:         id,
		Code:       m.Code,
		LongURL:    m.LongURL,
		ShortURL:   m.ShortURL,
		Clicks:     m.Clicks,
		OwnerID:    ownerID,
		CreateTime: m.CreateTime,
	}
}

// FromCore converts a cores.ShortLink to a ShortLinkModel
func FromCore(link *cores.ShortLink) *ShortLinkModel {
	ownerID := ""
	if !link.Anonymous() {
		ownerID = link.OwnerID.String()
	}

	return &ShortLinkModel{
		ID:         link.ID.String(),
		Code:       link.Code,
		LongURL:    link.LongURL,
		ShortURL:   link.ShortURL,
		Clicks:     link.Clicks,
		OwnerID:    ownerID,
		CreateTime: link.CreateTime,
	}
}

// AutoMigrate creates or updates the short link table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&ShortLinkModel{})
}
