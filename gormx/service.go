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
	"github.com/snipurl/snipurl/cores"
	"gorm.io/gorm"
)

// GormLinkService is a ShortLinkService persisted through GORM with a
// caller-supplied cache store.
type GormLinkService struct {
	*cores.ShortLinkService
	db *gorm.DB
}

// NewGormLinkService creates a new GormLinkService.
func NewGormLinkService(db *gorm.DB, cache cores.LinkCache, opts ...cores.ServiceOption) *GormLinkService {
	repo := NewGormLinkRepository(db)

	coreService := cores.NewShortLinkService(repo, cache, cores.NewCodeGenerator(), opts...)

	return &GormLinkService{
		ShortLinkService: coreService,
		db:               db,
	}
}
