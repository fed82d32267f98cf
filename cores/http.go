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
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/vogo/vogo/vencoding/vjson"
	"github.com/vogo/vogo/vlog"
	"github.com/vogo/vogo/vnet/vhttp/vhttpquery"
	"github.com/vogo/vogo/vnet/vhttp/vhttpresp"
)

const (
	ManagementCodePrefix = "__"
)

// HttpHandle serves redirects at /{code} and management operations under
// the "__" prefix.
func (s *ShortLinkService) HttpHandle(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	code := r.URL.Path[1:]
	if code == "" {
		w.WriteHeader(http.StatusOK)
		return
	}

	if strings.HasPrefix(code, ManagementCodePrefix) {
		s.HttpHandleManagement(w, r, code[len(ManagementCodePrefix):])
		return
	}

	// reject paths that cannot be a generated code
	if !IsCode(code) {
		http.NotFound(w, r)
		return
	}

	target, err := s.Resolve(r.Context(), code)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	http.Redirect(w, r, target, http.StatusFound)
}

func (s *ShortLinkService) HttpHandleManagement(w http.ResponseWriter, r *http.Request, managementOp string) {
	token := r.Header.Get("Authorization")
	if s.authToken != "" && token != s.authToken {
		vhttpresp.BadMsg(w, r, "unauthorized")
		return
	}

	switch managementOp {
	case "create":
		s.httpHandleCreate(w, r)
	case "get":
		s.httpHandleGet(w, r)
	case "remove":
		s.httpHandleRemove(w, r)
	case "list":
		s.httpHandleList(w, r)
	default:
		vhttpresp.BadMsg(w, r, "invalid op")
		return
	}
}

type CreateLinkPayload struct {
	LongURL string `json:"long_url"`
	OwnerID string `json:"owner_id"`
}

type RemoveLinkPayload struct {
	Code        string `json:"code"`
	RequesterID string `json:"requester_id"`
}

// requestScheme derives the externally visible scheme of the inbound
// request, honoring a forwarding proxy.
func requestScheme(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return proto
	}

	if r.TLS != nil {
		return "https"
	}

	return "http"
}

func (s *ShortLinkService) httpHandleCreate(w http.ResponseWriter, r *http.Request) {
	var payload CreateLinkPayload
	if err := vjson.UnmarshalStream(r.Body, &payload); err != nil {
		vhttpresp.BadError(w, r, err)
		return
	}

	ownerID := uuid.Nil
	if payload.OwnerID != "" {
		parsed, err := uuid.Parse(payload.OwnerID)
		if err != nil {
			vhttpresp.BadMsg(w, r, "invalid owner id")
			return
		}
		ownerID = parsed
	}

	shortURL, err := s.Create(r.Context(), CreateLinkRequest{
		LongURL: payload.LongURL,
		OwnerID: ownerID,
		Scheme:  requestScheme(r),
		Host:    r.Host,
	})
	if err != nil {
		vhttpresp.BadError(w, r, err)
		return
	}

	vlog.Infof("create short link, url: %s, owner: %s", shortURL, ownerID)

	vhttpresp.Success(w, r, map[string]string{"short_url": shortURL})
}

func (s *ShortLinkService) httpHandleGet(w http.ResponseWriter, r *http.Request) {
	code, ok := vhttpquery.String(r, "code")
	if !ok || code == "" {
		vhttpresp.BadMsg(w, r, "code is empty")
		return
	}

	view, err := s.Get(r.Context(), code)
	if err != nil {
		if errors.Is(err, ErrLinkNotFound) {
			vhttpresp.BadMsg(w, r, "short link not found")
			return
		}

		vhttpresp.BadError(w, r, err)
		return
	}

	vhttpresp.Success(w, r, view)
}

func (s *ShortLinkService) httpHandleRemove(w http.ResponseWriter, r *http.Request) {
	var payload RemoveLinkPayload
	if err := vjson.UnmarshalStream(r.Body, &payload); err != nil {
		vhttpresp.BadError(w, r, err)
		return
	}

	if payload.Code == "" {
		vhttpresp.BadMsg(w, r, "code is empty")
		return
	}

	requesterID := uuid.Nil
	if payload.RequesterID != "" {
		parsed, err := uuid.Parse(payload.RequesterID)
		if err != nil {
			vhttpresp.BadMsg(w, r, "invalid requester id")
			return
		}
		requesterID = parsed
	}

	if err := s.Delete(r.Context(), payload.Code, requesterID); err != nil {
		vhttpresp.BadError(w, r, err)
		return
	}

	vlog.Infof("remove short link, code: %s", payload.Code)

	vhttpresp.Success(w, r, nil)
}

func (s *ShortLinkService) httpHandleList(w http.ResponseWriter, r *http.Request) {
	owner, ok := vhttpquery.String(r, "owner")
	if !ok || owner == "" {
		vhttpresp.BadMsg(w, r, "owner is empty")
		return
	}

	ownerID, err := uuid.Parse(owner)
	if err != nil {
		vhttpresp.BadMsg(w, r, "invalid owner id")
		return
	}

	search, _ := vhttpquery.String(r, "search")

	pageNumber, _ := vhttpquery.Int(r, "page")
	pageSize, _ := vhttpquery.Int(r, "size")
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 10
	}

	page, err := s.List(r.Context(), ownerID, search, pageNumber, pageSize)
	if err != nil {
		vhttpresp.BadError(w, r, err)
		return
	}

	vhttpresp.Success(w, r, page)
}
