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
	"strings"
)

var (
	// ErrLinkNotFound is returned when no record exists for a code.
	ErrLinkNotFound = errors.New("short link not found")

	// ErrForbidden is returned when the requester does not own the record.
	ErrForbidden = errors.New("not allowed to modify this short link")

	// ErrAlreadyExists is returned by a gateway when an insert violates a
	// unique constraint.
	ErrAlreadyExists = errors.New("unique field already exists")

	// ErrCodeExhausted is returned when the bounded retry budget for
	// generating a unique code runs out. The system never degrades to a
	// longer code or another alphabet on its own.
	ErrCodeExhausted = errors.New("failed to generate a unique code after multiple attempts")

	// ErrOwnerRequired is returned by List when no owner is given.
	ErrOwnerRequired = errors.New("owner id is required")
)

// ValidationError carries every rule a long URL violated, never just the
// first one.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "invalid long url: " + strings.Join(e.Violations, "; ")
}
