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
	"net"
	"net/url"
	"regexp"
	"strings"
)

// MaxLongURLLength is the upper bound on an accepted long URL.
const MaxLongURLLength = 2048

var (
	schemePattern = regexp.MustCompile(`(?i)^https?://`)
	tldPattern    = regexp.MustCompile(`\.[a-zA-Z]{2,}$`)
)

// ValidateLongURL checks every rule of the long URL contract and collects
// all violations:
//   - non-empty, at most MaxLongURLLength characters
//   - http:// or https:// scheme
//   - well-formed absolute URL with a host
//   - public host: no loopback, private or link-local address, no ".local"
//     suffix, host must not contain "localhost"
//   - host ends in a TLD-shaped ".<2+ letters>" suffix
//
// Returns nil when valid, otherwise a *ValidationError listing every
// violated rule.
func ValidateLongURL(raw string) error {
	var violations []string

	if raw == "" {
		violations = append(violations, "is required")
	}

	if len(raw) > MaxLongURLLength {
		violations = append(violations, "must not exceed 2048 characters")
	}

	if !schemePattern.MatchString(raw) {
		violations = append(violations, "must start with http:// or https://")
	}

	u, err := url.Parse(raw)
	wellFormed := err == nil && u.IsAbs() && u.Host != ""

	if !wellFormed {
		violations = append(violations, "must be a well-formed absolute URL")
	}

	if !wellFormed || !isPublicHost(u.Hostname()) {
		violations = append(violations, "must be a public website")
	}

	if !wellFormed || !tldPattern.MatchString(u.Hostname()) {
		violations = append(violations, "must have a valid domain and TLD")
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}

	return nil
}

// isPublicHost rejects hosts that cannot be a public website: loopback,
// unspecified, private-range and link-local addresses, mDNS ".local" names
// and anything mentioning localhost.
func isPublicHost(host string) bool {
	if ip := net.ParseIP(host); ip != nil {
		return !ip.IsLoopback() &&
			!ip.IsUnspecified() &&
			!ip.IsPrivate() &&
			!ip.IsLinkLocalUnicast()
	}

	lower := strings.ToLower(host)

	return !strings.HasSuffix(lower, ".local") && !strings.Contains(lower, "localhost")
}
