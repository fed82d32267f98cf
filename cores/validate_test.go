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
	"testing"
)

func TestValidateLongURL(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		violation string // empty means valid
	}{
		{"public https", "https://subdomain.example.org", ""},
		{"public http with path", "http://example.org/some/path?q=1", ""},
		{"public with port", "https://example.org:8443/x", ""},
		{"empty", "", "is required"},
		{"too long", "https://example.org/" + strings.Repeat("a", 2048), "must not exceed 2048 characters"},
		{"ftp scheme", "ftp://example.org", "must start with http:// or https://"},
		{"no scheme", "example.org/page", "must start with http:// or https://"},
		{"scheme only", "https://", "must be a well-formed absolute URL"},
		{"localhost", "http://localhost", "must be a public website"},
		{"localhost subdomain", "http://app.localhost.dev", "must be a public website"},
		{"local suffix", "https://printer.local/admin", "must be a public website"},
		{"loopback ip", "https://127.0.0.1/x", "must be a public website"},
		{"unspecified ip", "http://0.0.0.0", "must be a public website"},
		{"private 10", "http://10.1.2.3/x", "must be a public website"},
		{"private 172", "http://172.16.0.1", "must be a public website"},
		{"private 192", "http://192.168.1.5/path", "must be a public website"},
		{"ipv6 loopback", "http://[::1]/x", "must be a public website"},
		{"link local ipv6", "http://[fe80::1]", "must be a public website"},
		{"missing tld", "http://example", "must have a valid domain and TLD"},
		{"single letter tld", "http://example.x", "must have a valid domain and TLD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLongURL(tt.url)

			if tt.violation == "" {
				if err != nil {
					t.Fatalf("ValidateLongURL(%q) = %v, expected valid", tt.url, err)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("ValidateLongURL(%q) = %v, expected *ValidationError", tt.url, err)
			}

			for _, v := range verr.Violations {
				if v == tt.violation {
					return
				}
			}

			t.Errorf("ValidateLongURL(%q) violations %v, expected to contain %q",
				tt.url, verr.Violations, tt.violation)
		})
	}
}

func TestValidateLongURLCollectsAllViolations(t *testing.T) {
	// "ftp://" breaks the scheme rule and is not a well-formed absolute
	// URL with a host; every broken rule must be reported, not just the
	// first.
	err := ValidateLongURL("ftp://")

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}

	expected := []string{
		"must start with http:// or https://",
		"must be a well-formed absolute URL",
	}

	for _, want := range expected {
		found := false
		for _, v := range verr.Violations {
			if v == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("violations %v missing %q", verr.Violations, want)
		}
	}

	if len(verr.Violations) < 2 {
		t.Errorf("expected multiple violations, got %v", verr.Violations)
	}
}
