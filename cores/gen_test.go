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
	"strings"
	"testing"
)

func TestGenerateShape(t *testing.T) {
	gen := NewCodeGenerator()

	// Every generated code has the fixed length and draws only from the
	// 62-character alphabet. Uniqueness is not the generator's job.
	for i := 0; i < 1000; i++ {
		code := gen.Generate()

		if len(code) != CodeLength {
			t.Fatalf("Generate() = %q, length %d, expected %d", code, len(code), CodeLength)
		}

		for _, c := range code {
			if !strings.ContainsRune(codeAlphabet, c) {
				t.Fatalf("Generate() = %q, character %q not in alphabet", code, c)
			}
		}
	}
}

func TestGenerateSpread(t *testing.T) {
	gen := NewCodeGenerator()

	// Not a uniformity proof, just a sanity check that the source is not
	// degenerate: 100 draws should not collapse onto a handful of codes.
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		seen[gen.Generate()] = struct{}{}
	}

	if len(seen) < 90 {
		t.Errorf("100 generated codes yielded only %d distinct values", len(seen))
	}
}

func TestIsCode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"valid mixed code", "aB3dE7z", true},
		{"valid digits only", "0123456", true},
		{"valid uppercase only", "ABCDEFG", true},
		{"empty", "", false},
		{"too short", "aB3dE7", false},
		{"too long", "aB3dE7z9", false},
		{"dash", "aB3-E7z", false},
		{"space", "aB3 E7z", false},
		{"unicode", "aB3dE7你", false},
		{"management prefix", "__stats", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCode(tt.input); got != tt.expected {
				t.Errorf("IsCode(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}
