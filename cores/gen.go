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
	"math/rand"
	"strings"
)

const (
	// CodeLength is the fixed length of every generated short code.
	CodeLength = 7

	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// CodeGenerator produces fixed-length random short codes drawn uniformly,
// with replacement, from the 62-character alphanumeric alphabet.
// The source is statistically uniform, not cryptographic; collisions are
// the caller's problem, generation itself never fails.
type CodeGenerator struct {
	length int
}

// NewCodeGenerator creates a generator producing CodeLength-sized codes.
func NewCodeGenerator() *CodeGenerator {
	return &CodeGenerator{
		length: CodeLength,
	}
}

// Generate returns a new random code. Safe for concurrent use.
func (g *CodeGenerator) Generate() string {
	buf := make([]byte, g.length)
	for i := range buf {
		buf[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}

	return string(buf)
}

// IsCode reports whether s has the shape of a generated code: exactly
// CodeLength characters, all from the code alphabet.
func IsCode(s string) bool {
	if len(s) != CodeLength {
		return false
	}

	for i := 0; i < len(s); i++ {
		if strings.IndexByte(codeAlphabet, s[i]) < 0 {
			return false
		}
	}

	return true
}
