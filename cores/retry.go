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
	"context"

	"github.com/vogo/vogo/vlog"
)

// codeAttempt produces a candidate code and reports whether it is
// acceptable. A false ok is a rejected candidate, not a failure.
type codeAttempt func(ctx context.Context) (code string, ok bool, err error)

// retryPolicy bounds a random-candidate operation to a fixed number of
// attempts, yielding either an accepted value or ErrCodeExhausted.
type retryPolicy struct {
	maxAttempts int
}

// Run drives attempt until it accepts a candidate or the budget runs out.
// Every rejected candidate is logged as a warning with its attempt number.
// Backend errors abort immediately, they are not retried.
func (p retryPolicy) Run(ctx context.Context, attempt codeAttempt) (string, error) {
	for i := 1; i <= p.maxAttempts; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		code, ok, err := attempt(ctx)
		if err != nil {
			return "", err
		}

		if ok {
			return code, nil
		}

		vlog.Warnf("short code %s already taken, attempt %d/%d", code, i, p.maxAttempts)
	}

	return "", ErrCodeExhausted
}
