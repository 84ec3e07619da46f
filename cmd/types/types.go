// Copyright 2025 The sftpdock Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package types holds the context keys shared between the command tree and
// its tests.
package types

type ctxKey int

const (
	// CtxLogger carries the *slog.Logger for the current invocation.
	CtxLogger ctxKey = iota
	// CtxLevelVar carries the *slog.LevelVar backing the logger.
	CtxLevelVar
)
