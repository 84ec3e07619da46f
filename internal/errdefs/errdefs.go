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

package errdefs

import (
	"errors"
)

var (
	ErrConfig                 = errors.New("config error")
	ErrLoggerNotFound         = errors.New("logger not found in context")
	ErrDockerUnavailable      = errors.New("docker is not available")
	ErrDuplicateName          = errors.New("server name already in use")
	ErrPortInUse              = errors.New("port already in use")
	ErrServerNotFound         = errors.New("server not found")
	ErrNotManagedContainer    = errors.New("not an SFTP container (atmoz/sftp)")
	ErrCommandFailed          = errors.New("docker command failed")
	ErrPersistence            = errors.New("failed to persist configuration")
	ErrLoadConfig             = errors.New("failed to load configuration")
	ErrNameRequired           = errors.New("server name is required")
	ErrHostPathRequired       = errors.New("host path is required")
	ErrInvalidPort            = errors.New("port must be between 1 and 65535")
	ErrNetworkTargetNotFound  = errors.New("no interface or address matches")
	ErrInvalidFormat          = errors.New("invalid format")
	ErrUnknownKind            = errors.New("unknown kind")
	ErrManifestServersMissing = errors.New("manifest defines no servers")
	ErrPathOutsideRoot        = errors.New("path escapes the server root")
	ErrServerRunning          = errors.New("server is running")
	ErrNoFreePort             = errors.New("no free port found")
)
