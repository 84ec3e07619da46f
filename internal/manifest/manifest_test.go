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

package manifest_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/sftpdock/sftpdock/internal/errdefs"
	"github.com/sftpdock/sftpdock/internal/manifest"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		check   func(t *testing.T, set manifest.ServerSet)
	}{
		{
			name: "valid manifest",
			input: `
kind: ServerSet
servers:
  - name: media
    port: 2222
    hostPath: /srv/media
    username: media
  - name: backup
    hostPath: /srv/backup
`,
			check: func(t *testing.T, set manifest.ServerSet) {
				if len(set.Servers) != 2 {
					t.Fatalf("servers = %d, want 2", len(set.Servers))
				}
				if set.Servers[0].Port != 2222 || set.Servers[0].Username != "media" {
					t.Errorf("first entry = %+v", set.Servers[0])
				}
				if set.Servers[1].Port != 0 {
					t.Errorf("omitted port = %d, want 0", set.Servers[1].Port)
				}
			},
		},
		{
			name:    "unknown kind",
			input:   "kind: Deployment\nservers:\n  - name: x\n    hostPath: /srv/x\n",
			wantErr: errdefs.ErrUnknownKind,
		},
		{
			name:    "missing kind",
			input:   "servers:\n  - name: x\n    hostPath: /srv/x\n",
			wantErr: errdefs.ErrUnknownKind,
		},
		{
			name:    "empty server list",
			input:   "kind: ServerSet\nservers: []\n",
			wantErr: errdefs.ErrManifestServersMissing,
		},
		{
			name:    "entry without name",
			input:   "kind: ServerSet\nservers:\n  - hostPath: /srv/x\n",
			wantErr: errdefs.ErrNameRequired,
		},
		{
			name:    "entry without host path",
			input:   "kind: ServerSet\nservers:\n  - name: x\n",
			wantErr: errdefs.ErrHostPathRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := manifest.Parse(strings.NewReader(tt.input))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			tt.check(t, set)
		})
	}
}
