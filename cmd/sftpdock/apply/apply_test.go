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

package apply_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apply "github.com/sftpdock/sftpdock/cmd/sftpdock/apply"
	"github.com/sftpdock/sftpdock/cmd/types"
	"github.com/sftpdock/sftpdock/internal/controller"
	"github.com/sftpdock/sftpdock/internal/manifest"
	"github.com/spf13/viper"
)

type fakeControllerExec struct {
	report controller.BulkReport
	gotSet manifest.ServerSet
	called bool
}

func (f *fakeControllerExec) ApplyServerSet(set manifest.ServerSet) controller.BulkReport {
	f.called = true
	f.gotSet = set
	return f.report
}

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "servers.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestNewApplyCmdRunE(t *testing.T) {
	t.Run("manifest is parsed and applied", func(t *testing.T) {
		t.Cleanup(viper.Reset)

		path := writeManifest(t, `kind: ServerSet
servers:
  - name: media
    port: 2222
    hostPath: /srv/media
  - name: backup
    hostPath: /srv/backup
`)

		fake := &fakeControllerExec{report: controller.BulkReport{Total: 2, Succeeded: 2}}

		cmd := apply.NewApplyCmd()
		out := &bytes.Buffer{}
		cmd.SetOut(out)
		cmd.SetErr(&bytes.Buffer{})

		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		ctx := context.WithValue(context.Background(), types.CtxLogger, logger)
		ctx = context.WithValue(ctx, apply.MockControllerKey{}, fake)
		cmd.SetContext(ctx)

		cmd.SetArgs([]string{"-f", path})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !fake.called {
			t.Fatal("ApplyServerSet not called")
		}
		if len(fake.gotSet.Servers) != 2 || fake.gotSet.Servers[0].Name != "media" {
			t.Errorf("parsed set = %+v", fake.gotSet)
		}
		if !strings.Contains(out.String(), "2 of 2 servers created") {
			t.Errorf("unexpected output:\n%s", out.String())
		}
	})

	t.Run("unknown kind is rejected before the controller", func(t *testing.T) {
		t.Cleanup(viper.Reset)

		path := writeManifest(t, "kind: Fleet\nservers:\n  - name: media\n    hostPath: /srv/media\n")

		fake := &fakeControllerExec{}

		cmd := apply.NewApplyCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})

		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		ctx := context.WithValue(context.Background(), types.CtxLogger, logger)
		ctx = context.WithValue(ctx, apply.MockControllerKey{}, fake)
		cmd.SetContext(ctx)

		cmd.SetArgs([]string{"-f", path})
		err := cmd.Execute()
		if err == nil || !strings.Contains(err.Error(), "unknown kind") {
			t.Fatalf("expected unknown kind error, got %v", err)
		}
		if fake.called {
			t.Error("ApplyServerSet called despite invalid manifest")
		}
	})
}
