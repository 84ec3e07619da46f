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

package list_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	list "github.com/sftpdock/sftpdock/cmd/sftpdock/list"
	"github.com/sftpdock/sftpdock/cmd/types"
	"github.com/sftpdock/sftpdock/internal/controller"
	"github.com/sftpdock/sftpdock/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type fakeControllerExec struct {
	servers []controller.ServerInfo
	err     error
}

func (f *fakeControllerExec) ListServers() ([]controller.ServerInfo, error) {
	return f.servers, f.err
}

func newListCmd(t *testing.T, fake *fakeControllerExec) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	t.Cleanup(viper.Reset)

	cmd := list.NewListCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.WithValue(context.Background(), types.CtxLogger, logger)
	ctx = context.WithValue(ctx, list.MockControllerKey{}, fake)
	cmd.SetContext(ctx)
	return cmd, out
}

func TestNewListCmdRunE(t *testing.T) {
	servers := []controller.ServerInfo{
		{
			ServerRecord: store.ServerRecord{
				Name: "media", Port: 2222, Username: "alice", HostPath: "/srv/media",
			},
			Status: "running",
		},
		{
			ServerRecord: store.ServerRecord{
				Name: "backup", Port: 2223, Username: "bob", HostPath: "/srv/backup", BindIP: "10.8.0.2",
			},
			Status:      "exited",
			Unreachable: true,
		},
	}

	t.Run("table output", func(t *testing.T) {
		cmd, out := newListCmd(t, &fakeControllerExec{servers: servers})
		cmd.SetArgs([]string{})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := out.String()
		for _, expected := range []string{"NAME", "media", "2222", "running", "backup", "10.8.0.2 (unreachable)"} {
			if !strings.Contains(output, expected) {
				t.Errorf("output missing %q\nGot output:\n%s", expected, output)
			}
		}
	})

	t.Run("json output", func(t *testing.T) {
		cmd, out := newListCmd(t, &fakeControllerExec{servers: servers})
		cmd.SetArgs([]string{"-o", "json"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out.String(), `"name": "media"`) {
			t.Errorf("json output missing server record:\n%s", out.String())
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		cmd, _ := newListCmd(t, &fakeControllerExec{servers: servers})
		cmd.SetArgs([]string{"-o", "csv"})

		err := cmd.Execute()
		if err == nil || !strings.Contains(err.Error(), "invalid format") {
			t.Fatalf("expected format error, got %v", err)
		}
	})

	t.Run("empty store", func(t *testing.T) {
		cmd, out := newListCmd(t, &fakeControllerExec{})
		cmd.SetArgs([]string{})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out.String(), "No resources found.") {
			t.Errorf("unexpected output:\n%s", out.String())
		}
	})

	t.Run("controller error surfaces", func(t *testing.T) {
		cmd, _ := newListCmd(t, &fakeControllerExec{err: errors.New("boom")})
		cmd.SetArgs([]string{})

		if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "boom") {
			t.Fatalf("expected controller error, got %v", err)
		}
	})
}
