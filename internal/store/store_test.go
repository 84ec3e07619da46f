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

package store_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/sftpdock/sftpdock/internal/errdefs"
	"github.com/sftpdock/sftpdock/internal/logging"
	"github.com/sftpdock/sftpdock/internal/store"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "servers.json")
	return store.New(context.Background(), logging.NewNoopLogger(), path)
}

func record(name string, port int) store.ServerRecord {
	return store.ServerRecord{
		Name:          name,
		Port:          port,
		HostPath:      "/srv/" + name,
		ContainerPath: "/home/" + name + "/upload",
		Username:      name,
		Password:      "secret",
	}
}

func TestAddServer(t *testing.T) {
	tests := []struct {
		name    string
		seed    []store.ServerRecord
		add     store.ServerRecord
		wantErr error
	}{
		{
			name: "first record",
			add:  record("media", 2222),
		},
		{
			name:    "duplicate name rejected",
			seed:    []store.ServerRecord{record("media", 2222)},
			add:     record("media", 2223),
			wantErr: errdefs.ErrDuplicateName,
		},
		{
			name:    "duplicate port rejected",
			seed:    []store.ServerRecord{record("media", 2222)},
			add:     record("backup", 2222),
			wantErr: errdefs.ErrPortInUse,
		},
		{
			name:    "missing host path rejected",
			add:     store.ServerRecord{Name: "media", Port: 2222},
			wantErr: errdefs.ErrHostPathRequired,
		},
		{
			name:    "missing name rejected",
			add:     store.ServerRecord{Port: 2222, HostPath: "/srv/x"},
			wantErr: errdefs.ErrNameRequired,
		},
		{
			name:    "port out of range",
			add:     store.ServerRecord{Name: "media", Port: 70000, HostPath: "/srv/x"},
			wantErr: errdefs.ErrInvalidPort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)
			for _, rec := range tt.seed {
				if _, err := s.AddServer(rec); err != nil {
					t.Fatalf("seed: %v", err)
				}
			}

			got, err := s.AddServer(tt.add)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("AddServer error = %v, want %v", err, tt.wantErr)
				}
				if len(s.Load().Servers) != len(tt.seed) {
					t.Errorf("store mutated on failed add")
				}
				return
			}
			if err != nil {
				t.Fatalf("AddServer: %v", err)
			}
			if got.CreatedAt == "" {
				t.Errorf("CreatedAt not stamped")
			}
			if got.UID != store.DefaultUID {
				t.Errorf("UID = %d, want default %d", got.UID, store.DefaultUID)
			}
		})
	}
}

func TestRemoveServer(t *testing.T) {
	s := newStore(t)
	if _, err := s.AddServer(record("media", 2222)); err != nil {
		t.Fatalf("AddServer: %v", err)
	}

	if err := s.RemoveServer("nope"); !errors.Is(err, errdefs.ErrServerNotFound) {
		t.Fatalf("RemoveServer(nope) error = %v, want %v", err, errdefs.ErrServerNotFound)
	}
	if len(s.Load().Servers) != 1 {
		t.Fatalf("store changed by failed removal")
	}

	if err := s.RemoveServer("media"); err != nil {
		t.Fatalf("RemoveServer: %v", err)
	}
	if len(s.Load().Servers) != 0 {
		t.Fatalf("record not removed")
	}
}

func TestUpdateServer(t *testing.T) {
	s := newStore(t)
	if _, err := s.AddServer(record("media", 2222)); err != nil {
		t.Fatalf("AddServer: %v", err)
	}

	port := 2300
	pass := "changed"
	got, err := s.UpdateServer("media", store.ServerUpdate{Port: &port, Password: &pass})
	if err != nil {
		t.Fatalf("UpdateServer: %v", err)
	}
	if got.Port != 2300 || got.Password != "changed" {
		t.Errorf("update not applied: %+v", got)
	}
	if got.Username != "media" {
		t.Errorf("untouched field changed: %+v", got)
	}

	if _, err := s.UpdateServer("nope", store.ServerUpdate{}); !errors.Is(err, errdefs.ErrServerNotFound) {
		t.Errorf("UpdateServer(nope) error = %v, want %v", err, errdefs.ErrServerNotFound)
	}
}

func TestNetworkPreferenceMutualExclusion(t *testing.T) {
	s := newStore(t)

	if err := s.SetPreferredInterface("eth0"); err != nil {
		t.Fatalf("SetPreferredInterface: %v", err)
	}
	if err := s.SetPreferredIP("192.168.1.20"); err != nil {
		t.Fatalf("SetPreferredIP: %v", err)
	}
	pref := s.Preference()
	if pref.PreferredInterface != "" || pref.PreferredIP != "192.168.1.20" {
		t.Errorf("IP preference did not clear interface: %+v", pref)
	}

	if err := s.SetPreferredInterface("wlan0"); err != nil {
		t.Fatalf("SetPreferredInterface: %v", err)
	}
	pref = s.Preference()
	if pref.PreferredIP != "" || pref.PreferredInterface != "wlan0" {
		t.Errorf("interface preference did not clear IP: %+v", pref)
	}

	if err := s.ClearPreference(); err != nil {
		t.Fatalf("ClearPreference: %v", err)
	}
	if pref = s.Preference(); pref != (store.NetworkPreference{}) {
		t.Errorf("ClearPreference left %+v", pref)
	}
}

func TestFindAvailablePort(t *testing.T) {
	s := newStore(t)
	for _, port := range []int{2222, 2223, 2225} {
		if _, err := s.AddServer(record("srv"+string(rune('a'+port%10)), port)); err != nil {
			t.Fatalf("seed port %d: %v", port, err)
		}
	}

	got, err := s.FindAvailablePort(2222)
	if err != nil {
		t.Fatalf("FindAvailablePort: %v", err)
	}
	if got != 2224 {
		t.Errorf("FindAvailablePort = %d, want 2224", got)
	}
}

func TestLoadMissingAndCorrupt(t *testing.T) {
	s := newStore(t)
	if doc := s.Load(); len(doc.Servers) != 0 {
		t.Errorf("missing file loaded as %+v", doc)
	}

	path := filepath.Join(t.TempDir(), "servers.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}
	corrupt := store.New(context.Background(), logging.NewNoopLogger(), path)
	if doc := corrupt.Load(); len(doc.Servers) != 0 {
		t.Errorf("corrupt file loaded as %+v", doc)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newStore(t)
	if _, err := s.AddServer(record("media", 2222)); err != nil {
		t.Fatalf("AddServer: %v", err)
	}
	if err := s.SetPreferredIP("192.168.1.20"); err != nil {
		t.Fatalf("SetPreferredIP: %v", err)
	}

	first := s.Load()
	if err := s.Save(first); err != nil {
		t.Fatalf("Save: %v", err)
	}
	second := s.Load()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("save(load()) changed the document:\n%+v\n%+v", first, second)
	}
}

func TestGeneratePassword(t *testing.T) {
	pass, err := store.GeneratePassword(0)
	if err != nil {
		t.Fatalf("GeneratePassword: %v", err)
	}
	if len(pass) != store.DefaultPasswordLength {
		t.Errorf("default length = %d, want %d", len(pass), store.DefaultPasswordLength)
	}

	pass, err = store.GeneratePassword(32)
	if err != nil {
		t.Fatalf("GeneratePassword: %v", err)
	}
	if len(pass) != 32 {
		t.Errorf("length = %d, want 32", len(pass))
	}
	for _, r := range pass {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		default:
			t.Errorf("non-alphanumeric rune %q in password", r)
		}
	}

	other, err := store.GeneratePassword(32)
	if err != nil {
		t.Fatalf("GeneratePassword: %v", err)
	}
	if pass == other {
		t.Errorf("two generated passwords are identical")
	}
}
