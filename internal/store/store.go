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

// Package store persists server records and the network preference in a
// single JSON document. Every mutation is a whole-document read-modify-write
// finished by an atomic rename; concurrent writer processes are not
// coordinated (single-user tool).
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/sftpdock/sftpdock/internal/errdefs"
)

const (
	configDirName  = "sftpdock"
	configFileName = "servers.json"

	// DefaultPortScanStart is where FindAvailablePort begins scanning.
	DefaultPortScanStart = 2222

	// DefaultUID is the account id handed to the container image.
	DefaultUID = 1001

	maxPort = 65535
)

// ServerRecord is one managed SFTP server. Record existence does not imply
// the container still exists; the two can diverge when the container is
// removed externally.
type ServerRecord struct {
	Name          string `json:"name"`
	Port          int    `json:"port"`
	HostPath      string `json:"hostPath"`
	ContainerPath string `json:"containerPath"`
	Username      string `json:"username"`
	Password      string `json:"password"`
	UID           int    `json:"uid"`
	CreatedAt     string `json:"createdAt"`
	BindIP        string `json:"bindIP,omitempty"`
}

// NetworkPreference selects the bind/display interface. The two fields are
// mutually exclusive; both empty means auto-detect.
type NetworkPreference struct {
	PreferredInterface string `json:"preferredInterface,omitempty"`
	PreferredIP        string `json:"preferredIP,omitempty"`
}

// Document is the full on-disk configuration.
type Document struct {
	Servers []ServerRecord    `json:"servers"`
	Network NetworkPreference `json:"network"`
}

// ServerUpdate carries the fields of a partial update; nil fields are left
// untouched.
type ServerUpdate struct {
	Port          *int
	HostPath      *string
	ContainerPath *string
	Username      *string
	Password      *string
	UID           *int
	BindIP        *string
}

type Store struct {
	ctx    context.Context
	logger *slog.Logger
	path   string
}

// DefaultPath returns the per-user config file location, creating the
// directory if needed.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	dir := filepath.Join(base, configDirName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	return filepath.Join(dir, configFileName), nil
}

func New(ctx context.Context, logger *slog.Logger, path string) *Store {
	return &Store{ctx: ctx, logger: logger, path: path}
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the document. An absent or unparseable file loads as an empty
// document; it is never auto-repaired or backed up.
func (s *Store) Load() Document {
	var doc Document
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.WarnContext(s.ctx, "config unreadable, starting empty", "path", s.path, "error", err)
		}
		return doc
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.WarnContext(s.ctx, "config unparseable, starting empty", "path", s.path, "error", err)
		return Document{}
	}
	return doc
}

// Save overwrites the document atomically from the caller's perspective.
func (s *Store) Save(doc Document) error {
	marshaled, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal: %w", errdefs.ErrPersistence, err)
	}
	marshaled = append(marshaled, '\n')

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("%w: %w", errdefs.ErrPersistence, err)
	}
	if err := atomicWriteFile(s.path, marshaled, 0o600); err != nil {
		return fmt.Errorf("%w: %w", errdefs.ErrPersistence, err)
	}
	s.logger.DebugContext(s.ctx, "config saved", "path", s.path, "servers", len(doc.Servers))
	return nil
}

// atomicWriteFile writes to a temp file in the same dir, fsyncs, then renames.
func atomicWriteFile(file string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(file)

	f, err := os.CreateTemp(dir, ".servers-*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		_ = f.Close()
		_ = os.Remove(tmp) // safe if already renamed
	}()

	if _, err := f.Write(data); err != nil {
		return err
	}
	if err := f.Chmod(mode); err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, file)
}

// ValidateNew checks a candidate (name, port) pair against field invariants
// and the uniqueness of existing records, without mutating anything.
func (s *Store) ValidateNew(name string, port int) error {
	if name == "" {
		return errdefs.ErrNameRequired
	}
	if port < 1 || port > maxPort {
		return fmt.Errorf("%w: %d", errdefs.ErrInvalidPort, port)
	}
	doc := s.Load()
	for _, rec := range doc.Servers {
		if rec.Name == name {
			return fmt.Errorf("%w: %q", errdefs.ErrDuplicateName, name)
		}
		if rec.Port == port {
			return fmt.Errorf("%w: %d", errdefs.ErrPortInUse, port)
		}
	}
	return nil
}

// AddServer appends a record, stamping CreatedAt, and persists. Uniqueness
// of name and port is enforced here as well as in ValidateNew so the store
// stays consistent regardless of the caller.
func (s *Store) AddServer(rec ServerRecord) (ServerRecord, error) {
	if rec.HostPath == "" {
		return ServerRecord{}, errdefs.ErrHostPathRequired
	}
	if err := s.ValidateNew(rec.Name, rec.Port); err != nil {
		return ServerRecord{}, err
	}
	if rec.CreatedAt == "" {
		rec.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	if rec.UID == 0 {
		rec.UID = DefaultUID
	}

	doc := s.Load()
	doc.Servers = append(doc.Servers, rec)
	if err := s.Save(doc); err != nil {
		return ServerRecord{}, err
	}
	return rec, nil
}

// GetServer returns the record for name.
func (s *Store) GetServer(name string) (ServerRecord, error) {
	for _, rec := range s.Load().Servers {
		if rec.Name == name {
			return rec, nil
		}
	}
	return ServerRecord{}, fmt.Errorf("%w: %q", errdefs.ErrServerNotFound, name)
}

// RemoveServer deletes the record for name and persists.
func (s *Store) RemoveServer(name string) error {
	doc := s.Load()
	for i, rec := range doc.Servers {
		if rec.Name == name {
			doc.Servers = append(doc.Servers[:i], doc.Servers[i+1:]...)
			return s.Save(doc)
		}
	}
	return fmt.Errorf("%w: %q", errdefs.ErrServerNotFound, name)
}

// UpdateServer merges non-nil fields of update into the record and persists.
func (s *Store) UpdateServer(name string, update ServerUpdate) (ServerRecord, error) {
	doc := s.Load()
	for i := range doc.Servers {
		if doc.Servers[i].Name != name {
			continue
		}
		rec := &doc.Servers[i]
		if update.Port != nil {
			if *update.Port < 1 || *update.Port > maxPort {
				return ServerRecord{}, fmt.Errorf("%w: %d", errdefs.ErrInvalidPort, *update.Port)
			}
			rec.Port = *update.Port
		}
		if update.HostPath != nil {
			rec.HostPath = *update.HostPath
		}
		if update.ContainerPath != nil {
			rec.ContainerPath = *update.ContainerPath
		}
		if update.Username != nil {
			rec.Username = *update.Username
		}
		if update.Password != nil {
			rec.Password = *update.Password
		}
		if update.UID != nil {
			rec.UID = *update.UID
		}
		if update.BindIP != nil {
			rec.BindIP = *update.BindIP
		}
		if err := s.Save(doc); err != nil {
			return ServerRecord{}, err
		}
		return *rec, nil
	}
	return ServerRecord{}, fmt.Errorf("%w: %q", errdefs.ErrServerNotFound, name)
}

// SetPreferredIP pins the bind/display address, clearing any interface
// preference.
func (s *Store) SetPreferredIP(ip string) error {
	doc := s.Load()
	doc.Network = NetworkPreference{PreferredIP: ip}
	return s.Save(doc)
}

// SetPreferredInterface pins the bind/display interface by name, clearing
// any address preference.
func (s *Store) SetPreferredInterface(name string) error {
	doc := s.Load()
	doc.Network = NetworkPreference{PreferredInterface: name}
	return s.Save(doc)
}

// ClearPreference resets network selection to auto-detect.
func (s *Store) ClearPreference() error {
	doc := s.Load()
	doc.Network = NetworkPreference{}
	return s.Save(doc)
}

// Preference returns the current network preference.
func (s *Store) Preference() NetworkPreference {
	return s.Load().Network
}

// FindAvailablePort scans linearly from start for the first port not held
// by a record. It only guarantees non-collision with known records, not
// that the OS port is free.
func (s *Store) FindAvailablePort(start int) (int, error) {
	if start < 1 {
		start = DefaultPortScanStart
	}
	used := make(map[int]struct{})
	for _, rec := range s.Load().Servers {
		used[rec.Port] = struct{}{}
	}
	for port := start; port <= maxPort; port++ {
		if _, taken := used[port]; !taken {
			return port, nil
		}
	}
	return 0, fmt.Errorf("%w above %d", errdefs.ErrNoFreePort, start)
}
