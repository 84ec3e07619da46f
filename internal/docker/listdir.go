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

package docker

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/sftpdock/sftpdock/internal/errdefs"
)

// DirEntry is one entry of a container directory listing.
type DirEntry struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	IsDir bool   `json:"isDir"`
	Size  int64  `json:"size"`
}

// ListDir lists a directory inside the named container through the
// runtime's exec mechanism. rel is resolved against root and must stay
// under it; escaping paths are refused before any command is issued.
func (c *Client) ListDir(name, root, rel string) ([]DirEntry, error) {
	if err := c.guard(name); err != nil {
		return nil, err
	}

	target, err := confine(root, rel)
	if err != nil {
		return nil, err
	}

	out, err := c.run(c.ctx, c.bin, "exec", name, "ls", "-la", target)
	if err != nil {
		return nil, err
	}
	return parseListing(target, out), nil
}

// confine joins rel onto root and rejects results outside root.
func confine(root, rel string) (string, error) {
	root = path.Clean("/" + strings.TrimSuffix(root, "/"))
	target := root
	if rel != "" {
		target = path.Clean(path.Join(root, rel))
	}
	if target != root && !strings.HasPrefix(target, root+"/") {
		return "", fmt.Errorf("%w: %q", errdefs.ErrPathOutsideRoot, rel)
	}
	return target, nil
}

// parseListing converts `ls -la` output into entries, skipping the total
// line and the . / .. rows.
func parseListing(dir, out string) []DirEntry {
	var entries []DirEntry
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "total") {
			continue
		}
		// perms links owner group size month day time name...
		fields := strings.Fields(line)
		if len(fields) < 9 {
			continue
		}
		name := strings.Join(fields[8:], " ")
		if name == "." || name == ".." {
			continue
		}
		size, _ := strconv.ParseInt(fields[4], 10, 64)
		entries = append(entries, DirEntry{
			Name:  name,
			Path:  path.Join(dir, name),
			IsDir: strings.HasPrefix(fields[0], "d"),
			Size:  size,
		})
	}
	return entries
}
