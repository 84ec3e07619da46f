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

package tui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/sftpdock/sftpdock/internal/controller"
	"github.com/sftpdock/sftpdock/internal/netinfo"
	"github.com/sftpdock/sftpdock/internal/store"
)

type fakeController struct {
	servers []controller.ServerInfo
	ifaces  []netinfo.Interface

	started []string
	stopped []string
	removed []string
	created []controller.CreateServerRequest
	network []string
	cleared bool
}

func (f *fakeController) ListServers() ([]controller.ServerInfo, error) { return f.servers, nil }

func (f *fakeController) CreateServer(req controller.CreateServerRequest) (controller.CreateServerResult, error) {
	f.created = append(f.created, req)
	return controller.CreateServerResult{
		Server: controller.ServerInfo{
			ServerRecord: store.ServerRecord{Name: req.Name, Port: 2222, Password: "pw"},
			Status:       "running",
		},
		PasswordGenerated: req.Password == "",
	}, nil
}

func (f *fakeController) StartServer(name string) error {
	f.started = append(f.started, name)
	return nil
}

func (f *fakeController) StopServer(name string) error {
	f.stopped = append(f.stopped, name)
	return nil
}

func (f *fakeController) RemoveServer(name string, _ bool) error {
	f.removed = append(f.removed, name)
	return nil
}

func (f *fakeController) ConnectionInfo(name string) (controller.ConnectionInfo, error) {
	for _, s := range f.servers {
		if s.Name == name {
			return controller.ConnectionInfo{Host: "192.168.1.20", Port: s.Port, Username: s.Username, Password: s.Password}, nil
		}
	}
	return controller.ConnectionInfo{}, errors.New("not found")
}

func (f *fakeController) ServerLogs(string, int) string { return "log line" }

func (f *fakeController) ListNetworks() ([]netinfo.Interface, error) { return f.ifaces, nil }

func (f *fakeController) SetNetwork(target string) error {
	f.network = append(f.network, target)
	return nil
}

func (f *fakeController) ClearNetwork() error {
	f.cleared = true
	return nil
}

func (f *fakeController) GetSystemStatus() controller.SystemStatus {
	return controller.SystemStatus{DockerAvailable: true}
}

// scriptedPrompter replays canned answers; selections match by item text.
type scriptedPrompter struct {
	t       *testing.T
	selects []string
	inputs  []string
}

func (p *scriptedPrompter) Select(label string, items []string) (int, string, error) {
	if len(p.selects) == 0 {
		p.t.Fatalf("unexpected Select(%q)", label)
	}
	want := p.selects[0]
	p.selects = p.selects[1:]
	for i, item := range items {
		if item == want || strings.HasPrefix(item, want) {
			return i, item, nil
		}
	}
	p.t.Fatalf("Select(%q): no item matching %q in %q", label, want, items)
	return 0, "", nil
}

func (p *scriptedPrompter) Input(label string, _ func(string) error) (string, error) {
	if len(p.inputs) == 0 {
		p.t.Fatalf("unexpected Input(%q)", label)
	}
	answer := p.inputs[0]
	p.inputs = p.inputs[1:]
	return answer, nil
}

func newTestApp(t *testing.T, ctrl Controller, selects, inputs []string) (*App, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	prompt := &scriptedPrompter{t: t, selects: selects, inputs: inputs}
	return NewAppWithPrompter(ctrl, prompt, out), out
}

func testServers() []controller.ServerInfo {
	return []controller.ServerInfo{
		{ServerRecord: store.ServerRecord{Name: "media", Port: 2222, Username: "alice", Password: "pw", HostPath: "/srv/media"}, Status: "running"},
		{ServerRecord: store.ServerRecord{Name: "backup", Port: 2223, Username: "bob", Password: "pw", HostPath: "/srv/backup"}, Status: "exited"},
	}
}

func TestRunListAndQuit(t *testing.T) {
	ctrl := &fakeController{servers: testServers()}
	app, out := newTestApp(t, ctrl, []string{menuList, menuQuit}, nil)

	if err := app.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, expected := range []string{"media", "running", "/srv/backup"} {
		if !strings.Contains(out.String(), expected) {
			t.Errorf("output missing %q:\n%s", expected, out.String())
		}
	}
}

func TestRunCreateServer(t *testing.T) {
	ctrl := &fakeController{}
	app, out := newTestApp(t, ctrl,
		[]string{menuCreate, menuQuit},
		[]string{"media", "/srv/media", "", ""},
	)

	if err := app.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(ctrl.created) != 1 {
		t.Fatalf("create calls = %d", len(ctrl.created))
	}
	req := ctrl.created[0]
	if req.Name != "media" || req.HostPath != "/srv/media" || req.Port != 0 {
		t.Errorf("request = %+v", req)
	}
	if !strings.Contains(out.String(), "Generated password: pw") {
		t.Errorf("generated password not shown:\n%s", out.String())
	}
}

func TestRunStartStopRemove(t *testing.T) {
	ctrl := &fakeController{servers: testServers()}
	app, _ := newTestApp(t, ctrl,
		[]string{menuStart, "backup", menuStop, "media", menuRemove, "media", menuQuit},
		nil,
	)

	if err := app.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(ctrl.started) != 1 || ctrl.started[0] != "backup" {
		t.Errorf("started = %q", ctrl.started)
	}
	if len(ctrl.stopped) != 1 || ctrl.stopped[0] != "media" {
		t.Errorf("stopped = %q", ctrl.stopped)
	}
	if len(ctrl.removed) != 1 || ctrl.removed[0] != "media" {
		t.Errorf("removed = %q", ctrl.removed)
	}
}

func TestRunConnectionInfo(t *testing.T) {
	ctrl := &fakeController{servers: testServers()}
	app, out := newTestApp(t, ctrl, []string{menuInfo, "media", menuQuit}, nil)

	if err := app.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "Host: 192.168.1.20") {
		t.Errorf("connection info not rendered:\n%s", out.String())
	}
}

func TestRunNetworkSelection(t *testing.T) {
	ctrl := &fakeController{ifaces: []netinfo.Interface{
		{Name: netinfo.AllInterfacesName, Address: netinfo.AllInterfacesAddress},
		{Name: "eth0", Address: "192.168.1.20"},
	}}
	app, _ := newTestApp(t, ctrl, []string{menuNetwork, "eth0", menuQuit}, nil)

	if err := app.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(ctrl.network) != 1 || ctrl.network[0] != "192.168.1.20" {
		t.Errorf("network targets = %q", ctrl.network)
	}
}

func TestRunNetworkClear(t *testing.T) {
	ctrl := &fakeController{ifaces: []netinfo.Interface{
		{Name: "eth0", Address: "192.168.1.20"},
	}}
	app, _ := newTestApp(t, ctrl, []string{menuNetwork, "Clear preference", menuQuit}, nil)

	if err := app.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !ctrl.cleared {
		t.Error("preference not cleared")
	}
}
