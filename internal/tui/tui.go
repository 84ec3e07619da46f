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

// Package tui is an interactive prompt loop over the controller. Every menu
// action maps onto one controller operation; no state lives here.
package tui

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/sftpdock/sftpdock/internal/controller"
	"github.com/sftpdock/sftpdock/internal/netinfo"
)

// Controller is the slice of controller.Exec the menu needs.
type Controller interface {
	ListServers() ([]controller.ServerInfo, error)
	CreateServer(req controller.CreateServerRequest) (controller.CreateServerResult, error)
	StartServer(name string) error
	StopServer(name string) error
	RemoveServer(name string, force bool) error
	ConnectionInfo(name string) (controller.ConnectionInfo, error)
	ServerLogs(name string, lines int) string
	ListNetworks() ([]netinfo.Interface, error)
	SetNetwork(target string) error
	ClearNetwork() error
	GetSystemStatus() controller.SystemStatus
}

// Prompter abstracts promptui so the loop can be driven from tests.
type Prompter interface {
	Select(label string, items []string) (int, string, error)
	Input(label string, validate func(string) error) (string, error)
}

type promptuiPrompter struct{}

func (promptuiPrompter) Select(label string, items []string) (int, string, error) {
	sel := promptui.Select{Label: label, Items: items, Size: 12}
	return sel.Run()
}

func (promptuiPrompter) Input(label string, validate func(string) error) (string, error) {
	prompt := promptui.Prompt{Label: label, Validate: validate}
	return prompt.Run()
}

// App owns the menu loop.
type App struct {
	ctrl   Controller
	prompt Prompter
	out    io.Writer
}

func NewApp(ctrl Controller, out io.Writer) *App {
	return &App{ctrl: ctrl, prompt: promptuiPrompter{}, out: out}
}

// NewAppWithPrompter is used by tests to script the prompts.
func NewAppWithPrompter(ctrl Controller, prompt Prompter, out io.Writer) *App {
	return &App{ctrl: ctrl, prompt: prompt, out: out}
}

const (
	menuList    = "List servers"
	menuCreate  = "Create server"
	menuStart   = "Start server"
	menuStop    = "Stop server"
	menuRemove  = "Remove server"
	menuInfo    = "Connection info"
	menuLogs    = "Show logs"
	menuNetwork = "Network"
	menuQuit    = "Quit"
)

// Run loops until Quit or the prompt is interrupted. Action errors are
// printed and the loop continues.
func (a *App) Run() error {
	status := a.ctrl.GetSystemStatus()
	if !status.DockerAvailable {
		fmt.Fprintln(a.out, "Warning: docker is not available; most actions will fail.")
	}

	items := []string{menuList, menuCreate, menuStart, menuStop, menuRemove, menuInfo, menuLogs, menuNetwork, menuQuit}
	for {
		_, choice, err := a.prompt.Select("sftpdock", items)
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return nil
			}
			return err
		}

		if choice == menuQuit {
			return nil
		}
		if err := a.dispatch(choice); err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				continue
			}
			fmt.Fprintf(a.out, "Error: %v\n", err)
		}
	}
}

func (a *App) dispatch(choice string) error {
	switch choice {
	case menuList:
		return a.listServers()
	case menuCreate:
		return a.createServer()
	case menuStart:
		return a.withServer("Start", a.ctrl.StartServer)
	case menuStop:
		return a.withServer("Stop", a.ctrl.StopServer)
	case menuRemove:
		return a.withServer("Remove", func(name string) error {
			return a.ctrl.RemoveServer(name, true)
		})
	case menuInfo:
		return a.connectionInfo()
	case menuLogs:
		return a.showLogs()
	case menuNetwork:
		return a.network()
	}
	return nil
}

func (a *App) listServers() error {
	servers, err := a.ctrl.ListServers()
	if err != nil {
		return err
	}
	if len(servers) == 0 {
		fmt.Fprintln(a.out, "No servers configured.")
		return nil
	}
	for _, s := range servers {
		marker := ""
		if s.Unreachable {
			marker = "  [bound address unreachable]"
		}
		fmt.Fprintf(a.out, "%-20s port %-5d %-12s %s%s\n", s.Name, s.Port, s.Status, s.HostPath, marker)
	}
	return nil
}

func (a *App) createServer() error {
	name, err := a.prompt.Input("Name", notEmpty)
	if err != nil {
		return err
	}
	hostPath, err := a.prompt.Input("Host directory", notEmpty)
	if err != nil {
		return err
	}
	portText, err := a.prompt.Input("Port (empty for automatic)", optionalPort)
	if err != nil {
		return err
	}
	username, err := a.prompt.Input("Username (empty for sftpuser)", nil)
	if err != nil {
		return err
	}

	port := 0
	if strings.TrimSpace(portText) != "" {
		port, _ = strconv.Atoi(strings.TrimSpace(portText))
	}

	result, err := a.ctrl.CreateServer(controller.CreateServerRequest{
		Name:     strings.TrimSpace(name),
		Port:     port,
		HostPath: strings.TrimSpace(hostPath),
		Username: strings.TrimSpace(username),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Created %q on port %d\n", result.Server.Name, result.Server.Port)
	if result.PasswordGenerated {
		fmt.Fprintf(a.out, "Generated password: %s\n", result.Server.Password)
	}
	return nil
}

func (a *App) withServer(verb string, op func(name string) error) error {
	name, err := a.selectServer(verb)
	if err != nil {
		return err
	}
	if err := op(name); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s: %s done\n", verb, name)
	return nil
}

func (a *App) connectionInfo() error {
	name, err := a.selectServer("Connection info")
	if err != nil {
		return err
	}
	info, err := a.ctrl.ConnectionInfo(name)
	if err != nil {
		return err
	}
	rendered, err := info.Format(controller.FormatFull)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, rendered)
	return nil
}

func (a *App) showLogs() error {
	name, err := a.selectServer("Logs")
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.ctrl.ServerLogs(name, 0))
	return nil
}

func (a *App) network() error {
	ifaces, err := a.ctrl.ListNetworks()
	if err != nil {
		return err
	}

	items := make([]string, 0, len(ifaces)+1)
	for _, in := range ifaces {
		label := fmt.Sprintf("%s (%s)", in.Name, in.Address)
		if in.IsVPN {
			label += " [vpn]"
		}
		items = append(items, label)
	}
	items = append(items, "Clear preference")

	idx, choice, err := a.prompt.Select("Bind address", items)
	if err != nil {
		return err
	}
	if choice == "Clear preference" {
		if err := a.ctrl.ClearNetwork(); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Preference cleared")
		return nil
	}

	target := ifaces[idx].Address
	if ifaces[idx].Synthetic() {
		target = ifaces[idx].Name
	}
	if err := a.ctrl.SetNetwork(target); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Preference set to %s\n", target)
	return nil
}

func (a *App) selectServer(label string) (string, error) {
	servers, err := a.ctrl.ListServers()
	if err != nil {
		return "", err
	}
	if len(servers) == 0 {
		return "", errors.New("no servers configured")
	}

	items := make([]string, 0, len(servers))
	for _, s := range servers {
		items = append(items, fmt.Sprintf("%s (port %d, %s)", s.Name, s.Port, s.Status))
	}
	idx, _, err := a.prompt.Select(label, items)
	if err != nil {
		return "", err
	}
	return servers[idx].Name, nil
}

func notEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("value is required")
	}
	return nil
}

func optionalPort(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	port, err := strconv.Atoi(s)
	if err != nil || port < 1 || port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}
	return nil
}
