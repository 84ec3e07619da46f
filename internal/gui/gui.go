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

// Package gui is the fyne desktop front end. Like the TUI it holds no
// domain state; every button maps onto one controller call followed by a
// list refresh.
package gui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/sftpdock/sftpdock/internal/controller"
	"github.com/sftpdock/sftpdock/internal/netinfo"
)

// Controller is the slice of controller.Exec the window needs.
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

type mainWindow struct {
	ctrl Controller
	win  fyne.Window

	servers  []controller.ServerInfo
	selected int

	list   *widget.List
	status *widget.Label
}

// MainWindow builds the server-manager window.
func MainWindow(app fyne.App, ctrl Controller) fyne.Window {
	mw := &mainWindow{
		ctrl:     ctrl,
		win:      app.NewWindow("sftpdock"),
		selected: -1,
	}
	mw.win.Resize(fyne.NewSize(760, 480))

	mw.status = widget.NewLabel("")

	mw.list = widget.NewList(
		func() int { return len(mw.servers) },
		func() fyne.CanvasObject {
			return widget.NewLabel("server")
		},
		func(id widget.ListItemID, item fyne.CanvasObject) {
			if id >= len(mw.servers) {
				return
			}
			s := mw.servers[id]
			label := fmt.Sprintf("%s   port %d   %s", s.Name, s.Port, s.Status)
			if s.Unreachable {
				label += "   [bound address unreachable]"
			}
			item.(*widget.Label).SetText(label)
		},
	)
	mw.list.OnSelected = func(id widget.ListItemID) { mw.selected = id }
	mw.list.OnUnselected = func(widget.ListItemID) { mw.selected = -1 }

	buttons := container.NewHBox(
		widget.NewButton("New", mw.showCreateDialog),
		widget.NewButton("Start", mw.withSelected(mw.ctrl.StartServer)),
		widget.NewButton("Stop", mw.withSelected(mw.ctrl.StopServer)),
		widget.NewButton("Remove", mw.removeSelected),
		widget.NewButton("Info", mw.showInfo),
		widget.NewButton("Logs", mw.showLogs),
		widget.NewButton("Network", mw.showNetworkDialog),
		widget.NewButton("Refresh", mw.refresh),
	)

	mw.win.SetContent(container.NewBorder(buttons, mw.status, nil, nil, mw.list))
	mw.refresh()
	return mw.win
}

func (mw *mainWindow) refresh() {
	servers, err := mw.ctrl.ListServers()
	if err != nil {
		dialog.ShowError(err, mw.win)
		return
	}
	mw.servers = servers
	mw.selected = -1
	mw.list.UnselectAll()
	mw.list.Refresh()

	status := mw.ctrl.GetSystemStatus()
	if status.DockerAvailable {
		mw.status.SetText(fmt.Sprintf("%d servers, %d running, %s", status.Servers, status.Running, status.DisplayIP))
	} else {
		mw.status.SetText("Docker is not available")
	}
}

func (mw *mainWindow) selectedName() (string, bool) {
	if mw.selected < 0 || mw.selected >= len(mw.servers) {
		dialog.ShowInformation("No selection", "Select a server first.", mw.win)
		return "", false
	}
	return mw.servers[mw.selected].Name, true
}

func (mw *mainWindow) withSelected(op func(name string) error) func() {
	return func() {
		name, ok := mw.selectedName()
		if !ok {
			return
		}
		if err := op(name); err != nil {
			dialog.ShowError(err, mw.win)
			return
		}
		mw.refresh()
	}
}

func (mw *mainWindow) removeSelected() {
	name, ok := mw.selectedName()
	if !ok {
		return
	}
	dialog.ShowConfirm("Remove server",
		fmt.Sprintf("Remove %q and its container?", name),
		func(confirmed bool) {
			if !confirmed {
				return
			}
			if err := mw.ctrl.RemoveServer(name, true); err != nil {
				dialog.ShowError(err, mw.win)
				return
			}
			mw.refresh()
		}, mw.win)
}

func (mw *mainWindow) showCreateDialog() {
	name := widget.NewEntry()
	hostPath := widget.NewEntry()
	hostPath.SetPlaceHolder("/srv/share")
	port := widget.NewEntry()
	port.SetPlaceHolder("automatic")
	username := widget.NewEntry()
	username.SetPlaceHolder("sftpuser")
	password := widget.NewPasswordEntry()
	password.SetPlaceHolder("generated")

	items := []*widget.FormItem{
		widget.NewFormItem("Name", name),
		widget.NewFormItem("Host directory", hostPath),
		widget.NewFormItem("Port", port),
		widget.NewFormItem("Username", username),
		widget.NewFormItem("Password", password),
	}

	dialog.ShowForm("New server", "Create", "Cancel", items, func(confirmed bool) {
		if !confirmed {
			return
		}

		portNum := 0
		if text := strings.TrimSpace(port.Text); text != "" {
			var err error
			portNum, err = strconv.Atoi(text)
			if err != nil {
				dialog.ShowError(fmt.Errorf("invalid port %q", text), mw.win)
				return
			}
		}

		result, err := mw.ctrl.CreateServer(controller.CreateServerRequest{
			Name:     strings.TrimSpace(name.Text),
			Port:     portNum,
			HostPath: strings.TrimSpace(hostPath.Text),
			Username: strings.TrimSpace(username.Text),
			Password: password.Text,
		})
		if err != nil {
			dialog.ShowError(err, mw.win)
			return
		}

		message := fmt.Sprintf("Server %q created on port %d.", result.Server.Name, result.Server.Port)
		if result.PasswordGenerated {
			message += fmt.Sprintf("\nGenerated password: %s", result.Server.Password)
		}
		dialog.ShowInformation("Server created", message, mw.win)
		mw.refresh()
	}, mw.win)
}

func (mw *mainWindow) showInfo() {
	name, ok := mw.selectedName()
	if !ok {
		return
	}
	info, err := mw.ctrl.ConnectionInfo(name)
	if err != nil {
		dialog.ShowError(err, mw.win)
		return
	}
	full, err := info.Format(controller.FormatFull)
	if err != nil {
		dialog.ShowError(err, mw.win)
		return
	}
	command, _ := info.Format(controller.FormatCommand)

	dialog.ShowCustomConfirm("Connection info", "Copy command", "Close",
		widget.NewLabel(full),
		func(copyIt bool) {
			if copyIt {
				mw.win.Clipboard().SetContent(command)
			}
		}, mw.win)
}

func (mw *mainWindow) showLogs() {
	name, ok := mw.selectedName()
	if !ok {
		return
	}
	logs := mw.ctrl.ServerLogs(name, 0)

	text := widget.NewLabel(logs)
	text.Wrapping = fyne.TextWrapWord
	scroll := container.NewVScroll(text)
	scroll.SetMinSize(fyne.NewSize(600, 360))
	dialog.ShowCustom("Logs: "+name, "Close", scroll, mw.win)
}

func (mw *mainWindow) showNetworkDialog() {
	ifaces, err := mw.ctrl.ListNetworks()
	if err != nil {
		dialog.ShowError(err, mw.win)
		return
	}

	options := make([]string, 0, len(ifaces))
	for _, in := range ifaces {
		label := fmt.Sprintf("%s (%s)", in.Name, in.Address)
		if in.IsVPN {
			label += " [vpn]"
		}
		options = append(options, label)
	}

	selector := widget.NewSelect(options, nil)
	items := []*widget.FormItem{widget.NewFormItem("Interface", selector)}

	dialog.ShowForm("Bind address", "Set", "Cancel", items, func(confirmed bool) {
		if !confirmed {
			return
		}
		idx := selector.SelectedIndex()
		if idx < 0 || idx >= len(ifaces) {
			return
		}

		target := ifaces[idx].Address
		if ifaces[idx].Synthetic() {
			target = ifaces[idx].Name
		}
		if err := mw.ctrl.SetNetwork(target); err != nil {
			dialog.ShowError(err, mw.win)
			return
		}
		mw.refresh()
	}, mw.win)
}
