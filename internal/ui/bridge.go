package ui

import (
	"context"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/dungeonedit/internal/lifecycle"
	"github.com/five82/dungeonedit/internal/profile"
)

// Sender delivers messages to a running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Bridge lets the lifecycle goroutine drive the terminal UI. It implements
// lifecycle.WindowFactory, lifecycle.LocationPicker and lifecycle.Prompter
// by sending messages to the program; dialogs block until the user answers
// or ctx is cancelled.
type Bridge struct {
	send   Sender
	nextID atomic.Int64
}

// NewBridge returns a bridge posting to send.
func NewBridge(send Sender) *Bridge {
	return &Bridge{send: send}
}

// NewSplash implements lifecycle.WindowFactory.
func (b *Bridge) NewSplash() lifecycle.Window {
	return b.newWindow(lifecycle.RoleSplash, nil)
}

// NewBusy implements lifecycle.WindowFactory.
func (b *Bridge) NewBusy() lifecycle.Window {
	return b.newWindow(lifecycle.RoleBusy, nil)
}

// NewMain implements lifecycle.WindowFactory.
func (b *Bridge) NewMain(requests lifecycle.Requests) lifecycle.MainWindow {
	return b.newWindow(lifecycle.RoleMain, requests)
}

func (b *Bridge) newWindow(role lifecycle.Role, requests lifecycle.Requests) *window {
	return &window{
		id:       b.nextID.Add(1),
		role:     role,
		requests: requests,
		send:     b.send,
	}
}

// PickLocation implements lifecycle.LocationPicker.
func (b *Bridge) PickLocation(ctx context.Context, current string) (lifecycle.LocationChoice, error) {
	reply := make(chan lifecycle.LocationChoice, 1)
	b.send.Send(pickLocationMsg{current: current, reply: reply})
	select {
	case choice := <-reply:
		return choice, nil
	case <-ctx.Done():
		return lifecycle.LocationChoice{}, ctx.Err()
	}
}

// Confirm implements lifecycle.Prompter.
func (b *Bridge) Confirm(ctx context.Context, title, message string) (bool, error) {
	reply := make(chan bool, 1)
	b.send.Send(confirmMsg{title: title, message: message, reply: reply})
	select {
	case yes := <-reply:
		return yes, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// window is the lifecycle's handle on one on-screen window.
type window struct {
	id       int64
	role     lifecycle.Role
	requests lifecycle.Requests
	send     Sender
}

func (w *window) Show() {
	w.send.Send(windowShownMsg{id: w.id, role: w.role, requests: w.requests})
}

func (w *window) Close() {
	w.send.Send(windowClosedMsg{id: w.id})
}

func (w *window) InstallDocument(path string, doc *profile.Document) {
	w.send.Send(installDocumentMsg{id: w.id, path: path, doc: doc})
}

func (w *window) OpenFile(path string) {
	w.send.Send(openFileMsg{id: w.id, path: path})
}
