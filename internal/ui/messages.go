package ui

import (
	"time"

	"github.com/five82/dungeonedit/internal/lifecycle"
	"github.com/five82/dungeonedit/internal/profile"
	"github.com/five82/dungeonedit/internal/state"
)

// Window messages are sent by the bridge from the lifecycle goroutine.

type windowShownMsg struct {
	id       int64
	role     lifecycle.Role
	requests lifecycle.Requests
}

type windowClosedMsg struct {
	id int64
}

type installDocumentMsg struct {
	id   int64
	path string
	doc  *profile.Document
}

type openFileMsg struct {
	id   int64
	path string
}

type pickLocationMsg struct {
	current string
	reply   chan<- lifecycle.LocationChoice
}

type confirmMsg struct {
	title   string
	message string
	reply   chan<- bool
}

// Results of commands run by the model.

type documentLoadedMsg struct {
	id   int64
	path string
	doc  *profile.Document
	err  error
}

type tickMsg time.Time

type snapshotMsg state.Snapshot

type logLinesMsg []string
