// Package view holds the page templates, static assets and the per-request
// document state the layout renders.
package view

import (
	"math"
	"time"
)

// Redirect is a timed navigation owned by the rendered page. Navigating away
// earlier discards it with the page.
type Redirect struct {
	To    string
	After time.Duration
}

// Seconds is the delay as rendered into the refresh header.
func (r Redirect) Seconds() int {
	return int(math.Ceil(r.After.Seconds()))
}

// Clinic is the contact block shown in the page chrome.
type Clinic struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

// Document is the page-level state of one response: its title and an
// optional timed redirect.
type Document struct {
	defaultTitle string

	Title    string
	Clinic   Clinic
	Redirect *Redirect
}

func NewDocument(clinic Clinic) *Document {
	return &Document{
		defaultTitle: clinic.Name,
		Title:        clinic.Name,
		Clinic:       clinic,
	}
}

// SetTitle changes the title until the returned func is called, which puts
// the default title back.
func (d *Document) SetTitle(title string) (restore func()) {
	d.Title = title
	return func() { d.Title = d.defaultTitle }
}

// NavigateAfter schedules a navigation to path once after has passed.
// A zero or negative delay still renders, as an immediate refresh.
func (d *Document) NavigateAfter(path string, after time.Duration) {
	if after < 0 {
		after = 0
	}
	d.Redirect = &Redirect{To: path, After: after}
}
