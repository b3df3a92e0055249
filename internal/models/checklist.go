// Package models defines the domain types for Dagaz: the checklist
// document, its month pages, and the four section variants.
package models

import (
	"fmt"
	"time"
)

// SectionType identifies one of the four section variants.
type SectionType string

const (
	SectionDaily   SectionType = "daily"
	SectionWeekly  SectionType = "weekly"
	SectionMonthly SectionType = "monthly"
	SectionNotes   SectionType = "notes"
)

// Valid reports whether t is one of the known section types.
func (t SectionType) Valid() bool {
	switch t {
	case SectionDaily, SectionWeekly, SectionMonthly, SectionNotes:
		return true
	}
	return false
}

// Section is one titled block within a page. Optional fields are
// pointers so that "never set" survives persistence round-trips; the
// compaction codec and the renderer both distinguish unset from an
// explicit zero value.
type Section struct {
	ID             string      `json:"id"`
	Type           SectionType `json:"type"`
	Title          string      `json:"title"`
	Subtitle       string      `json:"subtitle"`
	Chores         []string    `json:"chores,omitempty"`
	DoubleColumn   *bool       `json:"doubleColumn,omitempty"`
	LineCount      *int        `json:"lineCount,omitempty"`
	BlankRows      *int        `json:"blankRows,omitempty"`
	HideCheckboxes *bool       `json:"hideCheckboxes,omitempty"`
}

// DoubleCol returns the effective layout flag. When unset it falls
// back to the per-type default: two columns for daily, monthly and
// notes, single column for weekly.
func (s *Section) DoubleCol() bool {
	if s.DoubleColumn != nil {
		return *s.DoubleColumn
	}
	return s.Type != SectionWeekly
}

// Lines returns the effective ruled-line count for notes sections.
func (s *Section) Lines() int {
	if s.LineCount != nil && *s.LineCount > 0 {
		return *s.LineCount
	}
	return DefaultLineCount
}

// ExtraRows returns the effective number of blank rows appended
// after the chores.
func (s *Section) ExtraRows() int {
	if s.BlankRows != nil && *s.BlankRows > 0 {
		return *s.BlankRows
	}
	return 0
}

// ChecksHidden reports whether checkbox glyphs are suppressed.
func (s *Section) ChecksHidden() bool {
	return s.HideCheckboxes != nil && *s.HideCheckboxes
}

// Clone returns a deep, independent copy of the section.
func (s *Section) Clone() Section {
	out := *s
	if s.Chores != nil {
		out.Chores = append([]string(nil), s.Chores...)
	}
	out.DoubleColumn = cloneBool(s.DoubleColumn)
	out.LineCount = cloneInt(s.LineCount)
	out.BlankRows = cloneInt(s.BlankRows)
	out.HideCheckboxes = cloneBool(s.HideCheckboxes)
	return out
}

// Page is one month's checklist sheet.
type Page struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Month      string    `json:"month"` // canonical form "YYYY-MM"
	BaseSize   float64   `json:"baseSize"`
	ScaleRatio float64   `json:"scaleRatio"`
	Sections   []Section `json:"sections"`
}

// Section returns a pointer to the section with the given id, or nil.
func (p *Page) Section(id string) *Section {
	for i := range p.Sections {
		if p.Sections[i].ID == id {
			return &p.Sections[i]
		}
	}
	return nil
}

// SectionIndex returns the position of the section with the given id,
// or -1 when absent.
func (p *Page) SectionIndex(id string) int {
	for i := range p.Sections {
		if p.Sections[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep, independent copy of the page.
func (p *Page) Clone() Page {
	out := *p
	out.Sections = CloneSections(p.Sections)
	return out
}

// Document is the full editable configuration: settings plus all
// pages. Pages[0] is the master template; its title, sizing and
// sections are propagated to every follower page on synchronization,
// so only Month varies per page long-term.
type Document struct {
	WeekStartDay  int    `json:"weekStartDay"`
	Pages         []Page `json:"pages"`
	MultiPageView bool   `json:"multiPageView"`
}

// Master returns the master page, or nil for a structurally empty
// document (which no supported operation produces).
func (d *Document) Master() *Page {
	if len(d.Pages) == 0 {
		return nil
	}
	return &d.Pages[0]
}

// Page returns a pointer to the page with the given id, or nil.
func (d *Document) Page(id string) *Page {
	for i := range d.Pages {
		if d.Pages[i].ID == id {
			return &d.Pages[i]
		}
	}
	return nil
}

// PageIndex returns the position of the page with the given id, or -1.
func (d *Document) PageIndex(id string) int {
	for i := range d.Pages {
		if d.Pages[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep, independent copy of the document. No mutable
// structure is shared with the receiver.
func (d *Document) Clone() *Document {
	out := &Document{
		WeekStartDay:  d.WeekStartDay,
		MultiPageView: d.MultiPageView,
		Pages:         make([]Page, len(d.Pages)),
	}
	for i := range d.Pages {
		out.Pages[i] = d.Pages[i].Clone()
	}
	return out
}

// CloneSections deep-copies a section slice.
func CloneSections(sections []Section) []Section {
	out := make([]Section, len(sections))
	for i := range sections {
		out[i] = sections[i].Clone()
	}
	return out
}

// MonthString formats t as the canonical "YYYY-MM" month value.
func MonthString(t time.Time) string {
	return t.Format("2006-01")
}

// ParseMonth splits a canonical "YYYY-MM" value into year and a
// 1-based month number.
func ParseMonth(month string) (year int, mon int, err error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return 0, 0, fmt.Errorf("models: parse month %q: %w", month, err)
	}
	return t.Year(), int(t.Month()), nil
}

// Bool returns a pointer to v, for populating optional fields.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v, for populating optional fields.
func Int(v int) *int { return &v }

func cloneBool(p *bool) *bool {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
