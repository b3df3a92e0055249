// Package migrate upgrades persisted state of any historical shape
// into the current document model and repairs out-of-range values.
package migrate

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/starford/dagaz/internal/apperr"
	"github.com/starford/dagaz/internal/models"
)

// persisted is the superset of every stored-state generation: the
// current multi-page record plus the legacy single-page fields that
// used to live at the top level.
type persisted struct {
	WeekStartDay  *int             `json:"weekStartDay"`
	Pages         []models.Page    `json:"pages"`
	MultiPageView bool             `json:"multiPageView"`
	Title         string           `json:"title"`
	StartMonth    string           `json:"startMonth"`
	BaseSize      float64          `json:"baseSize"`
	ScaleRatio    float64          `json:"scaleRatio"`
	Sections      []models.Section `json:"sections"`
}

// Normalize parses raw stored state and upgrades it to the current
// document model. Malformed input is treated like absent state
// (apperr.ErrNoState); recognizable but damaged fields are repaired
// with defaults.
func Normalize(data []byte, now time.Time) (*models.Document, error) {
	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("migrate: parse state: %w: %w", err, apperr.ErrNoState)
	}

	doc := &models.Document{
		WeekStartDay:  models.DefaultWeekStartDay,
		MultiPageView: p.MultiPageView,
	}
	if p.WeekStartDay != nil {
		doc.WeekStartDay = *p.WeekStartDay
	}

	switch {
	case len(p.Pages) > 0:
		doc.Pages = p.Pages
	case p.Sections != nil:
		// Legacy single-page shape: wrap into a one-page document.
		month := p.StartMonth
		if month == "" {
			month = models.MonthString(now)
		}
		title := p.Title
		if title == "" {
			title = models.DefaultTitle
		}
		ratio := p.ScaleRatio
		if ratio == 0 {
			ratio = models.DefaultScaleRatio
		}
		doc.Pages = []models.Page{{
			ID:         "page-1",
			Title:      title,
			Month:      month,
			BaseSize:   models.ClampBaseSize(p.BaseSize),
			ScaleRatio: ratio,
			Sections:   p.Sections,
		}}
	default:
		return nil, fmt.Errorf("migrate: state has no pages: %w", apperr.ErrNoState)
	}

	Repair(doc)
	return doc, nil
}

// Repair enforces load-time invariants in place: clamped base sizes
// and positive scale ratios on every page.
func Repair(d *models.Document) {
	for i := range d.Pages {
		p := &d.Pages[i]
		p.BaseSize = models.ClampBaseSize(p.BaseSize)
		if p.ScaleRatio <= 0 {
			p.ScaleRatio = models.DefaultScaleRatio
		}
	}
}

// Seeds scans every page and section id for its highest numeric
// suffix and returns the next counter values, so ids issued after a
// load never collide with restored ones.
func Seeds(d *models.Document) (pageSeq, sectionSeq int) {
	pageSeq, sectionSeq = 2, 2
	for i := range d.Pages {
		if n := idSuffix(d.Pages[i].ID); n >= pageSeq {
			pageSeq = n + 1
		}
		for j := range d.Pages[i].Sections {
			if n := idSuffix(d.Pages[i].Sections[j].ID); n >= sectionSeq {
				sectionSeq = n + 1
			}
		}
	}
	return pageSeq, sectionSeq
}

// idSuffix extracts the numeric part of ids like "page-3" or
// "daily-5"; unrecognized ids count as zero.
func idSuffix(id string) int {
	parts := strings.SplitN(id, "-", 2)
	if len(parts) != 2 {
		return 0
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	return n
}
