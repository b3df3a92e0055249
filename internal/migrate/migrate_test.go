package migrate

import (
	"errors"
	"testing"
	"time"

	"github.com/starford/dagaz/internal/apperr"
	"github.com/starford/dagaz/internal/models"
)

var testNow = time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)

func TestNormalizeCurrentShape(t *testing.T) {
	data := []byte(`{
		"weekStartDay": 0,
		"multiPageView": true,
		"pages": [
			{"id": "page-1", "title": "T", "month": "2026-02", "baseSize": 10, "scaleRatio": 1.25, "sections": []},
			{"id": "page-2", "title": "T", "month": "2026-03", "baseSize": 10, "scaleRatio": 1.25, "sections": []}
		]
	}`)
	doc, err := Normalize(data, testNow)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if doc.WeekStartDay != 0 || !doc.MultiPageView || len(doc.Pages) != 2 {
		t.Errorf("doc = %+v", doc)
	}
}

func TestNormalizeLegacySinglePage(t *testing.T) {
	data := []byte(`{
		"title": "Old Layout",
		"startMonth": "2025-09",
		"baseSize": 3,
		"sections": [{"id": "daily-1", "type": "daily", "title": "D"}]
	}`)
	doc, err := Normalize(data, testNow)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(doc.Pages) != 1 {
		t.Fatalf("pages = %d", len(doc.Pages))
	}
	p := doc.Pages[0]
	if p.ID != "page-1" || p.Title != "Old Layout" || p.Month != "2025-09" {
		t.Errorf("page = %+v", p)
	}
	if p.BaseSize != models.MinBaseSize {
		t.Errorf("baseSize = %v, want clamped to min", p.BaseSize)
	}
	if p.ScaleRatio != models.DefaultScaleRatio {
		t.Errorf("scaleRatio = %v", p.ScaleRatio)
	}
}

func TestNormalizeLegacyWithoutMonth(t *testing.T) {
	data := []byte(`{"sections": []}`)
	doc, err := Normalize(data, testNow)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if doc.Pages[0].Month != "2026-02" {
		t.Errorf("month = %q, want current", doc.Pages[0].Month)
	}
	if doc.Pages[0].Title != models.DefaultTitle {
		t.Errorf("title = %q", doc.Pages[0].Title)
	}
}

func TestNormalizeUnusableState(t *testing.T) {
	for _, data := range []string{"not json", "{}", `{"weekStartDay": 2}`} {
		if _, err := Normalize([]byte(data), testNow); !errors.Is(err, apperr.ErrNoState) {
			t.Errorf("Normalize(%q) err = %v, want ErrNoState", data, err)
		}
	}
}

func TestRepairClampsEveryPage(t *testing.T) {
	doc := &models.Document{Pages: []models.Page{
		{BaseSize: 0, ScaleRatio: 0},
		{BaseSize: 4, ScaleRatio: -1},
		{BaseSize: 11, ScaleRatio: 1.5},
	}}
	Repair(doc)
	if doc.Pages[0].BaseSize != models.DefaultBaseSize || doc.Pages[0].ScaleRatio != models.DefaultScaleRatio {
		t.Errorf("page 0 = %+v", doc.Pages[0])
	}
	if doc.Pages[1].BaseSize != models.MinBaseSize || doc.Pages[1].ScaleRatio != models.DefaultScaleRatio {
		t.Errorf("page 1 = %+v", doc.Pages[1])
	}
	if doc.Pages[2].BaseSize != 11 || doc.Pages[2].ScaleRatio != 1.5 {
		t.Errorf("page 2 should be untouched: %+v", doc.Pages[2])
	}
}

func TestSeeds(t *testing.T) {
	doc := &models.Document{Pages: []models.Page{
		{ID: "page-1", Sections: []models.Section{{ID: "daily-1"}, {ID: "weekly-5"}}},
		{ID: "page-3", Sections: []models.Section{{ID: "notes-2"}}},
	}}
	pageSeq, sectionSeq := Seeds(doc)
	if pageSeq != 4 {
		t.Errorf("pageSeq = %d, want 4", pageSeq)
	}
	if sectionSeq != 6 {
		t.Errorf("sectionSeq = %d, want 6", sectionSeq)
	}
}

func TestSeedsFloor(t *testing.T) {
	// Unparseable ids never pull the counters below their floor.
	doc := &models.Document{Pages: []models.Page{
		{ID: "weird", Sections: []models.Section{{ID: "also-weird"}}},
	}}
	pageSeq, sectionSeq := Seeds(doc)
	if pageSeq != 2 || sectionSeq != 2 {
		t.Errorf("seeds = %d, %d, want 2, 2", pageSeq, sectionSeq)
	}
}
