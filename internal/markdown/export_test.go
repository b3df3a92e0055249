package markdown

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/starford/dagaz/internal/models"
)

func testDocument() *models.Document {
	return &models.Document{
		WeekStartDay: 1,
		Pages: []models.Page{{
			ID:         "page-1",
			Title:      "Home Checklist",
			Month:      "2026-03",
			BaseSize:   10,
			ScaleRatio: 1.25,
			Sections: []models.Section{
				{
					ID:       "weekly-1",
					Type:     models.SectionWeekly,
					Title:    "Weekly",
					Subtitle: "By Sunday",
					Chores:   []string{"Vacuum", "Laundry"},
				},
				{
					ID:     "daily-1",
					Type:   models.SectionDaily,
					Title:  "Daily",
					Chores: []string{"Dishes"},
				},
				{
					ID:        "monthly-1",
					Type:      models.SectionMonthly,
					Title:     "Monthly Goals",
					Chores:    []string{"Budget"},
					BlankRows: models.Int(2),
				},
				{
					ID:        "notes-1",
					Type:      models.SectionNotes,
					Title:     "Notes",
					LineCount: models.Int(3),
				},
			},
		}},
	}
}

func TestExportHeader(t *testing.T) {
	out := Export(testDocument())
	if !strings.HasPrefix(out, "# Home Checklist  March 2026\n") {
		t.Errorf("header missing: %q", firstLine(out))
	}
}

func TestExportWeeklyTable(t *testing.T) {
	out := Export(testDocument())
	if !strings.Contains(out, "## Weekly *By Sunday*") {
		t.Error("weekly heading missing")
	}
	// March 2026 with a Monday week start spans six week columns.
	if !strings.Contains(out, "| Chore | Week 1 (1-1) |") {
		t.Errorf("weekly table header missing:\n%s", out)
	}
	if !strings.Contains(out, "Week 6 (30-31)") {
		t.Error("last week column missing")
	}
	if !strings.Contains(out, "| Vacuum | ☐ |") {
		t.Error("chore row missing checkbox cells")
	}
}

func TestExportDailyGrid(t *testing.T) {
	out := Export(testDocument())
	if !strings.Contains(out, "### Week 1 (1-1)") {
		t.Error("daily per-week heading missing")
	}
	// The first week of March 2026 has six out-of-month slots before
	// Sunday the 1st.
	if !strings.Contains(out, "| Chore | - | - | - | - | - | - | 1 |") {
		t.Errorf("daily day header wrong:\n%s", out)
	}
	if !strings.Contains(out, "| Dishes | - | - | - | - | - | - | ☐ |") {
		t.Error("daily chore row should dash out-of-month days")
	}
}

func TestExportMonthlyAndNotes(t *testing.T) {
	out := Export(testDocument())
	if !strings.Contains(out, "| Goal | Done |") {
		t.Error("monthly table missing")
	}
	if !strings.Contains(out, "| Budget | ☐ |") {
		t.Error("monthly goal row missing")
	}
	// Two blank goal rows.
	if strings.Count(out, "| | ☐ |") != 2 {
		t.Errorf("blank rows = %d, want 2", strings.Count(out, "| | ☐ |"))
	}
	// Three ruled note lines.
	if strings.Count(out, "- \n") != 3 {
		t.Errorf("note lines = %d, want 3", strings.Count(out, "- \n"))
	}
}

func TestExportEmptyDocument(t *testing.T) {
	if out := Export(&models.Document{}); out != "" {
		t.Errorf("empty document export = %q", out)
	}
}

func TestExportBadMonthFallsBack(t *testing.T) {
	d := testDocument()
	d.Pages[0].Month = "broken"
	out := Export(d)
	year := strconv.Itoa(time.Now().Year())
	if !strings.Contains(firstLine(out), year) {
		t.Errorf("fallback header = %q", firstLine(out))
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
