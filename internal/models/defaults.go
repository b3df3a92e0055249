package models

import "time"

// Document-level and page-level defaults. Fields equal to these are
// omitted by the compaction codec.
const (
	DefaultWeekStartDay = 1 // Monday
	DefaultTitle        = "Home Checklist"
	DefaultBaseSize     = 10.0
	MinBaseSize         = 6.0
	DefaultScaleRatio   = 1.250
	DefaultLineCount    = 5
)

// ScaleRatioPresets are the known typographic scale steps offered by
// the editor. ScaleRatio is not restricted to them.
var ScaleRatioPresets = []float64{
	1.000, 1.067, 1.125, 1.200, 1.250, 1.333, 1.414, 1.500, 1.618,
}

// ClampBaseSize corrects a base size to the valid range: zero or
// absent falls back to the default, anything below the minimum is
// raised to it.
func ClampBaseSize(v float64) float64 {
	if v == 0 {
		v = DefaultBaseSize
	}
	if v < MinBaseSize {
		return MinBaseSize
	}
	return v
}

// DefaultSections returns a fresh copy of the example sections a new
// page starts with: one of each section variant.
func DefaultSections() []Section {
	return []Section{
		{
			ID:           "daily-1",
			Type:         SectionDaily,
			Title:        "Ready for the Day.",
			Subtitle:     "Complete by nightfall",
			DoubleColumn: Bool(true),
			Chores: []string{
				"Trash away in cans",
				"Clear pathways",
				"Dishes put in dishwasher",
				"Reduce clutter",
				"Wipe surfaces",
				"Laundry put in Bins",
			},
		},
		{
			ID:       "weekly-1",
			Type:     SectionWeekly,
			Title:    "Ready for the week.",
			Subtitle: "Complete by Sun",
			Chores: []string{
				"Change sheets",
				"Dishes, loaded",
				"Dishes, unloaded",
				"Vacuum/Clean floors",
				"Clean bathroom",
				"Laundry washed",
				"Laundry dried",
			},
		},
		{
			ID:           "monthly-1",
			Type:         SectionMonthly,
			Title:        "Monthly Goals",
			Subtitle:     "Complete this month",
			DoubleColumn: Bool(true),
			BlankRows:    Int(3),
			Chores: []string{
				"Schedule appointments",
				"Review budget",
				"Plan next month",
			},
		},
		{
			ID:           "notes-1",
			Type:         SectionNotes,
			Title:        "Notes",
			Subtitle:     "",
			LineCount:    Int(DefaultLineCount),
			DoubleColumn: Bool(true),
		},
	}
}

// NewDefaultPage builds a page with default styling and sections,
// dated monthOffset months after now.
func NewDefaultPage(id string, monthOffset int, now time.Time) Page {
	target := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, monthOffset, 0)
	return Page{
		ID:         id,
		Title:      DefaultTitle,
		Month:      MonthString(target),
		BaseSize:   DefaultBaseSize,
		ScaleRatio: DefaultScaleRatio,
		Sections:   DefaultSections(),
	}
}

// NewDefaultDocument builds the document a fresh install starts with:
// one page for the current month.
func NewDefaultDocument(now time.Time) *Document {
	return &Document{
		WeekStartDay: DefaultWeekStartDay,
		Pages:        []Page{NewDefaultPage("page-1", 0, now)},
	}
}
