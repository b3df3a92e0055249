package editor

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/dagaz/internal/apperr"
	"github.com/starford/dagaz/internal/models"
)

// SectionPatch carries a partial section edit; nil fields are left
// untouched.
type SectionPatch struct {
	Title          *string `json:"title"`
	Subtitle       *string `json:"subtitle"`
	DoubleColumn   *bool   `json:"doubleColumn"`
	LineCount      *int    `json:"lineCount"`
	BlankRows      *int    `json:"blankRows"`
	HideCheckboxes *bool   `json:"hideCheckboxes"`
}

// SetWeekStartDay changes which weekday a week begins on.
func (s *Service) SetWeekStartDay(day int) error {
	if err := validation.Validate(day, validation.Min(0), validation.Max(6)); err != nil {
		return fmt.Errorf("editor: week start day: %w: %w", err, apperr.ErrInvalid)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.WeekStartDay = day
	return s.commit("document.updated")
}

// SetMultiPageView toggles the multi-page grid view flag.
func (s *Service) SetMultiPageView(on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.MultiPageView = on
	return s.commit("document.updated")
}

// SetTitle changes the master page title; an empty title falls back
// to the default.
func (s *Service) SetTitle(title string) error {
	if title == "" {
		title = models.DefaultTitle
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Master().Title = title
	return s.commit("document.updated")
}

// SetBaseSize changes the master type-scale base, clamped to the
// valid range. The applied value is returned so callers can reflect
// the correction.
func (s *Service) SetBaseSize(v float64) (float64, error) {
	applied := models.ClampBaseSize(v)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Master().BaseSize = applied
	return applied, s.commit("document.updated")
}

// SetScaleRatio changes the master typographic scale multiplier.
func (s *Service) SetScaleRatio(r float64) error {
	if r <= 0 {
		return fmt.Errorf("editor: scale ratio must be positive: %w", apperr.ErrInvalid)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Master().ScaleRatio = r
	return s.commit("document.updated")
}

// Reset discards everything and returns to the default single-page
// document for the current month.
func (s *Service) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adopt(models.NewDefaultDocument(s.now()))
	return s.commit("document.updated")
}

// AddPage appends a page for the month after the last page. It picks
// up the master template on the same commit.
func (s *Service) AddPage() (models.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	last := s.doc.Pages[len(s.doc.Pages)-1]
	month := last.Month
	if y, m, err := models.ParseMonth(last.Month); err == nil {
		month = models.MonthString(time.Date(y, time.Month(m), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0))
	}

	master := s.doc.Master()
	page := models.Page{
		ID:         s.nextPageID(),
		Title:      master.Title,
		Month:      month,
		BaseSize:   master.BaseSize,
		ScaleRatio: master.ScaleRatio,
		Sections:   models.CloneSections(master.Sections),
	}
	s.doc.Pages = append(s.doc.Pages, page)
	return page.Clone(), s.commit("document.updated")
}

// RemovePage deletes a page. The last remaining page cannot be
// removed.
func (s *Service) RemovePage(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.doc.PageIndex(id)
	if idx < 0 {
		return fmt.Errorf("editor: page %s: %w", id, apperr.ErrNotFound)
	}
	if len(s.doc.Pages) == 1 {
		return apperr.ErrLastPage
	}
	s.doc.Pages = append(s.doc.Pages[:idx], s.doc.Pages[idx+1:]...)
	return s.commit("document.updated")
}

// MovePage shifts a page by offset positions. Moving a page into
// position 0 makes it the new master.
func (s *Service) MovePage(id string, offset int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.doc.PageIndex(id)
	if idx < 0 {
		return fmt.Errorf("editor: page %s: %w", id, apperr.ErrNotFound)
	}
	target := idx + offset
	if target < 0 || target >= len(s.doc.Pages) || target == idx {
		return nil
	}
	page := s.doc.Pages[idx]
	rest := append(s.doc.Pages[:idx], s.doc.Pages[idx+1:]...)
	s.doc.Pages = append(rest[:target], append([]models.Page{page}, rest[target:]...)...)
	return s.commit("document.updated")
}

// SetPageMonth changes one page's month.
func (s *Service) SetPageMonth(id, month string) error {
	if _, _, err := models.ParseMonth(month); err != nil {
		return fmt.Errorf("%w: %w", err, apperr.ErrInvalid)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	page := s.doc.Page(id)
	if page == nil {
		return fmt.Errorf("editor: page %s: %w", id, apperr.ErrNotFound)
	}
	page.Month = month
	return s.commit("document.updated")
}

// SetStartMonth re-dates every page sequentially from the given
// month, keeping page count and content.
func (s *Service) SetStartMonth(month string) error {
	y, m, err := models.ParseMonth(month)
	if err != nil {
		return fmt.Errorf("%w: %w", err, apperr.ErrInvalid)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Date(y, time.Month(m), 1, 0, 0, 0, 0, time.UTC)
	for i := range s.doc.Pages {
		s.doc.Pages[i].Month = models.MonthString(start.AddDate(0, i, 0))
	}
	return s.commit("document.updated")
}

// SetMonthRange rebuilds the page list to cover count consecutive
// months starting at month, all sharing the master template.
func (s *Service) SetMonthRange(month string, count int) error {
	y, m, err := models.ParseMonth(month)
	if err != nil {
		return fmt.Errorf("%w: %w", err, apperr.ErrInvalid)
	}
	if err := validation.Validate(count, validation.Required, validation.Min(1), validation.Max(24)); err != nil {
		return fmt.Errorf("editor: month count: %w: %w", err, apperr.ErrInvalid)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	master := s.doc.Master()
	start := time.Date(y, time.Month(m), 1, 0, 0, 0, 0, time.UTC)
	pages := make([]models.Page, count)
	for i := 0; i < count; i++ {
		pages[i] = models.Page{
			ID:         fmt.Sprintf("page-%d", i+1),
			Title:      master.Title,
			Month:      models.MonthString(start.AddDate(0, i, 0)),
			BaseSize:   models.ClampBaseSize(master.BaseSize),
			ScaleRatio: master.ScaleRatio,
			Sections:   models.CloneSections(master.Sections),
		}
	}
	s.doc.Pages = pages
	s.pageSeq = count + 1
	return s.commit("document.updated")
}

// AddSection appends a fresh section of the given type to the master
// page, with the same starter content the original editor offers.
func (s *Service) AddSection(t models.SectionType) (models.Section, error) {
	if !t.Valid() {
		return models.Section{}, fmt.Errorf("editor: section type %q: %w", t, apperr.ErrInvalid)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sec := newSection(t, s.nextSectionID(t))
	master := s.doc.Master()
	master.Sections = append(master.Sections, sec)
	return sec.Clone(), s.commit("document.updated")
}

func newSection(t models.SectionType, id string) models.Section {
	switch t {
	case models.SectionWeekly:
		return models.Section{
			ID: id, Type: t,
			Title:    "New Weekly Section",
			Subtitle: "Complete by...",
			Chores:   []string{},
		}
	case models.SectionDaily:
		return models.Section{
			ID: id, Type: t,
			Title:        "New Daily Section",
			Subtitle:     "Complete by...",
			DoubleColumn: models.Bool(true),
			Chores:       []string{},
		}
	case models.SectionMonthly:
		return models.Section{
			ID: id, Type: t,
			Title:        "Monthly Goals",
			Subtitle:     "Complete this month",
			DoubleColumn: models.Bool(true),
			BlankRows:    models.Int(3),
			Chores: []string{
				"Schedule appointments",
				"Review budget",
				"Plan next month",
			},
		}
	default: // notes
		return models.Section{
			ID: id, Type: t,
			Title:        "Notes",
			Subtitle:     "",
			LineCount:    models.Int(models.DefaultLineCount),
			DoubleColumn: models.Bool(true),
		}
	}
}

// RemoveSection deletes a section from the master page.
func (s *Service) RemoveSection(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	master := s.doc.Master()
	idx := master.SectionIndex(id)
	if idx < 0 {
		return fmt.Errorf("editor: section %s: %w", id, apperr.ErrNotFound)
	}
	master.Sections = append(master.Sections[:idx], master.Sections[idx+1:]...)
	return s.commit("document.updated")
}

// MoveSection shifts a section by offset positions within the master
// page. Out-of-range moves are ignored.
func (s *Service) MoveSection(id string, offset int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	master := s.doc.Master()
	idx := master.SectionIndex(id)
	if idx < 0 {
		return fmt.Errorf("editor: section %s: %w", id, apperr.ErrNotFound)
	}
	target := idx + offset
	if target < 0 || target >= len(master.Sections) || target == idx {
		return nil
	}
	master.Sections[idx], master.Sections[target] = master.Sections[target], master.Sections[idx]
	return s.commit("document.updated")
}

// UpdateSection applies a partial edit to one master-page section.
// Out-of-range counts are silently corrected, never rejected.
func (s *Service) UpdateSection(id string, patch SectionPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sec := s.doc.Master().Section(id)
	if sec == nil {
		return fmt.Errorf("editor: section %s: %w", id, apperr.ErrNotFound)
	}
	if patch.Title != nil {
		sec.Title = *patch.Title
	}
	if patch.Subtitle != nil {
		sec.Subtitle = *patch.Subtitle
	}
	if patch.DoubleColumn != nil {
		sec.DoubleColumn = models.Bool(*patch.DoubleColumn)
	}
	if patch.LineCount != nil {
		n := *patch.LineCount
		if n <= 0 {
			n = models.DefaultLineCount
		}
		sec.LineCount = models.Int(n)
	}
	if patch.BlankRows != nil {
		n := *patch.BlankRows
		if n < 0 {
			n = 0
		}
		sec.BlankRows = models.Int(n)
	}
	if patch.HideCheckboxes != nil {
		sec.HideCheckboxes = models.Bool(*patch.HideCheckboxes)
	}
	return s.commit("document.updated")
}

// AddChore appends a chore to a master-page section.
func (s *Service) AddChore(sectionID, text string) error {
	text = strings.TrimSpace(text)
	if err := validation.Validate(text, validation.Required); err != nil {
		return fmt.Errorf("editor: chore text: %w: %w", err, apperr.ErrInvalid)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sec := s.doc.Master().Section(sectionID)
	if sec == nil {
		return fmt.Errorf("editor: section %s: %w", sectionID, apperr.ErrNotFound)
	}
	sec.Chores = append(sec.Chores, text)
	return s.commit("document.updated")
}

// EditChore replaces the chore at index.
func (s *Service) EditChore(sectionID string, index int, text string) error {
	text = strings.TrimSpace(text)
	if err := validation.Validate(text, validation.Required); err != nil {
		return fmt.Errorf("editor: chore text: %w: %w", err, apperr.ErrInvalid)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sec, err := s.choreSection(sectionID, index)
	if err != nil {
		return err
	}
	sec.Chores[index] = text
	return s.commit("document.updated")
}

// RemoveChore deletes the chore at index.
func (s *Service) RemoveChore(sectionID string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sec, err := s.choreSection(sectionID, index)
	if err != nil {
		return err
	}
	sec.Chores = append(sec.Chores[:index], sec.Chores[index+1:]...)
	return s.commit("document.updated")
}

// MoveChore reorders a chore within its section, splice-style: the
// chore is removed from its position and reinserted at to.
func (s *Service) MoveChore(sectionID string, from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sec, err := s.choreSection(sectionID, from)
	if err != nil {
		return err
	}
	if to < 0 || to >= len(sec.Chores) {
		return fmt.Errorf("editor: chore index %d: %w", to, apperr.ErrInvalid)
	}
	if to == from {
		return nil
	}
	chore := sec.Chores[from]
	rest := append(sec.Chores[:from], sec.Chores[from+1:]...)
	sec.Chores = append(rest[:to], append([]string{chore}, rest[to:]...)...)
	return s.commit("document.updated")
}

// choreSection resolves a master-page section and bounds-checks a
// chore index. Callers must hold s.mu.
func (s *Service) choreSection(sectionID string, index int) (*models.Section, error) {
	sec := s.doc.Master().Section(sectionID)
	if sec == nil {
		return nil, fmt.Errorf("editor: section %s: %w", sectionID, apperr.ErrNotFound)
	}
	if index < 0 || index >= len(sec.Chores) {
		return nil, fmt.Errorf("editor: chore index %d: %w", index, apperr.ErrInvalid)
	}
	return sec, nil
}
