// Package codec implements the compact share encoding for checklist
// documents: positional arrays with default omission on the way out,
// and a chain of shape decoders that converges three historical
// payload generations onto the current document model on the way in.
package codec

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/starford/dagaz/internal/apperr"
	"github.com/starford/dagaz/internal/models"
)

// Section slots in the positional array form:
// [type, title?, subtitle?, chores?, doubleColumn?, lineCount?, blankRows?, hideCheckboxes?]
const (
	slotType = iota
	slotTitle
	slotSubtitle
	slotChores
	slotDoubleColumn
	slotLineCount
	slotBlankRows
	slotHideCheckboxes
	sectionSlots
)

var typeAbbrev = map[models.SectionType]string{
	models.SectionDaily:   "d",
	models.SectionWeekly:  "w",
	models.SectionMonthly: "m",
	models.SectionNotes:   "n",
}

var abbrevType = map[string]models.SectionType{
	"d": models.SectionDaily,
	"w": models.SectionWeekly,
	"m": models.SectionMonthly,
	"n": models.SectionNotes,
}

// Compact shrinks a document to the positional array form
// [weekStartDay?, title?, baseSize?, scaleRatio?, sections, months].
// The four leading fields are included only when they differ from
// their defaults; only the master page's template is carried, plus
// the month of every page.
func Compact(d *models.Document) []any {
	master := d.Master()
	if master == nil {
		return nil
	}

	out := make([]any, 0, 6)
	if d.WeekStartDay != models.DefaultWeekStartDay {
		out = append(out, d.WeekStartDay)
	}
	if master.Title != models.DefaultTitle {
		out = append(out, master.Title)
	}
	if master.BaseSize != models.DefaultBaseSize {
		out = append(out, master.BaseSize)
	}
	if master.ScaleRatio != models.DefaultScaleRatio {
		out = append(out, master.ScaleRatio)
	}

	sections := make([]any, len(master.Sections))
	for i := range master.Sections {
		sections[i] = compactSection(&master.Sections[i])
	}
	out = append(out, sections)

	months := make([]string, len(d.Pages))
	for i := range d.Pages {
		months[i] = CompactMonth(d.Pages[i].Month)
	}
	out = append(out, months)
	return out
}

// compactSection applies the per-slot omission rules and trims
// trailing omitted slots, so a section using only defaults encodes
// as [typeAbbrev]. Interior omitted slots stay as nulls.
func compactSection(s *models.Section) []any {
	slots := make([]any, sectionSlots)
	if ab, ok := typeAbbrev[s.Type]; ok {
		slots[slotType] = ab
	} else {
		slots[slotType] = string(s.Type)
	}
	if s.Title != "" {
		slots[slotTitle] = s.Title
	}
	if s.Subtitle != "" {
		slots[slotSubtitle] = s.Subtitle
	}
	if len(s.Chores) > 0 {
		slots[slotChores] = s.Chores
	}
	if s.DoubleColumn != nil && s.Type != models.SectionWeekly {
		slots[slotDoubleColumn] = *s.DoubleColumn
	}
	if s.LineCount != nil && *s.LineCount != models.DefaultLineCount {
		slots[slotLineCount] = *s.LineCount
	}
	if s.BlankRows != nil && *s.BlankRows != 0 {
		slots[slotBlankRows] = *s.BlankRows
	}
	if s.HideCheckboxes != nil && *s.HideCheckboxes {
		slots[slotHideCheckboxes] = true
	}

	n := len(slots)
	for n > 1 && slots[n-1] == nil {
		n--
	}
	return slots[:n]
}

// CompactMonth shortens "YYYY-MM" to "YYMM", assuming the 21st
// century.
func CompactMonth(month string) string {
	s := strings.Replace(month, "-", "", 1)
	if len(s) > 2 {
		return s[2:]
	}
	return s
}

// ExpandMonth reverses CompactMonth. Values already in canonical form
// pass through; a bare month number falls back to the current year.
func ExpandMonth(compact string, now time.Time) string {
	if strings.Contains(compact, "-") {
		return compact
	}
	if len(compact) == 4 {
		return "20" + compact[:2] + "-" + compact[2:]
	}
	m := compact
	for len(m) < 2 {
		m = "0" + m
	}
	return fmt.Sprintf("%d-%s", now.Year(), m)
}

// Expand normalizes any of the three historical payload shapes into
// a current document:
//
//  1. the positional array form (current generation),
//  2. the named-key object form (w/t/b/r/s/m with short section keys),
//  3. the fully-expanded object form carrying a literal pages array.
//
// Shape parsers are tried in order; unusable payloads yield
// apperr.ErrNoState. Field-level damage is repaired with defaults
// rather than rejected.
func Expand(raw any, now time.Time) (*models.Document, error) {
	switch v := raw.(type) {
	case map[string]any:
		if _, ok := v["pages"]; ok {
			return expandPagesForm(v)
		}
		return expandNamedForm(v, now), nil
	case []any:
		return expandArrayForm(v, now), nil
	default:
		return nil, fmt.Errorf("codec: unrecognized payload shape: %w", apperr.ErrNoState)
	}
}

// expandArrayForm decodes the current generation. The leading
// optional fields are sequential, so presence is sniffed from the
// value: a number in 0..6 is the week start, then a non-empty string
// is the title, then numbers off their defaults are base size and
// scale ratio. This mirrors the historical format exactly; see the
// format notes in DESIGN.md for the known ambiguity.
func expandArrayForm(arr []any, now time.Time) *models.Document {
	weekStartDay := models.DefaultWeekStartDay
	title := models.DefaultTitle
	baseSize := models.DefaultBaseSize
	scaleRatio := models.DefaultScaleRatio

	i := 0
	if f, ok := numberAt(arr, i); ok && f >= 0 && f <= 6 {
		weekStartDay = int(f)
		i++
	}
	if s, ok := at(arr, i).(string); ok && s != "" {
		title = s
		i++
	}
	if f, ok := numberAt(arr, i); ok && f != models.DefaultBaseSize {
		if f == 0 {
			f = models.DefaultBaseSize
		}
		baseSize = math.Max(models.MinBaseSize, f)
		i++
	}
	if f, ok := numberAt(arr, i); ok && f != models.DefaultScaleRatio {
		scaleRatio = f
		i++
	}
	sections := expandSections(at(arr, i))
	i++
	months := expandMonths(at(arr, i), now)

	return assembleDocument(weekStartDay, title, baseSize, scaleRatio, sections, months)
}

// expandNamedForm decodes the older named-key object generation.
func expandNamedForm(obj map[string]any, now time.Time) *models.Document {
	weekStartDay := models.DefaultWeekStartDay
	if f, ok := obj["w"].(float64); ok {
		weekStartDay = int(f)
	}
	title := models.DefaultTitle
	if s, ok := obj["t"].(string); ok && s != "" {
		title = s
	}
	baseSize := models.DefaultBaseSize
	if f, ok := obj["b"].(float64); ok && f != 0 {
		baseSize = f
	}
	baseSize = math.Max(models.MinBaseSize, baseSize)
	scaleRatio := models.DefaultScaleRatio
	if f, ok := obj["r"].(float64); ok && f != 0 {
		scaleRatio = f
	}
	sections := expandSections(obj["s"])
	months := expandMonths(obj["m"], now)

	return assembleDocument(weekStartDay, title, baseSize, scaleRatio, sections, months)
}

// expandPagesForm decodes the oldest generation, which carried full
// page objects with no compaction at all.
func expandPagesForm(obj map[string]any) (*models.Document, error) {
	data, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("codec: remarshal pages form: %w", err)
	}
	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("codec: pages form: %w: %w", err, apperr.ErrNoState)
	}
	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("codec: pages form has no pages: %w", apperr.ErrNoState)
	}
	return &doc, nil
}

// assembleDocument builds one page per month, sharing the decoded
// template. Section ids are regenerated positionally, so compaction
// is deliberately lossy for identity but not for content.
func assembleDocument(weekStartDay int, title string, baseSize, scaleRatio float64, sections []models.Section, months []string) *models.Document {
	pages := make([]models.Page, len(months))
	for i, month := range months {
		pages[i] = models.Page{
			ID:         fmt.Sprintf("page-%d", i+1),
			Title:      title,
			Month:      month,
			BaseSize:   math.Max(models.MinBaseSize, baseSize),
			ScaleRatio: scaleRatio,
			Sections:   models.CloneSections(sections),
		}
	}
	return &models.Document{
		WeekStartDay: weekStartDay,
		Pages:        pages,
	}
}

// expandSections decodes a section list in either the positional
// array or named-key element shape. Anything unusable falls back to
// the default sections.
func expandSections(raw any) []models.Section {
	list, ok := raw.([]any)
	if !ok {
		return models.DefaultSections()
	}
	out := make([]models.Section, 0, len(list))
	for i, el := range list {
		out = append(out, expandSection(el, i))
	}
	return out
}

func expandSection(el any, idx int) models.Section {
	var (
		typ            models.SectionType
		title          any
		subtitle       any
		chores         any
		doubleColumn   any
		lineCount      any
		blankRows      any
		hideCheckboxes any
	)

	switch v := el.(type) {
	case []any:
		typ = expandType(at(v, slotType), "")
		title = at(v, slotTitle)
		subtitle = at(v, slotSubtitle)
		chores = at(v, slotChores)
		doubleColumn = at(v, slotDoubleColumn)
		lineCount = at(v, slotLineCount)
		blankRows = at(v, slotBlankRows)
		hideCheckboxes = at(v, slotHideCheckboxes)
	case map[string]any:
		typ = expandType(v["t"], models.SectionDaily)
		title = v["ti"]
		subtitle = v["st"]
		chores = v["c"]
		doubleColumn = v["dc"]
		lineCount = v["lc"]
		blankRows = v["br"]
		hideCheckboxes = v["hc"]
	default:
		typ = models.SectionDaily
	}

	s := models.Section{
		ID:       fmt.Sprintf("%s-%d", typ, idx+1),
		Type:     typ,
		Title:    stringOr(title, "New Section"),
		Subtitle: stringOr(subtitle, ""),
		Chores:   stringSlice(chores),
	}

	// Reconstruct per-type implicit defaults for the omitted slots.
	if b, ok := doubleColumn.(bool); ok {
		s.DoubleColumn = models.Bool(b)
	} else if typ == models.SectionDaily || typ == models.SectionNotes || typ == models.SectionMonthly {
		s.DoubleColumn = models.Bool(true)
	}
	if f, ok := lineCount.(float64); ok {
		s.LineCount = models.Int(int(f))
	} else if typ == models.SectionNotes {
		s.LineCount = models.Int(models.DefaultLineCount)
	}
	if f, ok := blankRows.(float64); ok {
		s.BlankRows = models.Int(int(f))
	} else if typ == models.SectionMonthly {
		s.BlankRows = models.Int(0)
	}
	if b, ok := hideCheckboxes.(bool); ok {
		s.HideCheckboxes = models.Bool(b)
	}
	return s
}

func expandType(raw any, fallback models.SectionType) models.SectionType {
	s, ok := raw.(string)
	if !ok || s == "" {
		if fallback != "" {
			return fallback
		}
		return models.SectionDaily
	}
	if t, ok := abbrevType[s]; ok {
		return t
	}
	return models.SectionType(s)
}

func expandMonths(raw any, now time.Time) []string {
	list, ok := raw.([]any)
	if !ok {
		return []string{models.MonthString(now)}
	}
	out := make([]string, 0, len(list))
	for _, el := range list {
		if s, ok := el.(string); ok {
			out = append(out, ExpandMonth(s, now))
		}
	}
	if len(out) == 0 {
		return []string{models.MonthString(now)}
	}
	return out
}

func at(arr []any, i int) any {
	if i < 0 || i >= len(arr) {
		return nil
	}
	return arr[i]
}

func numberAt(arr []any, i int) (float64, bool) {
	f, ok := at(arr, i).(float64)
	return f, ok
}

func stringOr(raw any, fallback string) string {
	if s, ok := raw.(string); ok && s != "" {
		return s
	}
	return fallback
}

func stringSlice(raw any) []string {
	list, ok := raw.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(list))
	for _, el := range list {
		if s, ok := el.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
