// Package markdown renders the master checklist page as a Markdown
// document suitable for pasting into any notes app.
package markdown

import (
	"fmt"
	"strings"
	"time"

	"github.com/starford/dagaz/internal/calendar"
	"github.com/starford/dagaz/internal/models"
)

// Export renders the document's master page. Follower pages share the
// master's content, so only their months differ; the export covers
// the master month.
func Export(d *models.Document) string {
	page := d.Master()
	if page == nil {
		return ""
	}

	year, mon, err := models.ParseMonth(page.Month)
	if err != nil {
		now := time.Now()
		year, mon = now.Year(), int(now.Month())
	}
	monthName := time.Date(year, time.Month(mon), 1, 0, 0, 0, 0, time.UTC).
		Format("January 2006")

	var b strings.Builder
	fmt.Fprintf(&b, "# %s  %s\n\n", page.Title, monthName)

	weeks := calendar.WeeksInMonth(year, time.Month(mon), d.WeekStartDay)

	for i := range page.Sections {
		s := &page.Sections[i]
		switch s.Type {
		case models.SectionWeekly:
			writeWeekly(&b, s, weeks)
		case models.SectionDaily:
			writeDaily(&b, s, weeks)
		case models.SectionMonthly:
			writeMonthly(&b, s)
		case models.SectionNotes:
			writeNotes(&b, s)
		}
	}
	return b.String()
}

func writeHeading(b *strings.Builder, s *models.Section) {
	b.WriteString("## " + s.Title)
	if s.Subtitle != "" {
		b.WriteString(" *" + s.Subtitle + "*")
	}
	b.WriteString("\n\n")
}

func writeWeekly(b *strings.Builder, s *models.Section, weeks []calendar.Week) {
	writeHeading(b, s)

	b.WriteString("| Chore |")
	for i := range weeks {
		fmt.Fprintf(b, " Week %d (%d-%d) |", i+1, weeks[i].FirstInMonthDay(), weeks[i].LastInMonthDay())
	}
	b.WriteString("\n|-------|")
	for range weeks {
		b.WriteString(":-:|")
	}
	b.WriteString("\n")

	row := func(name string) {
		b.WriteString("| " + name + " |")
		for range weeks {
			b.WriteString(" ☐ |")
		}
		b.WriteString("\n")
	}
	for _, chore := range s.Chores {
		row(chore)
	}
	for i := 0; i < s.ExtraRows(); i++ {
		row("")
	}
	b.WriteString("\n")
}

func writeDaily(b *strings.Builder, s *models.Section, weeks []calendar.Week) {
	writeHeading(b, s)

	for wi := range weeks {
		week := &weeks[wi]
		fmt.Fprintf(b, "### Week %d (%d-%d)\n\n", wi+1, week.FirstInMonthDay(), week.LastInMonthDay())

		b.WriteString("| Chore |")
		for _, day := range week.Days {
			if day.InMonth {
				fmt.Fprintf(b, " %d |", day.Date.Day())
			} else {
				b.WriteString(" - |")
			}
		}
		b.WriteString("\n|-------|")
		for range week.Days {
			b.WriteString(":-:|")
		}
		b.WriteString("\n")

		row := func(name string) {
			b.WriteString("| " + name + " |")
			for _, day := range week.Days {
				if day.InMonth {
					b.WriteString(" ☐ |")
				} else {
					b.WriteString(" - |")
				}
			}
			b.WriteString("\n")
		}
		for _, chore := range s.Chores {
			row(chore)
		}
		for i := 0; i < s.ExtraRows(); i++ {
			row("")
		}
		b.WriteString("\n")
	}
}

func writeMonthly(b *strings.Builder, s *models.Section) {
	writeHeading(b, s)

	b.WriteString("| Goal | Done |\n")
	b.WriteString("|------|:----:|\n")
	for _, goal := range s.Chores {
		fmt.Fprintf(b, "| %s | ☐ |\n", goal)
	}
	for i := 0; i < s.ExtraRows(); i++ {
		b.WriteString("| | ☐ |\n")
	}
	b.WriteString("\n")
}

func writeNotes(b *strings.Builder, s *models.Section) {
	writeHeading(b, s)
	for i := 0; i < s.Lines(); i++ {
		b.WriteString("- \n")
	}
	b.WriteString("\n")
}
