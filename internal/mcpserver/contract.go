package mcpserver

// DocumentFormatContract describes the checklist document structure
// that LLM consumers should follow when reading or constructing
// documents.
const DocumentFormatContract = `# Dagaz Document Format Contract

A Dagaz document is a set of printable monthly checklist pages. The
first page is the **master**: its sections, chores and styling are the
single source of truth and are mirrored onto every other page, which
differs only by month.

## Structure

` + "```" + `json
{
  "weekStartDay": 1,
  "multiPageView": false,
  "pages": [
    {
      "id": "page-1",
      "title": "Home Checklist",
      "month": "2026-01",
      "baseSize": 10,
      "scaleRatio": 1.25,
      "sections": [
        {
          "id": "weekly-1",
          "type": "weekly",
          "title": "Weekly Chores",
          "subtitle": "Complete by end of week",
          "chores": ["Vacuum floors", "Clean bathrooms"]
        }
      ]
    }
  ]
}
` + "```" + `

## Rules

1. **Page ids** follow ` + "`" + `page-N` + "`" + `; **section ids** follow ` + "`" + `<type>-N` + "`" + `.
2. **Section types** are ` + "`" + `daily` + "`" + `, ` + "`" + `weekly` + "`" + `, ` + "`" + `monthly` + "`" + ` or ` + "`" + `notes` + "`" + `.
3. **Months** use ` + "`" + `YYYY-MM` + "`" + `.
4. ` + "`" + `weekStartDay` + "`" + ` is 0 (Sunday) through 6 (Saturday).
5. ` + "`" + `baseSize` + "`" + ` is a font size in points, minimum 6; ` + "`" + `scaleRatio` + "`" + `
   is the typographic scale multiplier and must be positive.
6. Optional section fields (` + "`" + `doubleColumn` + "`" + `, ` + "`" + `lineCount` + "`" + `,
   ` + "`" + `blankRows` + "`" + `, ` + "`" + `hideCheckboxes` + "`" + `) may be omitted; omitted means
   "use the type's default", which is not the same as an explicit value.
7. Only edit the **master page**. Sections on follower pages are
   overwritten from the master on every save.

## Per-type defaults

- ` + "`" + `daily` + "`" + `: two-column layout by default.
- ` + "`" + `weekly` + "`" + `: single-column by default.
- ` + "`" + `monthly` + "`" + `: two-column, zero blank rows.
- ` + "`" + `notes` + "`" + `: two-column, five ruled lines.
`
