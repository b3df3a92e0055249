package api

import (
	"github.com/starford/dagaz/internal/editor"
	"github.com/starford/dagaz/internal/history"
	"github.com/starford/dagaz/internal/models"
)

// DocumentResponse wraps the full document together with the
// checksum of its persisted form.
type DocumentResponse struct {
	Document *models.Document `json:"document"`
	Checksum string           `json:"checksum"`
}

// WeekStartRequest sets which weekday a week begins on.
type WeekStartRequest struct {
	WeekStartDay int `json:"weekStartDay"`
}

// ViewRequest toggles the multi-page grid view.
type ViewRequest struct {
	MultiPageView bool `json:"multiPageView"`
}

// MasterRequest is a partial edit of the master page's shared
// styling; nil fields are left untouched.
type MasterRequest struct {
	Title      *string  `json:"title"`
	BaseSize   *float64 `json:"baseSize"`
	ScaleRatio *float64 `json:"scaleRatio"`
}

// MoveRequest shifts an item by offset positions.
type MoveRequest struct {
	Offset int `json:"offset"`
}

// MonthRequest sets one page's month.
type MonthRequest struct {
	Month string `json:"month"`
}

// MonthsRequest re-dates the page list. With Count zero, existing
// pages are re-dated sequentially from Start; with Count set, the
// page list is rebuilt to cover that many months.
type MonthsRequest struct {
	Start string `json:"start"`
	Count int    `json:"count"`
}

// AddSectionRequest creates a section of the given type.
type AddSectionRequest struct {
	Type models.SectionType `json:"type"`
}

// SectionPatchRequest is a partial section edit (aliased from the
// editor layer).
type SectionPatchRequest = editor.SectionPatch

// ChoreRequest carries one chore's text.
type ChoreRequest struct {
	Text string `json:"text"`
}

// ChoreMoveRequest reorders a chore to a new position.
type ChoreMoveRequest struct {
	To int `json:"to"`
}

// ShareResponse carries the URL-safe share token.
type ShareResponse struct {
	Token string `json:"token"`
}

// ImportRequest replaces the document from a share token.
type ImportRequest struct {
	Token string `json:"token"`
}

// HistoryResponse wraps the revision log listing.
type HistoryResponse struct {
	Revisions []history.Revision `json:"revisions"`
}
