// Package editor owns the live checklist document. It is the single
// writer: every mutation entry point locks, applies fully, propagates
// the master template to follower pages, and re-persists both the raw
// state and the compact share form. Id counters live on the service,
// never in package globals, so independent instances do not collide.
package editor

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/starford/dagaz/internal/apperr"
	"github.com/starford/dagaz/internal/checksum"
	"github.com/starford/dagaz/internal/codec"
	"github.com/starford/dagaz/internal/history"
	"github.com/starford/dagaz/internal/migrate"
	"github.com/starford/dagaz/internal/models"
	"github.com/starford/dagaz/internal/store"
)

// ChangeCallback is invoked after a successful commit or reload.
// kind is an event name like "document.updated"; cs is the checksum
// of the persisted state.
type ChangeCallback func(kind, cs string)

// Service is the editor controller.
type Service struct {
	mu         sync.Mutex
	doc        *models.Document
	pageSeq    int
	sectionSeq int

	slot      store.Slot
	revisions history.Log
	logger    *slog.Logger
	now       func() time.Time
	onChange  ChangeCallback

	lastChecksum string
	lastToken    string
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source (used in tests).
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithOnChange registers a callback fired after every commit/reload.
func WithOnChange(cb ChangeCallback) Option {
	return func(s *Service) { s.onChange = cb }
}

// New creates an editor backed by the given slot and revision log.
// revisions may be nil to disable history recording.
func New(slot store.Slot, revisions history.Log, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		slot:      slot,
		revisions: revisions,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load initializes the live document: stored state if present and
// parseable, hardcoded defaults otherwise. Malformed state is logged
// and treated like absent state.
func (s *Service) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.slot.Load()
	if err == nil {
		doc, nerr := migrate.Normalize(data, s.now())
		if nerr == nil {
			s.adopt(doc)
			s.lastChecksum = checksum.Sum(data)
			s.refreshToken()
			return nil
		}
		s.logger.Warn("stored state unusable, falling back to defaults",
			slog.String("error", nerr.Error()))
	} else if !errors.Is(err, apperr.ErrNoState) {
		return fmt.Errorf("editor: load state: %w", err)
	}

	s.adopt(models.NewDefaultDocument(s.now()))
	return s.commit("document.updated")
}

// Import replaces the live document with one decoded from a share
// token and persists it, so a shared configuration survives locally
// like the original it was copied from.
func (s *Service) Import(token string) error {
	doc, err := codec.Decode(token, s.now())
	if err != nil {
		return err
	}
	migrate.Repair(doc)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.adopt(doc)
	return s.commit("document.imported")
}

// Reload re-reads the state file after an out-of-band change. Writes
// made by this process are recognized by checksum and skipped; no
// re-save happens, so reloads never feed back into the watcher.
func (s *Service) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.slot.Load()
	if err != nil {
		return err
	}
	cs := checksum.Sum(data)
	if cs == s.lastChecksum {
		return nil
	}
	doc, err := migrate.Normalize(data, s.now())
	if err != nil {
		s.logger.Warn("external state change unusable, keeping live document",
			slog.String("error", err.Error()))
		return err
	}
	s.adopt(doc)
	s.lastChecksum = cs
	s.refreshToken()
	s.logger.Info("document reloaded from external change")
	if s.onChange != nil {
		s.onChange("document.reloaded", cs)
	}
	return nil
}

// Document returns a deep copy of the live document for reading.
func (s *Service) Document() *models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Checksum returns the checksum of the last persisted state.
func (s *Service) Checksum() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastChecksum
}

// ShareToken returns the compact token describing the live document.
func (s *Service) ShareToken() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastToken != "" {
		return s.lastToken, nil
	}
	return codec.Encode(s.doc)
}

// adopt installs doc as the live document and reseeds id counters
// above the highest suffixes it carries.
func (s *Service) adopt(doc *models.Document) {
	s.doc = doc
	s.pageSeq, s.sectionSeq = migrate.Seeds(doc)
}

func (s *Service) nextPageID() string {
	id := fmt.Sprintf("page-%d", s.pageSeq)
	s.pageSeq++
	return id
}

func (s *Service) nextSectionID(t models.SectionType) string {
	id := fmt.Sprintf("%s-%d", t, s.sectionSeq)
	s.sectionSeq++
	return id
}

// syncPages propagates the master template to every follower page:
// title, sizing and deep-cloned sections. Months stay per-page.
func (s *Service) syncPages() {
	master := s.doc.Master()
	if master == nil {
		return
	}
	for i := 1; i < len(s.doc.Pages); i++ {
		p := &s.doc.Pages[i]
		p.Title = master.Title
		p.BaseSize = master.BaseSize
		p.ScaleRatio = master.ScaleRatio
		p.Sections = models.CloneSections(master.Sections)
	}
}

// commit is the save pipeline run at the end of every mutation:
// master propagation, raw whole-value save, then the compact share
// encoding. Encoding failures are logged and never block the raw
// save; the token just goes stale until the next successful commit.
// Callers must hold s.mu.
func (s *Service) commit(kind string) error {
	s.syncPages()

	data, err := json.Marshal(s.doc)
	if err != nil {
		return fmt.Errorf("editor: marshal state: %w", err)
	}
	if err := s.slot.Save(data); err != nil {
		return fmt.Errorf("editor: save state: %w", err)
	}

	cs := checksum.Sum(data)
	changed := cs != s.lastChecksum
	s.lastChecksum = cs

	token, err := codec.Encode(s.doc)
	if err != nil {
		s.logger.Warn("share token encode failed", slog.String("error", err.Error()))
	} else {
		s.lastToken = token
		if changed && s.revisions != nil {
			if err := s.revisions.Append(token, cs, len(data)); err != nil {
				s.logger.Warn("revision append failed", slog.String("error", err.Error()))
			}
		}
	}

	if changed && s.onChange != nil {
		s.onChange(kind, cs)
	}
	return nil
}

// refreshToken recomputes the share token without saving. Callers
// must hold s.mu.
func (s *Service) refreshToken() {
	token, err := codec.Encode(s.doc)
	if err != nil {
		s.logger.Warn("share token encode failed", slog.String("error", err.Error()))
		return
	}
	s.lastToken = token
}
