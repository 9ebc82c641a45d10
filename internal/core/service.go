package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session and edit errors.
var (
	ErrImportNotFound = errors.New("import not found")
	ErrUnknownField   = errors.New("unknown field")
	ErrRowNotFound    = errors.New("row not found")
)

// Defaults for Options fields left at zero.
const (
	DefaultImportTimeout = 2 * time.Minute
	DefaultSessionTTL    = time.Hour
	DefaultMaxSessions   = 100
)

// Options configures a Service. Zero values select defaults.
type Options struct {
	MaxFileSize   int64
	MaxConcurrent int
	MaxWait       time.Duration
	Timeout       time.Duration // Maximum duration for reading and validating one file
	SessionTTL    time.Duration
	MaxSessions   int
	Region        string
	Now           func() time.Time
}

// Service runs imports and keeps the resulting tables in memory so they can
// be re-rendered, edited and exported.
type Service struct {
	importer    *Importer
	processor   *Processor
	limiter     *ImportLimiter
	timeout     time.Duration
	ttl         time.Duration
	maxSessions int
	now         func() time.Time

	mu      sync.RWMutex
	imports map[string]*Import
}

// NewService creates a Service.
func NewService(opts Options) *Service {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultImportTimeout
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = DefaultSessionTTL
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = DefaultMaxSessions
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	processor := NewProcessor(opts.Region)
	processor.Now = opts.Now

	return &Service{
		importer:    NewImporter(opts.MaxFileSize),
		processor:   processor,
		limiter:     NewImportLimiter(opts.MaxConcurrent, opts.MaxWait),
		timeout:     opts.Timeout,
		ttl:         opts.SessionTTL,
		maxSessions: opts.MaxSessions,
		now:         opts.Now,
		imports:     make(map[string]*Import),
	}
}

// Processor returns the row processor used for imports and edits.
func (s *Service) Processor() *Processor {
	return s.processor
}

// Import reads a roster file, validates every row and stores the result as a
// new session. Structural failures (extension, parse, missing columns) are
// returned as errors and nothing is stored.
//
// Returns ErrTooManyImports if no import slot frees up in time.
func (s *Service) Import(ctx context.Context, fileName string, r io.Reader) (imp *Import, err error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, fmt.Errorf("acquire import slot: %w", err)
	}
	defer s.limiter.Release()

	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("panic in import", "file", fileName, "panic", rec)
			imp, err = nil, fmt.Errorf("import %s: internal error: %v", fileName, rec)
		}
	}()

	start := time.Now()

	heading, rows, err := s.importer.Import(fileName, &ctxReader{ctx: ctx, r: r})
	if err != nil {
		return nil, err
	}

	now := s.now()
	imp = &Import{
		ID:         uuid.NewString(),
		FileName:   fileName,
		Heading:    heading,
		Rows:       rows,
		Normalized: s.processor.Process(rows),
		ClientIP:   GetIPAddressFromContext(ctx),
		UserAgent:  GetUserAgentFromContext(ctx),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	s.mu.Lock()
	s.imports[imp.ID] = imp
	evicted := s.evictLocked()
	s.mu.Unlock()

	summary := imp.Summary()
	slog.Info("import completed",
		"import_id", imp.ID,
		"file", fileName,
		"rows", summary.TotalRows,
		"flagged_rows", summary.FlaggedRows,
		"duplicate_rows", summary.DuplicateRows,
		"evicted", evicted,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return imp, nil
}

// Get returns a stored import. Expired sessions are reported as not found.
func (s *Service) Get(id string) (*Import, error) {
	s.mu.RLock()
	imp, ok := s.imports[id]
	s.mu.RUnlock()

	if !ok || s.expired(imp, s.now()) {
		return nil, fmt.Errorf("%w: %s", ErrImportNotFound, id)
	}
	return imp, nil
}

// Delete removes a stored import.
func (s *Service) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.imports[id]; !ok {
		return fmt.Errorf("%w: %s", ErrImportNotFound, id)
	}
	delete(s.imports, id)
	return nil
}

// UpdateCell replaces one raw value of a stored import and re-validates the
// whole table, since an edit can create or clear duplicates in other rows.
// rowID is the 1-based row ID shown in the table. The stored Import is
// replaced, never mutated.
func (s *Service) UpdateCell(ctx context.Context, id string, rowID int, field Field, value string) (*Import, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !field.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownField, int(field))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	cur, ok := s.imports[id]
	if !ok || s.expired(cur, now) {
		return nil, fmt.Errorf("%w: %s", ErrImportNotFound, id)
	}
	if rowID < 1 || rowID > len(cur.Rows) {
		return nil, fmt.Errorf("%w: %d", ErrRowNotFound, rowID)
	}

	rows := make([]RawRow, len(cur.Rows))
	copy(rows, cur.Rows)
	rows[rowID-1][field] = value

	next := *cur
	next.Rows = rows
	next.Normalized = s.processor.Process(rows)
	next.UpdatedAt = now
	s.imports[id] = &next

	slog.Debug("import cell updated",
		"import_id", id,
		"row", rowID,
		"field", field.Key(),
	)

	return &next, nil
}

// ImportCount returns the number of stored sessions, expired ones included
// until the next sweep.
func (s *Service) ImportCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.imports)
}

// Sweep removes sessions idle for longer than the session TTL and returns
// how many were removed.
func (s *Service) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, imp := range s.imports {
		if s.expired(imp, now) {
			delete(s.imports, id)
			removed++
		}
	}
	return removed
}

// LimiterStatus returns the import limiter state.
func (s *Service) LimiterStatus() ImportLimiterStatus {
	return s.limiter.Status()
}

// WaitForImports blocks until no import is running or ctx ends.
func (s *Service) WaitForImports(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

func (s *Service) expired(imp *Import, now time.Time) bool {
	return now.Sub(imp.UpdatedAt) > s.ttl
}

// evictLocked drops the least recently updated sessions beyond maxSessions.
// s.mu must be held for writing.
func (s *Service) evictLocked() int {
	excess := len(s.imports) - s.maxSessions
	if excess <= 0 {
		return 0
	}

	all := make([]*Import, 0, len(s.imports))
	for _, imp := range s.imports {
		all = append(all, imp)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].UpdatedAt.Before(all[j].UpdatedAt)
	})

	for _, imp := range all[:excess] {
		delete(s.imports, imp.ID)
	}
	return excess
}

// ctxReader stops reading once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *ctxReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}
