package state

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/five82/gamedex/internal/catalog"
)

// ErrStaleLoad is returned by FinishLoad when a newer load has already been applied.
var ErrStaleLoad = errors.New("stale load discarded")

// Token identifies one load request. Tokens increase monotonically per engine.
type Token uint64

// Engine owns the authoritative record set and the view configuration, and
// derives the displayed sequence from them on demand.
//
// Engine is not safe for concurrent mutation. Hosts that fetch in the
// background call Fetch or Submit off the main loop and hand the result back
// to FinishLoad on the loop that owns the engine.
type Engine struct {
	coll   catalog.Collection
	locale language.Tag

	records []catalog.Record
	loaded  bool
	lastErr error

	filter  string
	sortKey catalog.SortKey
	sortDir catalog.SortDir

	issued  Token
	applied Token
}

// Option configures an Engine.
type Option func(*Engine)

// WithLocale sets the collation locale for text columns.
func WithLocale(tag language.Tag) Option {
	return func(e *Engine) {
		e.locale = tag
	}
}

// New builds an engine over coll with the default view: no filter, id ascending.
func New(coll catalog.Collection, opts ...Option) *Engine {
	e := &Engine{
		coll:    coll,
		locale:  language.English,
		sortKey: catalog.SortByID,
		sortDir: catalog.Ascending,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load fetches the collection and replaces the authoritative set on success.
// On failure the previous set is kept and a *catalog.LoadError is returned.
func (e *Engine) Load(ctx context.Context) error {
	token := e.BeginLoad()
	records, err := e.Fetch(ctx)
	return e.FinishLoad(token, records, err)
}

// BeginLoad issues a token for a load that is about to start.
func (e *Engine) BeginLoad() Token {
	e.issued++
	return e.issued
}

// Fetch lists the collection without touching engine state.
func (e *Engine) Fetch(ctx context.Context) ([]catalog.Record, error) {
	if e.coll == nil {
		return nil, fmt.Errorf("collection is not configured")
	}
	return e.coll.List(ctx)
}

// FinishLoad applies the outcome of the load identified by token. Results
// for tokens older than the newest applied load are dropped with ErrStaleLoad.
func (e *Engine) FinishLoad(token Token, records []catalog.Record, err error) error {
	if token <= e.applied {
		return ErrStaleLoad
	}
	e.applied = token

	if err != nil {
		var loadErr *catalog.LoadError
		if !errors.As(err, &loadErr) {
			loadErr = &catalog.LoadError{Err: err}
		}
		e.lastErr = loadErr
		return loadErr
	}

	e.records = cloneRecords(records)
	e.loaded = true
	e.lastErr = nil
	return nil
}

// Validate trims c and fails with *catalog.ValidationError when any field is blank.
func (e *Engine) Validate(c catalog.Candidate) (catalog.Candidate, error) {
	return catalog.Validate(c)
}

// Submit validates and inserts c without reloading. It does not touch engine
// state, so it may run off the owning loop. Insert failures are reported as
// *catalog.InsertError.
func (e *Engine) Submit(ctx context.Context, c catalog.Candidate) error {
	valid, err := e.Validate(c)
	if err != nil {
		return err
	}
	if e.coll == nil {
		return &catalog.InsertError{Err: fmt.Errorf("collection is not configured")}
	}
	if err := e.coll.Insert(ctx, valid); err != nil {
		return &catalog.InsertError{Err: err}
	}
	return nil
}

// Add inserts c and then reloads the whole collection so the store-assigned
// ID and ordering are reflected. The set is never appended to locally.
func (e *Engine) Add(ctx context.Context, c catalog.Candidate) error {
	if err := e.Submit(ctx, c); err != nil {
		return err
	}
	return e.Load(ctx)
}

// SetFilter replaces the filter text.
func (e *Engine) SetFilter(text string) {
	e.filter = strings.TrimSpace(text)
}

// SetSort flips the direction when key is already active, otherwise switches
// to key ascending. Unknown keys are ignored.
func (e *Engine) SetSort(key catalog.SortKey) {
	if !key.Valid() {
		return
	}
	if key == e.sortKey {
		e.sortDir = e.sortDir.Flip()
		return
	}
	e.sortKey = key
	e.sortDir = catalog.Ascending
}

// Derive returns the filtered then stably sorted view of the set. The
// returned slice is owned by the caller.
func (e *Engine) Derive() []catalog.Record {
	fold := cases.Fold()
	query := fold.String(e.filter)

	rows := make([]row, 0, len(e.records))
	for _, rec := range e.records {
		if query != "" && !matches(fold, rec, query) {
			continue
		}
		r := row{rec: rec}
		if e.sortKey != catalog.SortByID {
			r.key = fold.String(rec.Text(e.sortKey))
		}
		rows = append(rows, r)
	}

	compare := e.comparator()
	sort.SliceStable(rows, func(i, j int) bool {
		return compare(rows[i], rows[j]) < 0
	})

	out := make([]catalog.Record, len(rows))
	for i, r := range rows {
		out[i] = r.rec
	}
	return out
}

type row struct {
	rec catalog.Record
	key string
}

func (e *Engine) comparator() func(a, b row) int {
	sign := 1
	if e.sortDir == catalog.Descending {
		sign = -1
	}
	if e.sortKey == catalog.SortByID {
		return func(a, b row) int {
			switch {
			case a.rec.ID < b.rec.ID:
				return -sign
			case a.rec.ID > b.rec.ID:
				return sign
			default:
				return 0
			}
		}
	}
	collator := collate.New(e.locale, collate.IgnoreCase)
	return func(a, b row) int {
		return sign * collator.CompareString(a.key, b.key)
	}
}

func matches(fold cases.Caser, rec catalog.Record, query string) bool {
	for _, field := range []string{rec.Name, rec.Platform, rec.Category, rec.NotableFeatures} {
		if strings.Contains(fold.String(field), query) {
			return true
		}
	}
	return false
}

// Records returns a copy of the authoritative set.
func (e *Engine) Records() []catalog.Record {
	return cloneRecords(e.records)
}

// Len is the size of the authoritative set.
func (e *Engine) Len() int {
	return len(e.records)
}

// Filter returns the active filter text.
func (e *Engine) Filter() string {
	return e.filter
}

// Sort returns the active sort key and direction.
func (e *Engine) Sort() (catalog.SortKey, catalog.SortDir) {
	return e.sortKey, e.sortDir
}

// Loaded reports whether any load has succeeded.
func (e *Engine) Loaded() bool {
	return e.loaded
}

// Loading reports whether a load has been issued but not yet applied.
func (e *Engine) Loading() bool {
	return e.issued > e.applied
}

// LastError is the *catalog.LoadError of the latest applied load, or nil.
func (e *Engine) LastError() error {
	return e.lastErr
}

func cloneRecords(records []catalog.Record) []catalog.Record {
	if len(records) == 0 {
		return nil
	}
	dup := make([]catalog.Record, len(records))
	copy(dup, records)
	return dup
}
