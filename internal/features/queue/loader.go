package queue

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// DataSource is the external queue collaborator. It returns one page of
// approval records for the given query.
type DataSource interface {
	FetchQueue(ctx context.Context, q QueryState) (*Page, error)
}

// Loader executes queue queries against the data source. It calls the
// source exactly once per Load and never retries on its own. Each Load is
// stamped with a monotonically increasing token; a response belonging to a
// superseded call is discarded so overlapping loads cannot race to
// "publish last wins". On failure the previously loaded items stay
// visible.
type Loader struct {
	source DataSource
	log    *zap.Logger

	mu         sync.Mutex
	nextToken  int64
	inFlight   int
	items      []ApprovalItem
	pagination Pagination
	lastErr    error
	loadedOnce bool
}

func NewLoader(source DataSource, log *zap.Logger) *Loader {
	return &Loader{source: source, log: log}
}

// View is what the loader publishes to the presentation layer
type View struct {
	Items      []ApprovalItem `json:"items"`
	Pagination Pagination     `json:"pagination"`
	Loading    bool           `json:"loading"`
	Error      string         `json:"error,omitempty"`
}

// Load issues one fetch for the given query state. It returns the loaded
// page, a flag reporting whether the result was published (false when a
// newer Load superseded this one mid-flight), and the fetch error if any.
func (l *Loader) Load(ctx context.Context, q QueryState) (*Page, bool, error) {
	l.mu.Lock()
	l.nextToken++
	token := l.nextToken
	l.inFlight++
	l.mu.Unlock()

	page, err := l.source.FetchQueue(ctx, q)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.inFlight--

	// A newer call was issued while this one was outstanding: its result
	// is stale and must not be published. The transport call itself was
	// allowed to finish.
	if token < l.nextToken {
		l.log.Debug("discarding superseded queue load",
			zap.Int64("token", token), zap.Int64("latest", l.nextToken))
		return page, false, err
	}

	if err != nil {
		// Keep the previously loaded items visible so the viewer retains
		// context; only the error banner changes.
		l.lastErr = err
		l.log.Error("queue load failed", zap.Error(err))
		return nil, true, err
	}

	l.items = page.Items
	l.pagination = page.Pagination
	l.lastErr = nil
	l.loadedOnce = true
	return page, true, nil
}

// Loading reports whether a load is currently in flight
func (l *Loader) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inFlight > 0
}

// Snapshot returns the currently published view
func (l *Loader) Snapshot() View {
	l.mu.Lock()
	defer l.mu.Unlock()
	v := View{
		Items:      l.items,
		Pagination: l.pagination,
		Loading:    l.inFlight > 0,
	}
	if l.lastErr != nil {
		v.Error = l.lastErr.Error()
	}
	if v.Items == nil {
		v.Items = []ApprovalItem{}
	}
	return v
}

// Items returns the currently published page items
func (l *Loader) Items() []ApprovalItem {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.items
}
