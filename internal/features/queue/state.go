package queue

// Default paging
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// QueryState holds the query the loader will execute next. Any change to
// filter or sort identity resets paging, since "page N" is only meaningful
// relative to a fixed filter/sort.
type QueryState struct {
	Filters ApprovalFilters `json:"filters"`
	Sort    SortConfig      `json:"sort"`
	Page    int             `json:"page"`
	Size    int             `json:"size"`
}

// NewQueryState returns the default queue view: oldest submissions first,
// so the longest-waiting quotations surface on page 0.
func NewQueryState() QueryState {
	return QueryState{
		Sort: SortConfig{Field: "submission_date", Direction: SortAsc},
		Size: DefaultPageSize,
	}
}

// SetFilters merges the patch into the current filters and resets the page
func (q *QueryState) SetFilters(p FilterPatch) {
	q.Filters.Apply(p)
	q.Page = 0
}

// ReplaceFilters swaps the whole filter set, used when a saved preset is
// applied, and resets the page
func (q *QueryState) ReplaceFilters(f ApprovalFilters) {
	q.Filters = f
	q.Page = 0
}

// SetSort replaces the sort and resets the page
func (q *QueryState) SetSort(s SortConfig) {
	if s.Direction != SortDesc {
		s.Direction = SortAsc
	}
	q.Sort = s
	q.Page = 0
}

// SetPage moves to an absolute page. Negative pages clamp to zero; paging
// past the end is a data-source concern (it returns an empty page).
func (q *QueryState) SetPage(n int) {
	if n < 0 {
		n = 0
	}
	q.Page = n
}

// SetPageSize changes the page size and resets the page, since page N at
// size S is not page N at size S'.
func (q *QueryState) SetPageSize(n int) {
	if n <= 0 {
		n = DefaultPageSize
	}
	if n > MaxPageSize {
		n = MaxPageSize
	}
	q.Size = n
	q.Page = 0
}
