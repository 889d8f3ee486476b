package shared

// Filter carries common listing options for repository queries
type Filter struct {
	Search   string
	OrderBy  string
	OrderDir string
	Filters  map[string]any
}

// NewFilter creates an empty filter
func NewFilter() Filter {
	return Filter{Filters: make(map[string]any)}
}

// WithSearch sets the search term
func (f Filter) WithSearch(search string) Filter {
	f.Search = search
	return f
}

// WithFilter adds a key/value constraint
func (f Filter) WithFilter(key string, value any) Filter {
	if f.Filters == nil {
		f.Filters = make(map[string]any)
	}
	f.Filters[key] = value
	return f
}
