// Package schema tracks the shape of the output table: which leaf-path
// columns exist and the order they were first discovered in.
package schema

// Registry collects column names in first-appearance order across all
// records. Adding a name that is already present is a no-op, so the
// resulting order reflects the first record that produced each path,
// never the last.
type Registry struct {
	order []string
	seen  map[string]int
}

// NewRegistry creates an empty column registry.
func NewRegistry() *Registry {
	return &Registry{
		order: make([]string, 0),
		seen:  make(map[string]int),
	}
}

// Add records a column name, keeping its first-appearance position if it
// is already known. It reports whether the name was new.
func (r *Registry) Add(name string) bool {
	if _, ok := r.seen[name]; ok {
		return false
	}
	r.seen[name] = len(r.order)
	r.order = append(r.order, name)
	return true
}

// Has reports whether a column name has been registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.seen[name]
	return ok
}

// Index returns the first-appearance position of a column name, or -1
// when the name was never registered.
func (r *Registry) Index(name string) int {
	if i, ok := r.seen[name]; ok {
		return i
	}
	return -1
}

// Len returns the number of distinct columns registered.
func (r *Registry) Len() int {
	return len(r.order)
}

// Columns returns the registered names in first-appearance order. The
// slice is a copy, so callers can hold it while the registry grows.
func (r *Registry) Columns() []string {
	columns := make([]string, len(r.order))
	copy(columns, r.order)
	return columns
}
