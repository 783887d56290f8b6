package model

// Catalog is the immutable set of expected export files
type Catalog struct {
	Entries []FileSchema
	index   map[string]int
}

// NewCatalog builds a catalog preserving entry order
func NewCatalog(entries []FileSchema) *Catalog {
	c := &Catalog{
		Entries: entries,
		index:   make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		c.index[e.Path] = i
	}
	return c
}

// Lookup returns the schema entry for a relative path
func (c *Catalog) Lookup(path string) (FileSchema, bool) {
	i, ok := c.index[path]
	if !ok {
		return FileSchema{}, false
	}
	return c.Entries[i], true
}

// Contains reports whether the catalog expects the given relative path
func (c *Catalog) Contains(path string) bool {
	_, ok := c.index[path]
	return ok
}

// Len returns the number of expected files
func (c *Catalog) Len() int {
	return len(c.Entries)
}

// FileSchema describes one expected file
type FileSchema struct {
	Path    string    // Forward-slash path relative to the scan directory
	Headers []string  // Expected header row, order significant
	Rows    RowPolicy // What to check about the data rows
}

// ColumnSchema is one rule token per expected header column
type ColumnSchema []string

// CountRule constrains the number of data rows; nil fields are unconstrained
type CountRule struct {
	Exact *int `json:"exact,omitempty" yaml:"exact,omitempty"`
	Min   *int `json:"min,omitempty" yaml:"min,omitempty"`
}

// IsZero reports whether the rule places no constraint on the row count
func (r CountRule) IsZero() bool {
	return r.Exact == nil && r.Min == nil
}

// RowPolicy is either RowCountOnly or RowCountAndCells
type RowPolicy interface {
	Count() CountRule
	isRowPolicy()
}

// RowCountOnly checks the row count and skips cell checks entirely
type RowCountOnly struct {
	Rule CountRule
}

// Count returns the row-count rule
func (p RowCountOnly) Count() CountRule { return p.Rule }

func (RowCountOnly) isRowPolicy() {}

// RowCountAndCells checks the row count and every declared row positionally
type RowCountAndCells struct {
	Rule CountRule
	Rows []ColumnSchema
}

// Count returns the row-count rule
func (p RowCountAndCells) Count() CountRule { return p.Rule }

func (RowCountAndCells) isRowPolicy() {}

// IntPtr returns a pointer to n
func IntPtr(n int) *int {
	return &n
}
