package snapshot

// RawRecord is one decoded row of a snapshot, keyed by header column.
type RawRecord struct {
	// Line is the 1-based line in the tabular entry where the row starts.
	Line int

	header []string
	index  map[string]int
	values []string
}

// NewRawRecord builds a record from a header and the row's values.
// Values beyond the header are dropped; missing trailing values read as absent.
func NewRawRecord(line int, header, values []string) RawRecord {
	return newRawRecord(line, header, indexHeader(header), values)
}

func newRawRecord(line int, header []string, index map[string]int, values []string) RawRecord {
	return RawRecord{Line: line, header: header, index: index, values: values}
}

// indexHeader maps column names to positions. A repeated name resolves to its last position.
func indexHeader(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	return index
}

// Lookup returns the value of a column and whether the row carries it.
func (r RawRecord) Lookup(column string) (string, bool) {
	i, ok := r.index[column]
	if !ok || i >= len(r.values) {
		return "", false
	}
	return r.values[i], true
}

// Get returns the value of a column, or "" when absent.
func (r RawRecord) Get(column string) string {
	v, _ := r.Lookup(column)
	return v
}

// Columns returns the header in source order.
func (r RawRecord) Columns() []string {
	return r.header
}

// Map returns the row as a column/value map. Used for diagnostics.
func (r RawRecord) Map() map[string]string {
	m := make(map[string]string, len(r.header))
	for _, name := range r.header {
		if v, ok := r.Lookup(name); ok {
			m[name] = v
		}
	}
	return m
}
