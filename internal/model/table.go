package model

// ResultTable is the accumulation of success records keyed by ZIP code.
// Columns are the ordered union of every record's labels with ZIP Code first.
// Upserting an existing ZIP replaces its row in place.
type ResultTable struct {
	columns []string
	colSet  map[string]struct{}
	rows    []map[string]string
	index   map[string]int
}

// NewResultTable creates an empty table.
func NewResultTable() *ResultTable {
	t := &ResultTable{
		colSet: make(map[string]struct{}),
		index:  make(map[string]int),
	}
	t.addColumn(ZIPCodeColumn)
	return t
}

func (t *ResultTable) addColumn(col string) {
	if _, ok := t.colSet[col]; ok {
		return
	}
	t.colSet[col] = struct{}{}
	t.columns = append(t.columns, col)
}

// AddColumns registers columns without adding rows, preserving a persisted
// header order.
func (t *ResultTable) AddColumns(cols ...string) {
	for _, c := range cols {
		t.addColumn(c)
	}
}

// Upsert stores fields as the row for zip. Last write wins.
func (t *ResultTable) Upsert(zip string, fields []Field) {
	row := make(map[string]string, len(fields)+1)
	for _, f := range fields {
		t.addColumn(f.Label)
		row[f.Label] = f.Value
	}
	row[ZIPCodeColumn] = zip

	if i, ok := t.index[zip]; ok {
		t.rows[i] = row
		return
	}
	t.index[zip] = len(t.rows)
	t.rows = append(t.rows, row)
}

// UpsertRecord stores a success record. Error records are ignored and
// reported as false.
func (t *ResultTable) UpsertRecord(r Record) bool {
	if !r.OK() {
		return false
	}
	t.Upsert(r.ZIP, r.Fields)
	return true
}

// Has reports whether the table holds a row for zip.
func (t *ResultTable) Has(zip string) bool {
	_, ok := t.index[zip]
	return ok
}

// Get returns the row for zip as ordered fields, skipping absent columns.
func (t *ResultTable) Get(zip string) ([]Field, bool) {
	i, ok := t.index[zip]
	if !ok {
		return nil, false
	}
	row := t.rows[i]
	fields := make([]Field, 0, len(row))
	for _, c := range t.columns {
		if v, ok := row[c]; ok {
			fields = append(fields, Field{Label: c, Value: v})
		}
	}
	return fields, true
}

// Columns returns the table header.
func (t *ResultTable) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Rows returns every row aligned with Columns. Missing cells are empty.
func (t *ResultTable) Rows() [][]string {
	out := make([][]string, 0, len(t.rows))
	for _, row := range t.rows {
		cells := make([]string, len(t.columns))
		for j, c := range t.columns {
			cells[j] = row[c]
		}
		out = append(out, cells)
	}
	return out
}

// ZIPs returns the table keys in row order.
func (t *ResultTable) ZIPs() []string {
	out := make([]string, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, row[ZIPCodeColumn])
	}
	return out
}

// Len returns the number of rows.
func (t *ResultTable) Len() int {
	return len(t.rows)
}
