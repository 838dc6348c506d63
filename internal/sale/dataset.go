package sale

// Dataset is an ordered, read-only collection of records sharing one header.
// Derived datasets are built with Filter; the source is never mutated.
type Dataset struct {
	Header  []string
	Records []Record

	columns map[Column]struct{}
}

func NewDataset(header []string, records []Record) *Dataset {
	cols := make(map[Column]struct{}, len(header))
	for _, h := range header {
		cols[Column(h)] = struct{}{}
	}

	return &Dataset{
		Header:  header,
		Records: records,
		columns: cols,
	}
}

// Has reports whether the source file carried the column.
func (d *Dataset) Has(c Column) bool {
	if d == nil {
		return false
	}

	_, ok := d.columns[c]

	return ok
}

func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}

	return len(d.Records)
}

// Filter returns a new Dataset with the records for which keep returns true.
func (d *Dataset) Filter(keep func(Record) bool) *Dataset {
	out := make([]Record, 0, len(d.Records))

	for _, r := range d.Records {
		if keep(r) {
			out = append(out, r)
		}
	}

	return &Dataset{
		Header:  d.Header,
		Records: out,
		columns: d.columns,
	}
}

// DateBounds returns the earliest and latest valid timestamp.
// It returns ErrNoDateData when the column is missing or every cell is null.
func (d *Dataset) DateBounds() (Bounds, error) {
	var (
		b     Bounds
		found bool
	)

	if !d.Has(ColStartedAt) {
		return b, ErrNoDateData
	}

	for _, r := range d.Records {
		if !r.StartedAt.Valid {
			continue
		}

		t := r.StartedAt.Time
		if !found || t.Before(b.Min) {
			b.Min = t
		}

		if !found || t.After(b.Max) {
			b.Max = t
		}

		found = true
	}

	if !found {
		return Bounds{}, ErrNoDateData
	}

	return b, nil
}
