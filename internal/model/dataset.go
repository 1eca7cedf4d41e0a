package model

import "time"

// SourceInfo identifies the file a dataset was built from.
type SourceInfo struct {
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modTime"`
	Hash    string    `json:"hash"`
}

// SameFile reports whether both signatures describe identical content.
func (s SourceInfo) SameFile(o SourceInfo) bool {
	return s.Path == o.Path && s.Size == o.Size && s.ModTime.Equal(o.ModTime) && s.Hash == o.Hash
}

// Dataset is the canonical table. It is never mutated after the cleaner returns it;
// filters and aggregations work on subsets produced by Subset.
type Dataset struct {
	Records     []Record
	Columns     []Field
	Missing     []Field
	MonthDomain []string
	Source      SourceInfo

	present map[Field]bool
}

// NewDataset builds a dataset. columns lists the canonical fields that exist, in schema order.
func NewDataset(records []Record, columns []Field, monthDomain []string) *Dataset {
	present := make(map[Field]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}
	var missing []Field
	for _, f := range Schema {
		if !present[f] {
			missing = append(missing, f)
		}
	}
	return &Dataset{
		Records:     records,
		Columns:     columns,
		Missing:     missing,
		MonthDomain: monthDomain,
		present:     present,
	}
}

// Len number of records; nil-safe
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Empty reports whether the dataset holds no records.
func (d *Dataset) Empty() bool { return d.Len() == 0 }

// Has reports whether the canonical column exists in this dataset.
func (d *Dataset) Has(f Field) bool {
	if d == nil {
		return false
	}
	return d.present[f]
}

// Subset returns a dataset holding the records for which keep returns true.
// Metadata is shared with the receiver; records are copied.
func (d *Dataset) Subset(keep func(*Record) bool) *Dataset {
	out := &Dataset{
		Columns:     d.Columns,
		Missing:     d.Missing,
		MonthDomain: d.MonthDomain,
		Source:      d.Source,
		present:     d.present,
		Records:     make([]Record, 0, len(d.Records)),
	}
	for i := range d.Records {
		if keep(&d.Records[i]) {
			out.Records = append(out.Records, d.Records[i])
		}
	}
	return out
}

// Latest returns the most recent DataCriacao.
func (d *Dataset) Latest() (time.Time, bool) {
	var latest time.Time
	if d.Len() == 0 {
		return latest, false
	}
	for i := range d.Records {
		if t := d.Records[i].DataCriacao; t.After(latest) {
			latest = t
		}
	}
	return latest, true
}
