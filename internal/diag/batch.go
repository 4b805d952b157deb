package diag

import "github.com/google/uuid"

// Batch collects every diagnostic produced by one compilation run, tagged
// with a correlation ID — grounded on the teacher pack's use of
// google/uuid to tag a request/session with an identifier that outlives
// any single struct (dekarrin-tunaq's server.go threads a uuid through a
// request's whole lifetime the same way). Here, the ID lets a caller
// correlate one pipeline run's diagnostics across a log stream even when
// several runs' output interleaves (e.g. a watch-mode CLI recompiling on
// every save).
type Batch struct {
	ID          uuid.UUID
	Diagnostics []Diagnostic
}

// NewBatch starts an empty batch with a fresh correlation ID.
func NewBatch() *Batch {
	return &Batch{ID: uuid.New()}
}

// Add appends one diagnostic to the batch.
func (b *Batch) Add(d Diagnostic) {
	b.Diagnostics = append(b.Diagnostics, d)
}

// HasErrors reports whether the batch contains any SeverityError entry.
func (b *Batch) HasErrors() bool {
	for _, d := range b.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// FormatAll renders every diagnostic in the batch, in order, through f.
func (b *Batch) FormatAll(f *Formatter) {
	for _, d := range b.Diagnostics {
		f.Format(d)
	}
}
