package shape

import (
	"github.com/google/uuid"

	"github.com/PrahoLama/vine-annotate/domain/geo"
)

// StartRow opens a transient row. A row already in progress is discarded.
func (s *AnnotationSet) StartRow() {
	s.ActiveRow = &Row{ID: uuid.New()}
}

// AddRowPoint appends a vertex to the row in progress.
func (s *AnnotationSet) AddRowPoint(p geo.Point) error {
	if s.ActiveRow == nil {
		return ErrNoActiveRow
	}
	s.ActiveRow.Points = append(s.ActiveRow.Points, p)
	return nil
}

// FinishRow commits the row in progress. A finished row has at least two
// points and receives the next sequential number; on ErrTooFewPoints the
// row stays in progress so the operator can keep digitizing.
func (s *AnnotationSet) FinishRow() (Row, error) {
	if s.ActiveRow == nil {
		return Row{}, ErrNoActiveRow
	}
	if len(s.ActiveRow.Points) < 2 {
		return Row{}, ErrTooFewPoints
	}
	row := *s.ActiveRow
	row.Number = len(s.Rows) + 1
	s.Rows = append(s.Rows, row)
	s.ActiveRow = nil
	return row, nil
}

// CancelRow discards the row in progress without touching committed rows.
func (s *AnnotationSet) CancelRow() { s.ActiveRow = nil }

// DeleteRow removes a committed row and contiguously renumbers the survivors
// starting at 1, preserving their relative order.
func (s *AnnotationSet) DeleteRow(id uuid.UUID) bool {
	for i := range s.Rows {
		if s.Rows[i].ID == id {
			s.Rows = append(s.Rows[:i], s.Rows[i+1:]...)
			for j := range s.Rows {
				s.Rows[j].Number = j + 1
			}
			return true
		}
	}
	return false
}
