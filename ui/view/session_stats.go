package view

import (
	"fmt"
	"time"

	"github.com/PrahoLama/vine-annotate/ui/model"

	tk "modernc.org/tk9.0"
)

// SessionStats displays annotation counters and editing durations.
type SessionStats interface {
	SetStats(c model.StatsCounts)
	SetSession(session, total time.Duration)
}

type sessionStats struct {
	countsLbl  *tk.LabelWidget
	sessionLbl *tk.LabelWidget
}

// NewSessionStats creates the counter and duration labels at (row, startCol)
// and (row, startCol+1).
func NewSessionStats(row, startCol int) SessionStats {
	s := &sessionStats{countsLbl: tk.Label(tk.Width(34)), sessionLbl: tk.Label(tk.Width(26))}
	tk.Grid(s.countsLbl, tk.Row(row), tk.Column(startCol), tk.Sticky("w"), tk.Padx("0.2m"))
	tk.Grid(s.sessionLbl, tk.Row(row), tk.Column(startCol+1), tk.Sticky("w"), tk.Padx("0.2m"))
	s.countsLbl.Configure(tk.Txt("Boxes: 0  Rows: 0  Edited: 0"))
	s.sessionLbl.Configure(tk.Txt("Session: 00:00  Total: 00:00"))
	return s
}

// SetStats updates the counter display.
func (s *sessionStats) SetStats(c model.StatsCounts) {
	if s == nil || s.countsLbl == nil {
		return
	}
	edited := c.Manual + c.Modified
	s.countsLbl.Configure(tk.Txt(fmt.Sprintf("Boxes: %d  Rows: %d  Edited: %d", c.Detections, c.Rows, edited)))
}

// SetSession updates the duration display.
func (s *sessionStats) SetSession(session, total time.Duration) {
	if s == nil || s.sessionLbl == nil {
		return
	}
	s.sessionLbl.Configure(tk.Txt(fmt.Sprintf("Session: %s  Total: %s", clock(session), clock(total))))
}

func clock(d time.Duration) string {
	seconds := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
