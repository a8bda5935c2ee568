package model

import (
	"github.com/PrahoLama/vine-annotate/domain/shape"
)

// StatsCounts is a snapshot of annotation counters shown in the status bar.
type StatsCounts struct {
	Detections int
	Rows       int
	Manual     int
	Modified   int
}

// StatsModel derives display counters from the annotation set. It is
// decoupled from the UI; presenters should call Update on tick and push
// Values() to views. The zero value is ready to use.
type StatsModel struct {
	counts StatsCounts
}

func NewStatsModel() *StatsModel { return &StatsModel{} }

// Update recomputes counters from the current annotation set.
func (m *StatsModel) Update(set *shape.AnnotationSet) {
	if m == nil {
		return
	}
	var c StatsCounts
	if set != nil {
		c.Detections = len(set.Detections)
		c.Rows = len(set.Rows)
		for _, d := range set.Detections {
			if d.Manual {
				c.Manual++
			}
			if d.Modified {
				c.Modified++
			}
		}
	}
	m.counts = c
}

// Values returns the last computed counters.
func (m *StatsModel) Values() StatsCounts {
	if m == nil {
		return StatsCounts{}
	}
	return m.counts
}
