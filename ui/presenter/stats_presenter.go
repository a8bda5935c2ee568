package presenter

import (
	"time"

	"github.com/PrahoLama/vine-annotate/domain/shape"
	"github.com/PrahoLama/vine-annotate/ui/model"
)

// SetSource exposes the annotation set for counter derivation.
type SetSource interface {
	Set() *shape.AnnotationSet
}

// StatsView displays annotation counters.
type StatsView interface {
	SetStats(c model.StatsCounts)
}

// StatsPresenter derives counters from the annotation set and pushes them to
// the view when they change.
type StatsPresenter struct {
	src   SetSource
	stats *model.StatsModel
	view  StatsView
	last  model.StatsCounts
	shown bool
}

// NewStatsPresenter returns a new StatsPresenter.
func NewStatsPresenter(src SetSource, stats *model.StatsModel, view StatsView) *StatsPresenter {
	return &StatsPresenter{src: src, stats: stats, view: view}
}

// Tick recomputes counters and updates the view on change.
func (p *StatsPresenter) Tick(now time.Time) {
	if p == nil || p.src == nil || p.stats == nil || p.view == nil {
		return
	}
	p.stats.Update(p.src.Set())
	c := p.stats.Values()
	if p.shown && c == p.last {
		return
	}
	p.last = c
	p.shown = true
	p.view.SetStats(c)
}
