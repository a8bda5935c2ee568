package presenter

import (
	"time"

	"github.com/PrahoLama/vine-annotate/domain/editor"
)

// StateSource provides the editor state the presenter requires.
type StateSource interface {
	Current() editor.State
}

// StateView sets the state label in the view.
type StateView interface{ SetStateLabel(string) }

// FSMPresenter receives editor transitions and updates the view on ticks.
type FSMPresenter struct {
	eng     StateSource
	view    StateView
	latest  editor.State // last reflected state
	pending []editor.State
}

func NewFSMPresenter(eng StateSource, view StateView) *FSMPresenter {
	return &FSMPresenter{eng: eng, view: view}
}

// OnState queues a transitioned state from the editor listener.
//
// The latest queued state will be reflected on the next Tick.
func (p *FSMPresenter) OnState(s editor.State) {
	if p == nil {
		return
	}
	p.pending = append(p.pending, s)
}

// Tick processes queued states and updates the view with the most recent state.
// It clears the pending queue after processing.
func (p *FSMPresenter) Tick(now time.Time) {
	if p == nil || p.eng == nil || p.view == nil {
		return
	}
	if len(p.pending) > 0 {
		last := p.pending[len(p.pending)-1]
		p.pending = p.pending[:0]
		if last != p.latest {
			p.latest = last
			p.view.SetStateLabel("Mode: " + last.String())
		}
	}
}
