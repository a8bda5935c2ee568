package presenter

import (
	"time"

	"github.com/PrahoLama/vine-annotate/ui/model"
)

// SessionView displays formatted session and total durations.
type SessionView interface {
	SetSession(session, total time.Duration)
}

// SessionPresenter formats session and total durations from the model to the view.
type SessionPresenter struct {
	sess *model.SessionModel
	view SessionView
}

// NewSessionPresenter returns a new SessionPresenter.
func NewSessionPresenter(sess *model.SessionModel, view SessionView) *SessionPresenter {
	return &SessionPresenter{sess: sess, view: view}
}

// OnRasterLoaded restarts the per-raster clock. Wire it to the canvas
// presenter's raster-loaded listener.
func (p *SessionPresenter) OnRasterLoaded(now time.Time) {
	if p == nil || p.sess == nil {
		return
	}
	p.sess.OnRasterLoaded(now)
}

// Tick updates the presenter: advance the session model and push values to the view.
func (p *SessionPresenter) Tick(now time.Time) {
	if p == nil || p.sess == nil || p.view == nil {
		return
	}
	p.sess.OnTick(now)
	s, t := p.sess.Values()
	p.view.SetSession(s, t)
}
