package presenter

import "time"

// Loop aggregates feature presenters and drives periodic updates.
//
// It calls Tick on the sub-presenters and invokes a scheduler callback. The
// zero value is usable (methods are nil-safe).
type Loop struct {
	Session  *SessionPresenter
	FSM      *FSMPresenter
	Stats    *StatsPresenter
	Canvas   *CanvasPresenter
	Schedule func()
}

func NewLoop(sess *SessionPresenter, fsm *FSMPresenter, stats *StatsPresenter, canvas *CanvasPresenter, schedule func()) *Loop {
	return &Loop{Session: sess, FSM: fsm, Stats: stats, Canvas: canvas, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	// Canvas first: a finished raster load should be reflected in the state
	// label and counters within the same tick.
	if l.Canvas != nil {
		l.Canvas.Tick(now)
	}
	if l.FSM != nil {
		l.FSM.Tick(now)
	}
	if l.Stats != nil {
		l.Stats.Tick(now)
	}
	if l.Session != nil {
		l.Session.Tick(now)
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
