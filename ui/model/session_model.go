package model

import (
	"time"
)

// SessionModel tracks how long the current raster has been open and the
// accumulated editing time across rasters. It is decoupled from the UI;
// presenters should poll Values() and update views. The zero value is ready
// to use.
type SessionModel struct {
	active              bool
	rasterStart         time.Time
	lastSessionDuration time.Duration
	accumulated         time.Duration
}

// NewSessionModel returns a pointer to a ready-to-use SessionModel.
func NewSessionModel() *SessionModel { return &SessionModel{} }

// OnRasterLoaded restarts the per-raster clock, folding the previous
// raster's session into the accumulated total.
func (m *SessionModel) OnRasterLoaded(now time.Time) {
	if m == nil {
		return
	}
	if m.active {
		m.accumulated += now.Sub(m.rasterStart)
	}
	m.active = true
	m.rasterStart = now
	m.lastSessionDuration = 0
}

// OnTick advances the per-raster duration. Call periodically (for example,
// from a presenter tick).
func (m *SessionModel) OnTick(now time.Time) {
	if m == nil || !m.active {
		return
	}
	m.lastSessionDuration = now.Sub(m.rasterStart)
}

// Values returns the current raster's session duration and the total
// accumulated duration. The total includes the ongoing session when active.
func (m *SessionModel) Values() (session, total time.Duration) {
	if m == nil {
		return 0, 0
	}
	session = m.lastSessionDuration
	total = m.accumulated
	if m.active {
		total += session
	}
	return
}
