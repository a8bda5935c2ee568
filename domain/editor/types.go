package editor

import (
	"github.com/google/uuid"

	"github.com/PrahoLama/vine-annotate/domain/shape"
)

// State enumerates the finite states of the editing interaction cycle.
type State int

const (
	StateIdle State = iota
	StatePanning
	StateDrawingRow
	StateDrawingBox
	StateDraggingBox
	StateResizingBox
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePanning:
		return "panning"
	case StateDrawingRow:
		return "drawing-row"
	case StateDrawingBox:
		return "drawing-box"
	case StateDraggingBox:
		return "dragging-box"
	case StateResizingBox:
		return "resizing-box"
	default:
		return "unknown"
	}
}

// StateListener is called on each successful state transition.
type StateListener func(prev, next State)

// CommitListeners externalize shape lifecycle notifications so a host UI can
// update counters without reaching into the annotation set.
type CommitListeners struct {
	DetectionCreated func(shape.Detection)
	RowFinished      func(shape.Row)
	ShapeDeleted     func(id uuid.UUID)
}
