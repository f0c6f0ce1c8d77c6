package tetris

// Action is a player control understood by Session.
type Action uint8

const (
	ActionMoveLeft Action = iota
	ActionMoveRight
	ActionRotateCW
	ActionRotateCCW
	ActionHardDrop
	ActionSoftDrop
	ActionHold
	ActionRestart

	actionCount
)

var actionNames = [...]string{
	ActionMoveLeft:  "move-left",
	ActionMoveRight: "move-right",
	ActionRotateCW:  "rotate-cw",
	ActionRotateCCW: "rotate-ccw",
	ActionHardDrop:  "hard-drop",
	ActionSoftDrop:  "soft-drop",
	ActionHold:      "hold",
	ActionRestart:   "restart",
}

func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return "unknown"
}

// Actions lists every Action.
var Actions = [actionCount]Action{
	ActionMoveLeft,
	ActionMoveRight,
	ActionRotateCW,
	ActionRotateCCW,
	ActionHardDrop,
	ActionSoftDrop,
	ActionHold,
	ActionRestart,
}

// Event is a discrete input. Release marks a key-up; Repeat marks a press
// generated by the platform's own key repeat, which the session ignores.
type Event struct {
	Action  Action
	Release bool
	Repeat  bool
}

// Press returns the key-down event for a.
func Press(a Action) Event {
	return Event{Action: a}
}

// Release returns the key-up event for a.
func Release(a Action) Event {
	return Event{Action: a, Release: true}
}

func (e Event) String() string {
	switch {
	case e.Release:
		return e.Action.String() + " up"
	case e.Repeat:
		return e.Action.String() + " repeat"
	default:
		return e.Action.String()
	}
}

// Handle applies one input event. While Dead only a Restart press is
// honoured.
func (s *Session) Handle(ev Event) {
	if s.state == Dead {
		if ev.Action == ActionRestart && !ev.Release && !ev.Repeat {
			s.reset()
		}
		return
	}
	if ev.Release {
		s.release(ev.Action)
		return
	}

	switch ev.Action {
	case ActionMoveLeft:
		s.pressShift(ShiftLeft, ev.Repeat)
	case ActionMoveRight:
		s.pressShift(ShiftRight, ev.Repeat)
	case ActionRotateCW:
		s.rotate(Clockwise)
	case ActionRotateCCW:
		s.rotate(CounterClockwise)
	case ActionHardDrop:
		s.hardDrop()
	case ActionSoftDrop:
		if !ev.Repeat {
			s.fallMode = FallSoftDrop
			s.fallTimer = 0
		}
	case ActionHold:
		s.hold()
	}
}

func (s *Session) release(a Action) {
	switch a {
	case ActionMoveLeft:
		if s.shiftDir == ShiftLeft {
			s.shiftDir = ShiftNone
		}
	case ActionMoveRight:
		if s.shiftDir == ShiftRight {
			s.shiftDir = ShiftNone
		}
	case ActionSoftDrop:
		s.fallMode = FallNormal
	}
}

func (s *Session) pressShift(dir Shift, repeat bool) {
	if !s.active || repeat || s.shiftDir == dir {
		return
	}
	s.shiftDir = dir
	s.shiftTimer = MoveWait
	if s.shift(dir) && s.piece.AtBottom(&s.board) {
		s.armLockDelay()
	}
}

func (s *Session) shift(dir Shift) bool {
	switch dir {
	case ShiftLeft:
		return s.piece.MoveLeft(&s.board)
	case ShiftRight:
		return s.piece.MoveRight(&s.board)
	}
	return false
}

func (s *Session) rotate(dir Direction) {
	if !s.active {
		return
	}
	if s.piece.Rotate(dir, &s.board) && s.piece.AtBottom(&s.board) {
		s.armLockDelay()
	}
}

func (s *Session) hardDrop() {
	if !s.active {
		return
	}
	for s.piece.Fall(&s.board) {
		s.score += HardDropPoints
	}
	s.lock()
	s.fallTimer = s.fallInterval()
}

func (s *Session) hold() {
	if !s.active || s.holdUsed {
		return
	}
	current := s.piece.Type
	next := s.held
	if next == None {
		next = s.queue.Pop()
	}
	s.held = current
	s.holdUsed = true
	s.spawn(next)
}
