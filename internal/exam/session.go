package exam

import "errors"

// Status is the per-question bucket shown in the navigator. Statuses are
// exclusive and single-valued: marking a question for review overwrites
// "answered", so an answered-and-marked question is indistinguishable from a
// visited-and-marked one. That mirrors the shipped behavior and the status
// counts depend on it; see DESIGN.md before changing.
type Status string

const (
	StatusNotVisited Status = "not_visited"
	StatusVisited    Status = "visited"
	StatusAnswered   Status = "answered"
	StatusMarked     Status = "marked"
)

// Phase is the attempt lifecycle.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseInProgress
	PhaseSubmitting
	PhaseCompleted
)

// Slot is the live state of one question within an attempt.
type Slot struct {
	Selected *int
	Status   Status
}

// StatusCounts is a pure projection over the slots; every question lands in
// exactly one bucket.
type StatusCounts struct {
	Answered   int
	NotVisited int
	Marked     int
	Visited    int
}

// SubmitFunc sends the final answer vector to the scoring engine. The session
// calls it at most once per successful attempt.
type SubmitFunc func(answers AnswerVector) (Result, error)

var ErrNotStarted = errors.New("session not started")

// Session owns one in-progress attempt: the current question pointer, the
// per-question answer/status slots, and the countdown. It is single-threaded
// cooperative; the host drives Tick once per wall-clock second and all other
// methods from its event loop.
type Session struct {
	slots     []Slot
	current   int
	remaining int
	phase     Phase
	submit    SubmitFunc
	result    *Result
}

// NewSession returns a session in the Loading phase. It stays there until
// Start is called with the loaded question count; a question set that never
// loads leaves the session in Loading indefinitely.
func NewSession(submit SubmitFunc) *Session {
	return &Session{phase: PhaseLoading, submit: submit}
}

// Start initializes the slots and the countdown once the question set has
// loaded. The first question starts visited, all others not visited.
func (s *Session) Start(questionCount, durationMinutes int) error {
	if s.phase != PhaseLoading {
		return errors.New("session already started")
	}
	if questionCount <= 0 {
		return errors.New("question count must be positive")
	}
	s.slots = make([]Slot, questionCount)
	for i := range s.slots {
		s.slots[i].Status = StatusNotVisited
	}
	s.slots[0].Status = StatusVisited
	s.current = 0
	s.remaining = durationMinutes * 60
	s.phase = PhaseInProgress
	return nil
}

func (s *Session) Phase() Phase    { return s.phase }
func (s *Session) Current() int    { return s.current }
func (s *Session) Remaining() int  { return s.remaining }
func (s *Session) Result() *Result { return s.result }

// Slot returns a copy of the slot at i.
func (s *Session) Slot(i int) Slot {
	if i < 0 || i >= len(s.slots) {
		return Slot{}
	}
	return s.slots[i]
}

// SelectOption records the choice for a question and moves it to answered.
// Correctness is never known here; this is a pure local mutation.
func (s *Session) SelectOption(q, option int) {
	if s.phase != PhaseInProgress || !s.valid(q) || option < 0 {
		return
	}
	opt := option
	s.slots[q].Selected = &opt
	s.slots[q].Status = StatusAnswered
}

// Next moves forward one question, clamped at the last.
func (s *Session) Next() {
	s.JumpTo(s.current + 1)
}

// Prev moves back one question, clamped at the first.
func (s *Session) Prev() {
	s.JumpTo(s.current - 1)
}

// JumpTo moves to an arbitrary question (navigator click). Out-of-range
// targets clamp to the boundary. First arrival at a question flips it from
// not_visited to visited; re-entering never changes its status.
func (s *Session) JumpTo(q int) {
	if s.phase != PhaseInProgress || len(s.slots) == 0 {
		return
	}
	if q < 0 {
		q = 0
	}
	if q > len(s.slots)-1 {
		q = len(s.slots) - 1
	}
	s.current = q
	if s.slots[q].Status == StatusNotVisited {
		s.slots[q].Status = StatusVisited
	}
}

// MarkForReview flags a question, unconditionally overwriting its status.
func (s *Session) MarkForReview(q int) {
	if s.phase != PhaseInProgress || !s.valid(q) {
		return
	}
	s.slots[q].Status = StatusMarked
}

// ClearResponse drops the selection. Only an answered question reverts to
// visited; a marked one stays marked and nothing ever goes back to
// not_visited.
func (s *Session) ClearResponse(q int) {
	if s.phase != PhaseInProgress || !s.valid(q) {
		return
	}
	s.slots[q].Selected = nil
	if s.slots[q].Status == StatusAnswered {
		s.slots[q].Status = StatusVisited
	}
}

// Tick advances the countdown by one second. At exactly zero it auto-submits
// once; ticks delivered while submitting or completed are ignored.
func (s *Session) Tick() {
	if s.phase != PhaseInProgress || s.remaining <= 0 {
		return
	}
	s.remaining--
	if s.remaining == 0 {
		_ = s.Submit()
	}
}

// Submit sends the answer vector exactly once. A second call while a submit
// is in flight or after completion is a no-op, which also dedupes the
// timeout/manual race. On failure the session returns to InProgress with all
// answers intact; that is the only retryable path.
func (s *Session) Submit() error {
	switch s.phase {
	case PhaseInProgress:
	case PhaseLoading:
		return ErrNotStarted
	default:
		return nil
	}
	s.phase = PhaseSubmitting
	res, err := s.submit(s.AnswerVector())
	if err != nil {
		s.phase = PhaseInProgress
		return err
	}
	s.result = &res
	s.phase = PhaseCompleted
	return nil
}

// AnswerVector is the submission payload: one entry per question, nil for
// unattempted.
func (s *Session) AnswerVector() AnswerVector {
	out := make(AnswerVector, len(s.slots))
	for i := range s.slots {
		out[i] = s.slots[i].Selected
	}
	return out
}

// Counts recomputes the navigator buckets from the slots.
func (s *Session) Counts() StatusCounts {
	var c StatusCounts
	for i := range s.slots {
		switch s.slots[i].Status {
		case StatusAnswered:
			c.Answered++
		case StatusNotVisited:
			c.NotVisited++
		case StatusMarked:
			c.Marked++
		case StatusVisited:
			c.Visited++
		}
	}
	return c
}

func (s *Session) valid(q int) bool {
	return q >= 0 && q < len(s.slots)
}
