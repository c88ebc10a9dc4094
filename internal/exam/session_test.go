package exam

import (
	"errors"
	"testing"
)

func startedSession(t *testing.T, n, minutes int, submit SubmitFunc) *Session {
	t.Helper()
	if submit == nil {
		submit = func(AnswerVector) (Result, error) { return Result{}, nil }
	}
	s := NewSession(submit)
	if err := s.Start(n, minutes); err != nil {
		t.Fatalf("start: %v", err)
	}
	return s
}

func TestSessionInitialState(t *testing.T) {
	s := startedSession(t, 4, 30, nil)
	if s.Phase() != PhaseInProgress {
		t.Fatalf("phase = %v, want InProgress", s.Phase())
	}
	if s.Remaining() != 30*60 {
		t.Errorf("remaining = %d, want %d", s.Remaining(), 30*60)
	}
	if got := s.Slot(0).Status; got != StatusVisited {
		t.Errorf("slot 0 status = %s, want visited", got)
	}
	for i := 1; i < 4; i++ {
		if got := s.Slot(i).Status; got != StatusNotVisited {
			t.Errorf("slot %d status = %s, want not_visited", i, got)
		}
	}
}

func TestSessionStaysLoadingUntilStarted(t *testing.T) {
	s := NewSession(func(AnswerVector) (Result, error) { return Result{}, nil })
	if s.Phase() != PhaseLoading {
		t.Fatalf("phase = %v, want Loading", s.Phase())
	}
	s.Tick()
	s.Next()
	if err := s.Submit(); !errors.Is(err, ErrNotStarted) {
		t.Errorf("submit before start: err = %v, want ErrNotStarted", err)
	}
	if s.Phase() != PhaseLoading {
		t.Errorf("phase = %v, want still Loading", s.Phase())
	}
}

func TestBoundaryNavigationClamps(t *testing.T) {
	s := startedSession(t, 3, 10, nil)

	s.Prev()
	if s.Current() != 0 {
		t.Errorf("Prev at 0: current = %d, want 0", s.Current())
	}
	s.JumpTo(2)
	s.Next()
	if s.Current() != 2 {
		t.Errorf("Next at last: current = %d, want 2", s.Current())
	}
}

func TestNavigationMarksVisitedOnce(t *testing.T) {
	s := startedSession(t, 3, 10, nil)

	s.Next()
	if got := s.Slot(1).Status; got != StatusVisited {
		t.Fatalf("slot 1 after Next = %s, want visited", got)
	}
	s.SelectOption(1, 0)
	s.Prev()
	s.Next() // re-entering an answered question must not touch its status
	if got := s.Slot(1).Status; got != StatusAnswered {
		t.Errorf("slot 1 after re-entry = %s, want answered", got)
	}
}

func TestStatusMonotonicity(t *testing.T) {
	s := startedSession(t, 2, 10, nil)

	// Any sequence of select/clear/mark on a visited question must never
	// return it to not_visited.
	ops := []func(){
		func() { s.SelectOption(0, 1) },
		func() { s.ClearResponse(0) },
		func() { s.MarkForReview(0) },
		func() { s.ClearResponse(0) },
		func() { s.SelectOption(0, 0) },
		func() { s.ClearResponse(0) },
	}
	for i, op := range ops {
		op()
		if got := s.Slot(0).Status; got == StatusNotVisited {
			t.Fatalf("after op %d: slot 0 regressed to not_visited", i)
		}
	}
}

func TestClearResponseOnlyRevertsAnswered(t *testing.T) {
	s := startedSession(t, 2, 10, nil)

	s.SelectOption(0, 1)
	s.ClearResponse(0)
	if got := s.Slot(0); got.Selected != nil || got.Status != StatusVisited {
		t.Errorf("cleared answered slot = {%v %s}, want {nil visited}", got.Selected, got.Status)
	}

	s.SelectOption(0, 1)
	s.MarkForReview(0)
	s.ClearResponse(0)
	if got := s.Slot(0); got.Selected != nil || got.Status != StatusMarked {
		t.Errorf("cleared marked slot = {%v %s}, want {nil marked}", got.Selected, got.Status)
	}
}

func TestMarkForReviewOverwritesAnswered(t *testing.T) {
	s := startedSession(t, 2, 10, nil)

	s.SelectOption(0, 1)
	s.MarkForReview(0)
	if got := s.Slot(0).Status; got != StatusMarked {
		t.Errorf("status = %s, want marked", got)
	}
	// Selection survives even though the status no longer says answered.
	if got := s.Slot(0).Selected; got == nil || *got != 1 {
		t.Errorf("selection lost after mark: %v", got)
	}
}

func TestCountsPartitionAllQuestions(t *testing.T) {
	s := startedSession(t, 6, 10, nil)

	s.SelectOption(0, 1)
	s.JumpTo(2)
	s.MarkForReview(2)
	s.JumpTo(3)
	s.SelectOption(3, 0)
	s.MarkForReview(3) // answered-and-marked counts only as marked

	c := s.Counts()
	if sum := c.Answered + c.NotVisited + c.Marked + c.Visited; sum != 6 {
		t.Fatalf("bucket sum = %d, want 6 (%+v)", sum, c)
	}
	if c.Answered != 1 || c.Marked != 2 || c.NotVisited != 2 || c.Visited != 1 {
		t.Errorf("counts = %+v, want {Answered:1 NotVisited:2 Marked:2 Visited:1}", c)
	}
}

func TestTickAutoSubmitsExactlyOnce(t *testing.T) {
	calls := 0
	s := startedSession(t, 2, 0, func(AnswerVector) (Result, error) {
		calls++
		return Result{}, nil
	})
	// 0-minute duration: first session state has remaining == 0 and must not
	// auto-fire via Tick noise.
	s.remaining = 2

	s.Tick()
	s.Tick() // reaches 0, auto-submit
	if calls != 1 {
		t.Fatalf("submit calls after timeout = %d, want 1", calls)
	}
	if s.Phase() != PhaseCompleted {
		t.Fatalf("phase = %v, want Completed", s.Phase())
	}
	s.Tick()
	if err := s.Submit(); err != nil {
		t.Fatalf("post-completion submit: %v", err)
	}
	if calls != 1 {
		t.Errorf("submit calls after extra tick+submit = %d, want 1", calls)
	}
}

func TestTimeoutRacingManualSubmit(t *testing.T) {
	calls := 0
	var s *Session
	s = startedSession(t, 2, 1, func(AnswerVector) (Result, error) {
		calls++
		// A tick delivered while the submit is in flight must be ignored.
		s.Tick()
		return Result{}, nil
	})
	s.remaining = 1

	s.Tick()     // hits 0, auto-submits
	_ = s.Submit() // manual submit racing the timeout
	if calls != 1 {
		t.Fatalf("submit calls = %d, want exactly 1", calls)
	}
}

func TestFailedSubmitIsRetryable(t *testing.T) {
	fail := true
	calls := 0
	s := startedSession(t, 2, 10, func(a AnswerVector) (Result, error) {
		calls++
		if fail {
			return Result{}, errors.New("network down")
		}
		if a[0] == nil || *a[0] != 1 {
			return Result{}, errors.New("answers lost across retry")
		}
		return Result{Score: 2}, nil
	})
	s.SelectOption(0, 1)

	if err := s.Submit(); err == nil {
		t.Fatal("first submit should fail")
	}
	if s.Phase() != PhaseInProgress {
		t.Fatalf("phase after failure = %v, want InProgress", s.Phase())
	}

	fail = false
	if err := s.Submit(); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("submit calls = %d, want 2", calls)
	}
	if s.Result() == nil || s.Result().Score != 2 {
		t.Errorf("result = %+v, want score 2", s.Result())
	}
}

func TestAnswerVectorPreservesNils(t *testing.T) {
	s := startedSession(t, 3, 10, nil)
	s.SelectOption(1, 2)

	v := s.AnswerVector()
	if len(v) != 3 {
		t.Fatalf("len = %d, want 3", len(v))
	}
	if v[0] != nil || v[2] != nil {
		t.Errorf("unattempted entries should be nil: %v", v)
	}
	if v[1] == nil || *v[1] != 2 {
		t.Errorf("v[1] = %v, want 2", v[1])
	}
}

func TestMutationsIgnoredAfterCompletion(t *testing.T) {
	s := startedSession(t, 2, 10, nil)
	if err := s.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}
	s.SelectOption(0, 1)
	s.MarkForReview(1)
	s.JumpTo(1)
	if got := s.Slot(0).Selected; got != nil {
		t.Errorf("selection recorded after completion")
	}
	if s.Current() != 0 {
		t.Errorf("navigation applied after completion")
	}
}
