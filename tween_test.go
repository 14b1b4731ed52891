package reels

import (
	"testing"
	"time"
)

const ms = time.Millisecond

func TestAdvanceReachesExactTarget(t *testing.T) {
	s := NewScheduler()
	v := 3.0
	s.Schedule(NewTween(&v, 13, 0, 1000*ms, BackOut(0.5)))

	done := s.Advance(1000 * ms)

	if want := Lerp(3, 13, BackOut(0.5)(1)); v != want {
		t.Errorf("value = %v, want %v", v, want)
	}
	if v != 13 {
		t.Errorf("value = %v, want 13", v)
	}
	if len(done) != 1 {
		t.Fatalf("completions = %d, want 1", len(done))
	}
	if s.Len() != 0 {
		t.Errorf("active = %d after completion, want 0", s.Len())
	}
}

func TestAdvancePastEndClampsProgress(t *testing.T) {
	s := NewScheduler()
	v := 0.0
	tw := NewTween(&v, 100, 0, 100*ms, Linear)
	s.Schedule(tw)

	s.Advance(5 * time.Second)
	if v != 100 {
		t.Errorf("value = %v, want 100", v)
	}
	if tw.Progress() != 1 {
		t.Errorf("progress = %v, want 1", tw.Progress())
	}
}

func TestAdvanceInterpolatesMidway(t *testing.T) {
	s := NewScheduler()
	v := 0.0
	s.Schedule(NewTween(&v, 100, 0, 1000*ms, Linear))

	done := s.Advance(250 * ms)
	if len(done) != 0 {
		t.Fatal("should not complete at 25%")
	}
	if v != 25 {
		t.Errorf("value = %v, want 25", v)
	}
	if s.Len() != 1 {
		t.Errorf("active = %d, want 1", s.Len())
	}
}

func TestAdvanceRelativeToStart(t *testing.T) {
	s := NewScheduler()
	v := 0.0
	s.Schedule(NewTween(&v, 10, 2*time.Second, 1*time.Second, Linear))

	s.Advance(2500 * ms)
	if v != 5 {
		t.Errorf("value = %v, want 5", v)
	}
}

func TestAdvanceBeforeStartHoldsFrom(t *testing.T) {
	s := NewScheduler()
	v := 7.0
	s.Schedule(NewTween(&v, 10, time.Second, time.Second, Linear))

	s.Advance(500 * ms)
	if v != 7 {
		t.Errorf("value = %v, want 7", v)
	}
}

func TestCallbacksOrderAndOnce(t *testing.T) {
	s := NewScheduler()
	v := 0.0
	var log []string
	tw := NewTween(&v, 1, 0, 100*ms, Linear)
	tw.OnUpdate = func(*Tween) { log = append(log, "update") }
	tw.OnComplete = func(got *Tween) {
		if got != tw {
			t.Error("OnComplete received a different tween")
		}
		if s.Len() != 1 {
			t.Error("tween retired before OnComplete ran")
		}
		log = append(log, "complete")
	}
	s.Schedule(tw)

	s.Advance(50 * ms)
	s.Advance(100 * ms)
	s.Advance(150 * ms)
	s.Advance(200 * ms)

	want := []string{"update", "update", "complete"}
	if len(log) != len(want) {
		t.Fatalf("callbacks = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("callback %d = %q, want %q", i, log[i], want[i])
		}
	}
}

func TestCompletedTweenNeverWritesAgain(t *testing.T) {
	s := NewScheduler()
	v := 0.0
	s.Schedule(NewTween(&v, 10, 0, 100*ms, Linear))
	s.Advance(100 * ms)

	v = -1 // someone else now owns the field
	s.Advance(200 * ms)
	if v != -1 {
		t.Errorf("retired tween wrote %v", v)
	}
}

func TestAdvanceInsertionOrder(t *testing.T) {
	s := NewScheduler()
	var a, b, c float64
	var order []int
	for i, p := range []*float64{&a, &b, &c} {
		tw := NewTween(p, 1, 0, 100*ms, Linear)
		tw.Tag = i
		tw.OnUpdate = func(tw *Tween) { order = append(order, tw.Tag) }
		s.Schedule(tw)
	}

	done := s.Advance(100 * ms)
	for i, tag := range order {
		if tag != i {
			t.Errorf("update order = %v, want [0 1 2]", order)
			break
		}
	}
	for i, comp := range done {
		if comp.Tag != i {
			t.Errorf("completion order tag %d at %d", comp.Tag, i)
		}
	}
}

func TestMixedCompletionKeepsRemainder(t *testing.T) {
	s := NewScheduler()
	var short, long float64
	s.Schedule(NewTween(&short, 1, 0, 100*ms, Linear))
	h := s.Schedule(NewTween(&long, 1, 0, 300*ms, Linear))

	done := s.Advance(150 * ms)
	if len(done) != 1 {
		t.Fatalf("completions = %d, want 1", len(done))
	}
	if !s.Active(h) {
		t.Error("long tween should still be active")
	}
	if s.Len() != 1 {
		t.Errorf("active = %d, want 1", s.Len())
	}
}

func TestZeroDurationCompletesImmediately(t *testing.T) {
	s := NewScheduler()
	v := 1.0
	s.Schedule(NewTween(&v, 4, 0, 0, Linear))
	done := s.Advance(0)
	if v != 4 || len(done) != 1 {
		t.Errorf("value = %v completions = %d, want 4 and 1", v, len(done))
	}
}

func TestScheduleFromOnComplete(t *testing.T) {
	s := NewScheduler()
	v := 0.0
	first := NewTween(&v, 10, 0, 100*ms, Linear)
	var second *Tween
	first.OnComplete = func(*Tween) {
		second = NewTween(&v, 0, 100*ms, 100*ms, Linear)
		s.Schedule(second)
	}
	s.Schedule(first)

	s.Advance(100 * ms)
	if v != 10 {
		t.Errorf("value = %v after first tween, want 10", v)
	}
	if s.Len() != 1 || !s.Active(second.Handle()) {
		t.Fatal("tween scheduled from OnComplete was lost")
	}

	s.Advance(150 * ms)
	if v != 5 {
		t.Errorf("value = %v midway through second tween, want 5", v)
	}
}

func TestHandlesAreUnique(t *testing.T) {
	s := NewScheduler()
	var a, b float64
	h1 := s.Schedule(NewTween(&a, 1, 0, ms, Linear))
	h2 := s.Schedule(NewTween(&b, 1, 0, ms, Linear))
	if h1 == 0 || h2 == 0 || h1 == h2 {
		t.Errorf("handles %d, %d", h1, h2)
	}
}

func TestDebugDuplicateTargetPanics(t *testing.T) {
	s := NewScheduler()
	s.SetDebug(true)
	v := 0.0
	s.Schedule(NewTween(&v, 1, 0, time.Second, Linear))

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate target in debug mode")
		}
	}()
	s.Schedule(NewTween(&v, 2, 0, time.Second, Linear))
}

func TestDuplicateTargetAllowedInRelease(t *testing.T) {
	s := NewScheduler()
	v := 0.0
	s.Schedule(NewTween(&v, 1, 0, time.Second, Linear))
	s.Schedule(NewTween(&v, 2, 0, time.Second, Linear))
	if s.Len() != 2 {
		t.Errorf("active = %d, want 2", s.Len())
	}
}

func TestClearDropsWithoutWriting(t *testing.T) {
	s := NewScheduler()
	v := 0.0
	completed := false
	tw := NewTween(&v, 1, 0, time.Second, Linear)
	tw.OnComplete = func(*Tween) { completed = true }
	s.Schedule(tw)
	s.Clear()
	s.Advance(2 * time.Second)
	if v != 0 || completed {
		t.Error("cleared tween still ran")
	}
}

func TestAdvanceZeroAlloc(t *testing.T) {
	s := NewScheduler()
	v := 0.0
	s.Schedule(NewTween(&v, 1, 0, time.Hour, BackOut(0.5)))
	s.Advance(ms)

	now := ms
	result := testing.AllocsPerRun(100, func() {
		now += ms
		s.Advance(now)
	})
	if result > 0 {
		t.Errorf("Advance allocated %f times per run, want 0", result)
	}
}
