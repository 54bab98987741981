package game

import (
	"strings"
	"testing"
	"time"
)

func TestCollectRejectsIneligibleSource(t *testing.T) {
	eng, _, src, clk := newTestEngine(t, 1)
	sess := NewSession()
	cfg := noReminders(Config{RoundID: "dice", Duration: 30 * time.Second})

	done := runRound(eng, cfg, sess, []string{"A"})
	clk.BlockUntil(1)

	outsider := &fakeSubmission{id: "Z", value: 2}
	src.ch <- outsider
	clk.Advance(30 * time.Second)
	res := <-done

	if len(outsider.rejected) != 1 || outsider.rejected[0] != RejectNotEligible {
		t.Fatalf("rejections = %v, want [not eligible]", outsider.rejected)
	}
	if len(outsider.accepted) != 0 {
		t.Errorf("outsider was acknowledged: %v", outsider.accepted)
	}
	if _, ok := res.Picks["Z"]; ok {
		t.Error("ineligible pick reached the pick table")
	}
}

func TestCollectRejectsOutOfDomainValue(t *testing.T) {
	eng, _, src, clk := newTestEngine(t, 1)
	sess := NewSession()
	cfg := noReminders(Config{RoundID: "dice", Duration: 30 * time.Second, DomainSize: 6})

	done := runRound(eng, cfg, sess, []string{"A"})
	clk.BlockUntil(1)

	var subs []*fakeSubmission
	for _, value := range []int{0, 7, -3} {
		sub := &fakeSubmission{id: "A", value: value}
		subs = append(subs, sub)
		src.ch <- sub
	}
	clk.Advance(30 * time.Second)
	res := <-done

	for _, sub := range subs {
		if len(sub.rejected) != 1 || sub.rejected[0] != RejectOutOfDomain {
			t.Errorf("value %d: rejections = %v, want [out of domain]", sub.value, sub.rejected)
		}
	}
	if len(res.Picks) != 0 {
		t.Fatalf("picks = %v, want empty", res.Picks)
	}
}

func TestCollectLastWriteWins(t *testing.T) {
	eng, _, src, clk := newTestEngine(t, 1)
	sess := NewSession()
	cfg := noReminders(Config{RoundID: "dice", Duration: 30 * time.Second})

	done := runRound(eng, cfg, sess, []string{"A"})
	clk.BlockUntil(1)

	first := &fakeSubmission{id: "A", value: 2}
	second := &fakeSubmission{id: "A", value: 5}
	src.ch <- first
	src.ch <- second
	clk.Advance(30 * time.Second)
	res := <-done

	if res.Picks["A"] != 5 {
		t.Fatalf("pick = %d, want 5 (later submission overwrites)", res.Picks["A"])
	}
	if len(first.accepted) != 1 || first.accepted[0] != 2 {
		t.Errorf("first submission ack = %v, want [2]", first.accepted)
	}
	if len(second.accepted) != 1 || second.accepted[0] != 5 {
		t.Errorf("second submission ack = %v, want [5]", second.accepted)
	}
}

func TestCollectRemindersTouchOnlyThePrompt(t *testing.T) {
	eng, ann, src, clk := newTestEngine(t, 1)
	sess := NewSession()
	cfg := Config{
		RoundID:         "dice",
		Duration:        30 * time.Second,
		ReminderOffsets: []time.Duration{10 * time.Second, 20 * time.Second},
	}

	done := runRound(eng, cfg, sess, []string{"A", "B"})
	clk.BlockUntil(2) // deadline + reminder timers armed

	src.ch <- &fakeSubmission{id: "A", value: 1}

	clk.Advance(10 * time.Second) // first reminder fires
	clk.BlockUntil(2)             // reminder timer re-armed for the second offset

	// A submission between the two reminders is recorded like any other.
	src.ch <- &fakeSubmission{id: "B", value: 4}

	clk.Advance(10 * time.Second) // second reminder fires
	src.ch <- &fakeSubmission{id: "A", value: 1}

	clk.Advance(10 * time.Second) // deadline
	res := <-done

	if got := ann.prompt.editCount(); got != 2 {
		t.Fatalf("prompt edits = %d, want 2 reminders", got)
	}
	if !strings.Contains(ann.prompt.edits[0], "20 seconds left") {
		t.Errorf("first reminder = %q, want 20 seconds remaining", ann.prompt.edits[0])
	}
	if !strings.Contains(ann.prompt.edits[1], "10 seconds left") {
		t.Errorf("second reminder = %q, want 10 seconds remaining", ann.prompt.edits[1])
	}
	if res.Picks["A"] != 1 || res.Picks["B"] != 4 {
		t.Fatalf("picks = %v, want A:1 B:4 regardless of reminders", res.Picks)
	}
}

func TestReminderScheduleFiltersAndSorts(t *testing.T) {
	cfg := Config{
		Duration:        30 * time.Second,
		ReminderOffsets: []time.Duration{20 * time.Second, -time.Second, 45 * time.Second, 10 * time.Second},
	}
	got := reminderSchedule(cfg)
	want := []time.Duration{10 * time.Second, 20 * time.Second}
	if len(got) != len(want) {
		t.Fatalf("schedule = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("schedule = %v, want %v", got, want)
		}
	}
}
