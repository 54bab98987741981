package bot

import (
	"testing"

	"github.com/cmaddox5/holderbot/internal/game"
)

type stubSubmission struct {
	id    string
	value int
}

func (s *stubSubmission) ParticipantID() string    { return s.id }
func (s *stubSubmission) Value() int               { return s.value }
func (s *stubSubmission) Accept(int)               {}
func (s *stubSubmission) Reject(game.RejectReason) {}

func TestRouterDispatchToOpenPrompt(t *testing.T) {
	router := newSubmissionRouter()
	ch := router.Open("prompt-1")

	sub := &stubSubmission{id: "alice", value: 4}
	if !router.dispatch("prompt-1", sub) {
		t.Fatal("dispatch to open prompt returned false")
	}

	got := <-ch
	if got.ParticipantID() != "alice" || got.Value() != 4 {
		t.Fatalf("received (%s, %d), want (alice, 4)", got.ParticipantID(), got.Value())
	}
}

func TestRouterDispatchToUnknownPrompt(t *testing.T) {
	router := newSubmissionRouter()
	router.Open("prompt-1")

	if router.dispatch("prompt-2", &stubSubmission{id: "alice", value: 1}) {
		t.Fatal("dispatch to unknown prompt returned true")
	}
}

func TestRouterDispatchAfterClose(t *testing.T) {
	router := newSubmissionRouter()
	router.Open("prompt-1")
	router.Close("prompt-1")

	if router.dispatch("prompt-1", &stubSubmission{id: "alice", value: 1}) {
		t.Fatal("dispatch to closed prompt returned true")
	}
}

func TestRouterDispatchDropsWhenQueueFull(t *testing.T) {
	router := newSubmissionRouter()
	router.Open("prompt-1")

	for n := 0; n < submissionBuffer; n++ {
		if !router.dispatch("prompt-1", &stubSubmission{id: "alice", value: 1}) {
			t.Fatalf("dispatch %d rejected before the queue filled", n)
		}
	}
	if router.dispatch("prompt-1", &stubSubmission{id: "bob", value: 2}) {
		t.Fatal("dispatch succeeded on a full queue")
	}
}
