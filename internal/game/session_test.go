package game

import (
	"reflect"
	"testing"

	"github.com/cmaddox5/holderbot/internal/models"
)

func TestSessionAddPointsAccumulates(t *testing.T) {
	sess := NewSession()

	sess.AddPoints([]string{"A", "B"}, 2)
	sess.AddPoints([]string{"A"}, 2)

	if got := sess.Score("A"); got != 4 {
		t.Errorf("A = %d, want 4", got)
	}
	if got := sess.Score("B"); got != 2 {
		t.Errorf("B = %d, want 2", got)
	}
	if got := sess.Score("C"); got != 0 {
		t.Errorf("C = %d, want 0 for absent entry", got)
	}
}

func TestSessionStandingsOrder(t *testing.T) {
	sess := NewSession()
	sess.AddPoints([]string{"B"}, 2)
	sess.AddPoints([]string{"A", "C"}, 4)

	want := []models.Standing{
		{ParticipantID: "A", Points: 4},
		{ParticipantID: "C", Points: 4},
		{ParticipantID: "B", Points: 2},
	}
	if got := sess.Standings(); !reflect.DeepEqual(got, want) {
		t.Fatalf("standings = %v, want %v", got, want)
	}
}

func TestSessionUsedRounds(t *testing.T) {
	sess := NewSession()

	if sess.RoundUsed("dice") {
		t.Fatal("fresh session reports round as used")
	}
	sess.MarkRoundUsed("dice")
	if !sess.RoundUsed("dice") {
		t.Fatal("marked round not reported as used")
	}
	if sess.RoundUsed("other") {
		t.Fatal("unrelated round reported as used")
	}
}
