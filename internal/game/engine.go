package game

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Engine runs dice rounds against an announcement surface and a submission
// stream. One Engine serves the whole session; rounds run sequentially.
type Engine struct {
	announcer Announcer
	source    SubmissionSource
	names     NameResolver
	roller    Roller
	clock     clockwork.Clock
	instance  string // short ID for logging
}

// NewEngine creates an engine with a real clock and a wall-clock-seeded
// roller.
func NewEngine(announcer Announcer, source SubmissionSource, names NameResolver) *Engine {
	return &Engine{
		announcer: announcer,
		source:    source,
		names:     names,
		roller:    NewRoller(),
		clock:     clockwork.NewRealClock(),
		instance:  uuid.New().String()[:8],
	}
}

// Run executes one round: guard check, invitation, collection window, draw,
// scoring, report. It always returns a well-formed Result; the error is
// non-nil only when the invitation could not be shown, in which case the
// round is not marked used and may be retried.
//
// The acceptance window has no external cancellation; the deadline is the
// sole termination signal, so Run blocks for at most cfg.Duration plus the
// synchronous tail steps.
func (e *Engine) Run(cfg Config, sess *Session, eligible []string) (*Result, error) {
	cfg = cfg.withDefaults()

	if sess.RoundUsed(cfg.RoundID) {
		log.Info().
			Str("round_id", cfg.RoundID).
			Str("instance", e.instance).
			Msg("round already executed this session; short-circuiting")
		return &Result{RoundID: cfg.RoundID, Picks: map[string]int{}, PointAward: cfg.PointAward}, nil
	}

	prompt, err := e.announcer.Announce(renderInvitation(cfg), cfg.DomainSize)
	if err != nil {
		return nil, fmt.Errorf("announce round invitation: %w", err)
	}

	eligibleSet := make(map[string]struct{}, len(eligible))
	for _, id := range eligible {
		eligibleSet[id] = struct{}{}
	}

	picks := e.collect(cfg, eligibleSet, prompt)

	if len(picks) == 0 {
		if err := prompt.Finalize(renderNoPicks(cfg)); err != nil {
			log.Warn().Err(err).Str("round_id", cfg.RoundID).Msg("failed to finalize empty round prompt")
		}
		sess.MarkRoundUsed(cfg.RoundID)
		log.Info().Str("round_id", cfg.RoundID).Str("instance", e.instance).Msg("round closed with no picks")
		return &Result{RoundID: cfg.RoundID, Picks: picks, PointAward: cfg.PointAward}, nil
	}

	outcome := e.roller.Roll(cfg.DomainSize)
	winners := winnersOf(picks, outcome)
	sess.AddPoints(winners, cfg.PointAward)

	report := Summarize(cfg, picks, outcome, winners, e.names)
	if err := prompt.Finalize(report.String()); err != nil {
		log.Warn().Err(err).Str("round_id", cfg.RoundID).Msg("failed to post round report")
	}
	sess.MarkRoundUsed(cfg.RoundID)

	log.Info().
		Str("round_id", cfg.RoundID).
		Str("instance", e.instance).
		Int("outcome", outcome).
		Int("picks", len(picks)).
		Int("winners", len(winners)).
		Msg("round complete")

	return &Result{
		RoundID:    cfg.RoundID,
		Outcome:    outcome,
		Picks:      picks,
		Winners:    winners,
		PointAward: cfg.PointAward,
	}, nil
}

// winnersOf returns the participants whose pick matches the outcome, sorted
// for a stable result.
func winnersOf(picks map[string]int, outcome int) []string {
	winners := make([]string, 0, len(picks))
	for id, value := range picks {
		if value == outcome {
			winners = append(winners, id)
		}
	}
	sort.Strings(winners)
	return winners
}
