package game

import (
	"sort"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// collect opens the acceptance window and gathers one pick per eligible
// participant until the deadline. Submissions are handled one at a time in
// arrival order; the reminder timer shares the loop but only ever touches
// the prompt, never the pick table. Returns the final, possibly empty, pick
// table.
func (e *Engine) collect(cfg Config, eligible map[string]struct{}, prompt PromptHandle) map[string]int {
	subs := e.source.Open(prompt.ID())
	defer e.source.Close(prompt.ID())

	picks := make(map[string]int)

	deadline := e.clock.NewTimer(cfg.Duration)
	defer stopTimer(deadline)

	offsets := reminderSchedule(cfg)
	var reminder clockwork.Timer
	var remindCh <-chan time.Time
	next := 0
	if len(offsets) > 0 {
		reminder = e.clock.NewTimer(offsets[0])
		defer stopTimer(reminder)
		remindCh = reminder.Chan()
	}

	for {
		select {
		case sub, ok := <-subs:
			if !ok {
				subs = nil
				continue
			}
			e.apply(cfg, eligible, picks, sub)

		case <-remindCh:
			elapsed := offsets[next]
			if err := prompt.Edit(renderReminder(cfg, cfg.Duration-elapsed)); err != nil {
				log.Warn().Err(err).Str("round_id", cfg.RoundID).Msg("reminder update failed")
			}
			next++
			if next < len(offsets) {
				reminder.Reset(offsets[next] - elapsed)
			} else {
				remindCh = nil
			}

		case <-deadline.Chan():
			return picks
		}
	}
}

// apply validates one submission and records it last-write-wins, answering
// the submitter either way. Invalid input never reaches the pick table and
// is never surfaced as a round failure.
func (e *Engine) apply(cfg Config, eligible map[string]struct{}, picks map[string]int, sub Submission) {
	id := sub.ParticipantID()
	if _, ok := eligible[id]; !ok {
		log.Debug().Str("round_id", cfg.RoundID).Str("participant_id", id).Msg("submission from ineligible participant")
		sub.Reject(RejectNotEligible)
		return
	}
	value := sub.Value()
	if value < 1 || value > cfg.DomainSize {
		log.Debug().Str("round_id", cfg.RoundID).Str("participant_id", id).Int("value", value).Msg("submission out of domain")
		sub.Reject(RejectOutOfDomain)
		return
	}
	picks[id] = value
	sub.Accept(value)
}

// reminderSchedule returns the reminder offsets that fall inside the window,
// sorted ascending.
func reminderSchedule(cfg Config) []time.Duration {
	offsets := make([]time.Duration, 0, len(cfg.ReminderOffsets))
	for _, off := range cfg.ReminderOffsets {
		if off > 0 && off < cfg.Duration {
			offsets = append(offsets, off)
		}
	}
	sort.Slice(offsets, func(i, j int) bool { return offsets[i] < offsets[j] })
	return offsets
}

// stopTimer stops a timer and drains its channel so a fired-but-unread tick
// cannot leak.
func stopTimer(t clockwork.Timer) {
	if !t.Stop() {
		select {
		case <-t.Chan():
		default:
		}
	}
}
