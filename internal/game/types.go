package game

import "time"

// Defaults for a round when the caller leaves Config fields zero.
const (
	DefaultDomainSize = 6
	DefaultPointAward = 2
)

// DefaultDuration is the length of the acceptance window.
var (
	DefaultDuration        = 30 * time.Second
	DefaultReminderOffsets = []time.Duration{10 * time.Second, 20 * time.Second}
)

// Config controls one round invocation. Zero-valued fields fall back to the
// defaults above. A nil ReminderOffsets slice means "use the defaults"; an
// empty non-nil slice disables reminders entirely.
type Config struct {
	RoundID         string
	Duration        time.Duration
	ReminderOffsets []time.Duration
	DomainSize      int
	PointAward      int
}

func (c Config) withDefaults() Config {
	if c.Duration <= 0 {
		c.Duration = DefaultDuration
	}
	if c.ReminderOffsets == nil {
		c.ReminderOffsets = DefaultReminderOffsets
	}
	if c.DomainSize <= 0 {
		c.DomainSize = DefaultDomainSize
	}
	if c.PointAward <= 0 {
		c.PointAward = DefaultPointAward
	}
	return c
}

// Result is the uniform return value of a round. Every execution path
// produces one: a short-circuited or pick-less round carries Outcome 0 and
// no winners.
type Result struct {
	RoundID    string         `json:"round_id"`
	Outcome    int            `json:"outcome"`
	Picks      map[string]int `json:"picks"`
	Winners    []string       `json:"winners"`
	PointAward int            `json:"point_award"`
}

// RejectReason explains why a submission was discarded.
type RejectReason int

const (
	RejectNotEligible RejectReason = iota
	RejectOutOfDomain
)

func (r RejectReason) String() string {
	switch r {
	case RejectNotEligible:
		return "not eligible"
	case RejectOutOfDomain:
		return "out of domain"
	default:
		return "rejected"
	}
}

// Announcer is the outward announcement channel for a round. Announce posts
// the invitation with one input per choice in 1..domain and returns a handle
// to the posted prompt.
type Announcer interface {
	Announce(content string, domain int) (PromptHandle, error)
}

// PromptHandle is one posted invitation. Edit updates the visible content
// only; Finalize replaces the content and disables the input surface.
type PromptHandle interface {
	ID() string
	Edit(content string) error
	Finalize(content string) error
}

// Submission is one inbound choice from a participant. Accept and Reject
// answer the submitter; neither may block the collector for long.
type Submission interface {
	ParticipantID() string
	Value() int
	Accept(value int)
	Reject(reason RejectReason)
}

// SubmissionSource delivers submissions bound to a specific prompt. The
// collector subscribes for the duration of the acceptance window only;
// submissions referencing other prompts never reach it.
type SubmissionSource interface {
	Open(promptID string) <-chan Submission
	Close(promptID string)
}

// NameResolver looks up a participant's display name. The second return is
// false when no name is known.
type NameResolver interface {
	DisplayName(id string) (string, bool)
}
