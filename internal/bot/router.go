package bot

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/cmaddox5/holderbot/internal/game"
)

// submissionBuffer bounds how many unprocessed picks can queue between the
// Discord handler goroutines and the collector.
const submissionBuffer = 64

// submissionRouter routes component interactions to the collector of the
// prompt they belong to. Only the currently open prompt has a channel;
// interactions against any other prompt are treated as rejected input.
type submissionRouter struct {
	mu   sync.Mutex
	open map[string]chan game.Submission
}

func newSubmissionRouter() *submissionRouter {
	return &submissionRouter{open: make(map[string]chan game.Submission)}
}

func (r *submissionRouter) Open(promptID string) <-chan game.Submission {
	ch := make(chan game.Submission, submissionBuffer)
	r.mu.Lock()
	r.open[promptID] = ch
	r.mu.Unlock()
	return ch
}

func (r *submissionRouter) Close(promptID string) {
	r.mu.Lock()
	delete(r.open, promptID)
	r.mu.Unlock()
}

// dispatch hands a submission to the prompt's collector. Returns false when
// the prompt has no open window (closed, stale, or the queue is full), in
// which case the caller answers the submitter directly.
func (r *submissionRouter) dispatch(promptID string, sub game.Submission) bool {
	r.mu.Lock()
	ch, ok := r.open[promptID]
	r.mu.Unlock()
	if !ok {
		return false
	}
	select {
	case ch <- sub:
		return true
	default:
		log.Warn().Str("prompt_id", promptID).Msg("submission queue full; dropping pick")
		return false
	}
}

// componentSubmission adapts one button interaction to game.Submission.
// Accept and Reject answer the interaction with an ephemeral message.
type componentSubmission struct {
	session     *discordgo.Session
	interaction *discordgo.InteractionCreate
	value       int
}

func (c *componentSubmission) ParticipantID() string {
	return interactionUser(c.interaction).ID
}

func (c *componentSubmission) Value() int { return c.value }

func (c *componentSubmission) Accept(value int) {
	c.respond(fmt.Sprintf("🎲 You picked **%d**. Good luck!", value))
}

func (c *componentSubmission) Reject(reason game.RejectReason) {
	switch reason {
	case game.RejectNotEligible:
		c.respond("You need a linked wallet holding at least one token to play this round.")
	case game.RejectOutOfDomain:
		c.respond("That pick is not on the die.")
	default:
		c.respond("Your pick was not accepted.")
	}
}

func (c *componentSubmission) respond(content string) {
	err := c.session.InteractionRespond(c.interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Warn().Err(err).Str("participant_id", c.ParticipantID()).Msg("failed to answer pick interaction")
	}
}
