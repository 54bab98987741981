package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/cmaddox5/holderbot/internal/game"
)

const pickCustomIDPrefix = "dice_pick"

// channelAnnouncer posts round prompts into the configured channel. Each
// choice in the domain gets its own button; the prompt message ID is the
// handle the collector binds submissions to.
type channelAnnouncer struct {
	session   *discordgo.Session
	channelID string
}

func (a *channelAnnouncer) Announce(content string, domain int) (game.PromptHandle, error) {
	msg, err := a.session.ChannelMessageSendComplex(a.channelID, &discordgo.MessageSend{
		Content:    content,
		Components: pickButtons(domain, false),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to post round prompt: %w", err)
	}
	return &promptMessage{
		session:   a.session,
		channelID: msg.ChannelID,
		messageID: msg.ID,
		domain:    domain,
	}, nil
}

// promptMessage is one posted invitation message.
type promptMessage struct {
	session   *discordgo.Session
	channelID string
	messageID string
	domain    int
}

func (p *promptMessage) ID() string { return p.messageID }

func (p *promptMessage) Edit(content string) error {
	_, err := p.session.ChannelMessageEdit(p.channelID, p.messageID, content)
	return err
}

// Finalize replaces the content and disables every pick button.
func (p *promptMessage) Finalize(content string) error {
	disabled := pickButtons(p.domain, true)
	_, err := p.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    p.channelID,
		ID:         p.messageID,
		Content:    &content,
		Components: &disabled,
	})
	return err
}

// pickButtons lays the domain out as rows of up to five buttons, the
// Discord per-row maximum.
func pickButtons(domain int, disabled bool) []discordgo.MessageComponent {
	var rows []discordgo.MessageComponent
	var row []discordgo.MessageComponent
	for value := 1; value <= domain; value++ {
		row = append(row, discordgo.Button{
			Label:    strconv.Itoa(value),
			Style:    discordgo.PrimaryButton,
			CustomID: fmt.Sprintf("%s:%d", pickCustomIDPrefix, value),
			Disabled: disabled,
		})
		if len(row) == 5 {
			rows = append(rows, discordgo.ActionsRow{Components: row})
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, discordgo.ActionsRow{Components: row})
	}
	return rows
}

// parsePickCustomID extracts the chosen value from a pick button's custom
// ID. The second return is false for unrelated component IDs.
func parsePickCustomID(customID string) (int, bool) {
	prefix, rest, found := strings.Cut(customID, ":")
	if !found || prefix != pickCustomIDPrefix {
		return 0, false
	}
	value, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return value, true
}
