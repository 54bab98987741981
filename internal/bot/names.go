package bot

import (
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// nameCache resolves participant display names from the guild, caching
// lookups for the life of the process.
type nameCache struct {
	session *discordgo.Session
	guildID string

	mu    sync.RWMutex
	names map[string]string
}

func newNameCache(session *discordgo.Session, guildID string) *nameCache {
	return &nameCache{
		session: session,
		guildID: guildID,
		names:   make(map[string]string),
	}
}

func (n *nameCache) DisplayName(id string) (string, bool) {
	n.mu.RLock()
	name, ok := n.names[id]
	n.mu.RUnlock()
	if ok {
		return name, true
	}

	member, err := n.session.GuildMember(n.guildID, id)
	if err != nil {
		log.Debug().Err(err).Str("participant_id", id).Msg("guild member lookup failed")
		return "", false
	}
	name = memberName(member)
	if name == "" {
		return "", false
	}

	n.mu.Lock()
	n.names[id] = name
	n.mu.Unlock()
	return name, true
}

// observe seeds the cache from a member seen on an interaction, avoiding a
// REST lookup later.
func (n *nameCache) observe(member *discordgo.Member) {
	if member == nil || member.User == nil {
		return
	}
	name := memberName(member)
	if name == "" {
		return
	}
	n.mu.Lock()
	n.names[member.User.ID] = name
	n.mu.Unlock()
}

func memberName(member *discordgo.Member) string {
	if member.Nick != "" {
		return member.Nick
	}
	if member.User == nil {
		return ""
	}
	if member.User.GlobalName != "" {
		return member.User.GlobalName
	}
	return member.User.Username
}
