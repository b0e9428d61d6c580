package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

const (
	permAdministrator int64 = discordgo.PermissionAdministrator
	permManageServer  int64 = discordgo.PermissionManageServer

	// the bot needs both in every channel it posts embeds to
	permPostEmbeds int64 = discordgo.PermissionSendMessages | discordgo.PermissionEmbedLinks
)

// memberHas reports whether the invoking member holds perm. Interaction
// payloads carry the member's computed permissions for the channel.
func memberHas(i *discordgo.InteractionCreate, perm int64) bool {
	if i.Member == nil {
		return false
	}
	p := i.Member.Permissions
	return p&permAdministrator != 0 || p&perm == perm
}

// botCanPost checks the bot's permissions in channelID, falling back to
// the REST API when the state cache has not seen the channel.
func botCanPost(s *discordgo.Session, channelID string) (bool, error) {
	botID := s.State.User.ID
	perms, err := s.State.UserChannelPermissions(botID, channelID)
	if err != nil {
		perms, err = s.UserChannelPermissions(botID, channelID)
		if err != nil {
			return false, fmt.Errorf("failed to get permissions: %w", err)
		}
	}
	return perms&permAdministrator != 0 || perms&permPostEmbeds == permPostEmbeds, nil
}

// missingPostPermissions returns the mentions of channels the bot cannot post embeds in
func missingPostPermissions(s *discordgo.Session, channelIDs ...string) ([]string, error) {
	var missing []string
	for _, id := range channelIDs {
		ok, err := botCanPost(s, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			missing = append(missing, channelMention(id))
		}
	}
	return missing, nil
}
