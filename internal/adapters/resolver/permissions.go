package resolver

import (
	"flight/internal/core/domain"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

var PermissionNames = map[int64]string{
	discordgo.PermissionCreateInstantInvite:   "Create Instant Invite",
	discordgo.PermissionKickMembers:           "Kick Members",
	discordgo.PermissionBanMembers:            "Ban Members",
	discordgo.PermissionAdministrator:         "Administrator",
	discordgo.PermissionManageChannels:        "Manage Channels",
	discordgo.PermissionManageGuild:           "Manage Server",
	discordgo.PermissionAddReactions:          "Add Reactions",
	discordgo.PermissionViewAuditLogs:         "View Audit Logs",
	discordgo.PermissionViewChannel:           "View Channel",
	discordgo.PermissionSendMessages:          "Send Messages",
	discordgo.PermissionSendTTSMessages:       "Send TTS Messages",
	discordgo.PermissionManageMessages:        "Manage Messages",
	discordgo.PermissionEmbedLinks:            "Embed Links",
	discordgo.PermissionAttachFiles:           "Attach Files",
	discordgo.PermissionReadMessageHistory:    "Read Message History",
	discordgo.PermissionMentionEveryone:       "Mention Everyone",
	discordgo.PermissionUseExternalEmojis:     "Use External Emojis",
	discordgo.PermissionManageThreads:         "Manage Threads",
	discordgo.PermissionCreatePublicThreads:   "Create Public Threads",
	discordgo.PermissionCreatePrivateThreads:  "Create Private Threads",
	discordgo.PermissionSendMessagesInThreads: "Send Messages in Threads",
	discordgo.PermissionVoicePrioritySpeaker:  "Priority Speaker",
	discordgo.PermissionVoiceStreamVideo:      "Stream Video",
	discordgo.PermissionVoiceConnect:          "Connect to Voice Channel",
	discordgo.PermissionVoiceSpeak:            "Speak",
	discordgo.PermissionVoiceMuteMembers:      "Mute Members",
	discordgo.PermissionVoiceDeafenMembers:    "Deafen Members",
	discordgo.PermissionVoiceMoveMembers:      "Move Members",
	discordgo.PermissionVoiceUseVAD:           "Use Voice Activity Detection",
	discordgo.PermissionChangeNickname:        "Change Nickname",
	discordgo.PermissionManageNicknames:       "Manage Nicknames",
	discordgo.PermissionManageRoles:           "Manage Roles",
	discordgo.PermissionManageWebhooks:        "Manage Webhooks",
	discordgo.PermissionManageEvents:          "Manage Events",
	discordgo.PermissionViewGuildInsights:     "View Guild Insights",
	discordgo.PermissionModerateMembers:       "Moderate Members",
}

// DescribePermissions lists the names of the set bits, unknown bits as hex.
func DescribePermissions(p domain.Permissions) string {
	var names []string
	for _, bit := range p.Bits() {
		name := PermissionNames[int64(bit)]
		if name == "" {
			name = fmt.Sprintf("0x%x", int64(bit))
		}
		names = append(names, name)
	}

	return strings.Join(names, ", ")
}
