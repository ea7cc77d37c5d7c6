package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	dnderr "github.com/KirkDiggler/saves-helper/internal/errors"
)

// ChannelNotifier posts damage warnings to the table channel
type ChannelNotifier struct {
	session   DiscordSession
	channelID string
}

// NewChannelNotifier creates a notifier for one channel
func NewChannelNotifier(session DiscordSession, channelID string) *ChannelNotifier {
	if session == nil {
		panic("session is required")
	}
	if channelID == "" {
		panic("channel id is required")
	}
	return &ChannelNotifier{session: session, channelID: channelID}
}

// Notify sends message as a plain channel post
func (n *ChannelNotifier) Notify(ctx context.Context, message string) error {
	_, err := n.session.ChannelMessageSendComplex(n.channelID, &discordgo.MessageSend{
		Content: "⚠️ " + message,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to notify channel")
	}
	return nil
}
