package discord

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// mockSession records what the bridge sends to Discord
type mockSession struct {
	mu        sync.Mutex
	nextID    int
	sent      map[string]*discordgo.MessageSend
	edits     []*discordgo.MessageEdit
	deleted   []string
	responses []*discordgo.InteractionResponse

	sendErr error
}

func newMockSession() *mockSession {
	return &mockSession{sent: make(map[string]*discordgo.MessageSend)}
}

func (m *mockSession) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
	return nil
}

func (m *mockSession) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return nil, m.sendErr
	}
	m.nextID++
	id := fmt.Sprintf("d%d", m.nextID)
	m.sent[id] = data
	return &discordgo.Message{ID: id, ChannelID: channelID}, nil
}

func (m *mockSession) ChannelMessageEditComplex(edit *discordgo.MessageEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edits = append(m.edits, edit)
	return &discordgo.Message{ID: edit.ID, ChannelID: edit.Channel}, nil
}

func (m *mockSession) ChannelMessageDelete(_, messageID string, _ ...discordgo.RequestOption) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, messageID)
	return nil
}

func (m *mockSession) lastResponse() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.responses) == 0 {
		return ""
	}
	return m.responses[len(m.responses)-1].Data.Content
}

func (m *mockSession) lastComponents() []discordgo.MessageComponent {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.responses) == 0 {
		return nil
	}
	return m.responses[len(m.responses)-1].Data.Components
}

// lastEdit returns the newest edit of a Discord message
func (m *mockSession) lastEdit(discordID string) *discordgo.MessageEdit {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.edits) - 1; i >= 0; i-- {
		if m.edits[i].ID == discordID {
			return m.edits[i]
		}
	}
	return nil
}

func (m *mockSession) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}
