// Package chat defines the boundary to the chat transport. The transport
// itself (protocol handling, channel membership, identity) is an external
// collaborator; the bot only consumes inbound messages and sends text back.
package chat

import "strings"

// Message is one inbound channel or private message.
type Message struct {
	Sender  string            `json:"sender"`
	Account string            `json:"account,omitempty"`
	Host    string            `json:"host,omitempty"`
	Channel string            `json:"channel,omitempty"`
	Text    string            `json:"text"`
	Tags    map[string]string `json:"tags,omitempty"`
	Admin   bool              `json:"admin,omitempty"`
}

// IsPlayback reports whether the message is replayed history rather than
// live traffic. Replayed lines must never trigger case mutations.
func (m Message) IsPlayback() bool {
	_, ok := m.Tags["batch"]
	return ok
}

// IsCommand reports whether the message starts with the command prefix.
func (m Message) IsCommand(prefix string) bool {
	return prefix != "" && strings.HasPrefix(m.Text, prefix)
}

// Transport sends text back to the chat network.
type Transport interface {
	// Send posts a message to a channel.
	Send(channel, text string)
	// SendPrivate delivers a message only the user can see.
	SendPrivate(user, text string)
	// SendAction posts an emote-style message to a channel.
	SendAction(channel, text string)
}
