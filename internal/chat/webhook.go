package chat

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// WebhookTransport delivers outbound messages to the chat gateway over
// HTTP. The gateway owns the actual network connection; the bot only
// hands it text. With no gateway configured, messages are logged and
// dropped, which keeps drills and local runs harmless.
type WebhookTransport struct {
	url    string
	http   *http.Client
	logger *zap.Logger
}

// NewWebhookTransport creates a transport posting to the gateway URL.
func NewWebhookTransport(url string, logger *zap.Logger) *WebhookTransport {
	return &WebhookTransport{
		url:    url,
		http:   &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

type outboundMessage struct {
	Kind   string `json:"kind"`
	Target string `json:"target"`
	Text   string `json:"text"`
}

// Send posts a message to a channel.
func (t *WebhookTransport) Send(channel, text string) {
	t.deliver(outboundMessage{Kind: "send", Target: channel, Text: text})
}

// SendPrivate delivers a message only the user can see.
func (t *WebhookTransport) SendPrivate(user, text string) {
	t.deliver(outboundMessage{Kind: "private", Target: user, Text: text})
}

// SendAction posts an emote-style message to a channel.
func (t *WebhookTransport) SendAction(channel, text string) {
	t.deliver(outboundMessage{Kind: "action", Target: channel, Text: text})
}

func (t *WebhookTransport) deliver(msg outboundMessage) {
	if t.url == "" {
		t.logger.Info("outbound chat message (no gateway configured)",
			zap.String("kind", msg.Kind),
			zap.String("target", msg.Target),
			zap.String("text", msg.Text))
		return
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		t.logger.Error("encode outbound message", zap.Error(err))
		return
	}
	resp, err := t.http.Post(t.url, "application/json", bytes.NewReader(payload))
	if err != nil {
		t.logger.Warn("gateway delivery failed",
			zap.String("target", msg.Target),
			zap.Error(err))
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		t.logger.Warn("gateway rejected message",
			zap.String("target", msg.Target),
			zap.Int("status", resp.StatusCode))
	}
}
