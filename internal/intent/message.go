package intent

import (
	"encoding/json"
	"strings"
)

// Message is one inbound WhatsApp message, as handed over by the
// messaging-provider webhook.
type Message struct {
	Text        string
	ButtonTitle string
	SenderPhone string
	SenderName  string
}

type buttonReplyPayload struct {
	ButtonReply struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"button_reply"`
}

// NewMessage builds a Message from the raw webhook text. Interakt delivers
// quick-reply button taps as a JSON object embedded in the message string;
// the button title is pulled out so the classifier can match on it.
func NewMessage(rawText, senderPhone, senderName string) Message {
	msg := Message{
		Text:        rawText,
		SenderPhone: senderPhone,
		SenderName:  senderName,
	}

	trimmed := strings.TrimSpace(rawText)
	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		var payload buttonReplyPayload
		if err := json.Unmarshal([]byte(trimmed), &payload); err == nil {
			msg.ButtonTitle = strings.TrimSpace(payload.ButtonReply.Title)
		}
	}
	return msg
}

// EffectiveText returns the message text, falling back to the button title
// only when the text is empty. Non-empty text always wins.
func (m Message) EffectiveText() string {
	if m.Text == "" && m.ButtonTitle != "" {
		return m.ButtonTitle
	}
	return m.Text
}
