package messaging

import "context"

// ReplyButton is one quick-reply option attached to an interactive message.
type ReplyButton struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Provider sends WhatsApp messages. Implementations must apply the
// 1024-character cap; callers treat sends as best-effort.
type Provider interface {
	SendText(ctx context.Context, to, text string) error
	SendImage(ctx context.Context, to, caption, mediaURL string) error
	SendReplyButtons(ctx context.Context, to, text string, buttons []ReplyButton) error
}
