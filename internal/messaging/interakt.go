package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tripuva/booking-relay/pkg/logging"
)

const (
	defaultInteraktBaseURL = "https://api.interakt.ai/v1/public/message/"
	defaultCountryCode     = "+91"
	callbackData           = "response_sent"

	messageTypeText        = "Text"
	messageTypeImage       = "Image"
	messageTypeInteractive = "InteractiveButton"
)

// InteraktConfig controls how the Interakt client behaves.
type InteraktConfig struct {
	BaseURL     string
	APIKey      string
	Secret      string
	CountryCode string
	Timeout     time.Duration
	MaxRetries  int
	Backoff     time.Duration
	HTTPClient  *http.Client
	Logger      *logging.Logger
}

// InteraktClient sends WhatsApp messages through the Interakt public
// message API. It implements Provider.
type InteraktClient struct {
	baseURL     string
	apiKey      string
	secret      string
	countryCode string
	httpClient  *http.Client
	maxRetries  int
	backoff     time.Duration
	logger      *logging.Logger
}

// NewInteraktClient creates a configured client with sane defaults.
func NewInteraktClient(cfg InteraktConfig) (*InteraktClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("interakt: API key is required")
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultInteraktBaseURL
	}
	countryCode := strings.TrimSpace(cfg.CountryCode)
	if countryCode == "" {
		countryCode = defaultCountryCode
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = 250 * time.Millisecond
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &InteraktClient{
		baseURL:     baseURL,
		apiKey:      cfg.APIKey,
		secret:      cfg.Secret,
		countryCode: countryCode,
		httpClient:  httpClient,
		maxRetries:  maxRetries,
		backoff:     backoff,
		logger:      logger,
	}, nil
}

type interaktEnvelope struct {
	CountryCode  string `json:"countryCode"`
	PhoneNumber  string `json:"phoneNumber"`
	CallbackData string `json:"callbackData"`
	Type         string `json:"type"`
	Data         any    `json:"data"`
}

type textData struct {
	Message    string `json:"message"`
	PreviewURL bool   `json:"preview_url"`
}

type imageData struct {
	Caption  string `json:"caption"`
	MediaURL string `json:"mediaUrl"`
	Message  string `json:"message"`
}

type interactiveData struct {
	Message    string        `json:"message"`
	PreviewURL bool          `json:"preview_url"`
	Buttons    []ReplyButton `json:"buttons"`
}

// SendText sends a plain text message.
func (c *InteraktClient) SendText(ctx context.Context, to, text string) error {
	return c.send(ctx, to, messageTypeText, textData{Message: TruncateMessage(text)})
}

// SendImage sends an image with a caption.
func (c *InteraktClient) SendImage(ctx context.Context, to, caption, mediaURL string) error {
	caption = TruncateMessage(caption)
	return c.send(ctx, to, messageTypeImage, imageData{Caption: caption, MediaURL: mediaURL, Message: caption})
}

// SendReplyButtons sends a text body with quick-reply buttons.
func (c *InteraktClient) SendReplyButtons(ctx context.Context, to, text string, buttons []ReplyButton) error {
	return c.send(ctx, to, messageTypeInteractive, interactiveData{Message: TruncateMessage(text), Buttons: buttons})
}

func (c *InteraktClient) send(ctx context.Context, to, messageType string, data any) error {
	body, err := json.Marshal(interaktEnvelope{
		CountryCode:  c.countryCode,
		PhoneNumber:  NormalizeLocal(to),
		CallbackData: callbackData,
		Type:         messageType,
		Data:         data,
	})
	if err != nil {
		return fmt.Errorf("interakt: marshal send body: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("interakt: build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Basic "+c.apiKey)
		if c.secret != "" {
			req.Header.Set("x-interakt-secret", c.secret)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = fmt.Errorf("interakt: http error: %w", err)
		} else {
			respBody, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			if readErr != nil {
				return fmt.Errorf("interakt: read response: %w", readErr)
			}
			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				c.logger.Debug("interakt message sent", "type", messageType)
				return nil
			}
			lastErr = fmt.Errorf("interakt: status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
			if !retryableStatus(resp.StatusCode) {
				return lastErr
			}
		}

		if attempt < c.maxRetries {
			c.logger.Warn("interakt send retrying", "attempt", attempt+1, "error", lastErr)
			if err := sleepCtx(ctx, c.backoff*time.Duration(attempt+1)); err != nil {
				return err
			}
		}
	}
	return lastErr
}

func retryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
