package payments

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

const defaultRazorpayBaseURL = "https://api.razorpay.com/v1"

// RazorpayConfig controls how the Razorpay client behaves.
type RazorpayConfig struct {
	BaseURL    string
	KeyID      string
	KeySecret  string
	Timeout    time.Duration
	MaxRetries int
	Backoff    time.Duration
	HTTPClient *http.Client
	Logger     *logging.Logger
}

// RazorpayClient wraps the Razorpay payment-links endpoint.
type RazorpayClient struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient *http.Client
	maxRetries int
	backoff    time.Duration
	logger     *logging.Logger
}

// NewRazorpayClient creates a configured client with sane defaults.
func NewRazorpayClient(cfg RazorpayConfig) (*RazorpayClient, error) {
	if strings.TrimSpace(cfg.KeyID) == "" || strings.TrimSpace(cfg.KeySecret) == "" {
		return nil, errors.New("razorpay: key id and secret are required")
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultRazorpayBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
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
	return &RazorpayClient{
		baseURL:    baseURL,
		keyID:      cfg.KeyID,
		keySecret:  cfg.KeySecret,
		httpClient: httpClient,
		maxRetries: maxRetries,
		backoff:    backoff,
		logger:     logger,
	}, nil
}

// LinkRequest describes one payment link to create. Amount is in paise.
type LinkRequest struct {
	AmountPaise   int64
	Currency      string
	Description   string
	CustomerName  string
	CustomerPhone string
	NotifySMS     bool
}

// NewLinkRequest builds the descriptor for a booking advance: rupees go to
// paise on the wire and the description carries the booking tuple.
func NewLinkRequest(advanceRupees int64, packageTitle, tripDate, experienceCode, customerName, customerPhone string) LinkRequest {
	return LinkRequest{
		AmountPaise:   advanceRupees * 100,
		Currency:      "INR",
		Description:   EncodeDescription(packageTitle, tripDate, experienceCode),
		CustomerName:  customerName,
		CustomerPhone: customerPhone,
		NotifySMS:     true,
	}
}

// PaymentLink is the provider's created-link record.
type PaymentLink struct {
	ID       string `json:"id"`
	ShortURL string `json:"short_url"`
	Status   string `json:"status"`
}

type linkRequestBody struct {
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
	Customer    struct {
		Name    string `json:"name"`
		Contact string `json:"contact"`
	} `json:"customer"`
	Notify struct {
		SMS bool `json:"sms"`
	} `json:"notify"`
}

// CreatePaymentLink creates a payment link and returns its record.
func (c *RazorpayClient) CreatePaymentLink(ctx context.Context, req LinkRequest) (*PaymentLink, error) {
	if req.AmountPaise <= 0 {
		return nil, errors.New("razorpay: amount must be positive")
	}

	var payload linkRequestBody
	payload.Amount = req.AmountPaise
	payload.Currency = req.Currency
	payload.Description = req.Description
	payload.Customer.Name = req.CustomerName
	payload.Customer.Contact = req.CustomerPhone
	payload.Notify.SMS = req.NotifySMS

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("razorpay: marshal link body: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payment_links", bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("razorpay: build request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.SetBasicAuth(c.keyID, c.keySecret)

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("razorpay: http error: %w", err)
		} else {
			data, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			if readErr != nil {
				return nil, fmt.Errorf("razorpay: read response: %w", readErr)
			}
			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				var link PaymentLink
				if err := json.Unmarshal(data, &link); err != nil {
					return nil, fmt.Errorf("razorpay: decode response: %w", err)
				}
				return &link, nil
			}
			lastErr = fmt.Errorf("razorpay: status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
			if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode < 500 {
				return nil, lastErr
			}
		}

		if attempt < c.maxRetries {
			c.logger.Warn("razorpay create link retrying", "attempt", attempt+1, "error", lastErr)
			timer := time.NewTimer(c.backoff * time.Duration(attempt+1))
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}
	}
	return nil, lastErr
}
