package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// VerifySignature checks a webhook signature: HMAC-SHA256 over the exact
// raw body, hex encoded. The comparison is constant time and failures are
// reported as false, never as an error, because the caller must acknowledge
// the delivery either way.
func VerifySignature(rawBody []byte, signature, secret string) bool {
	if secret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))
	actual := strings.ToLower(strings.TrimSpace(signature))
	return hmac.Equal([]byte(expected), []byte(actual))
}
