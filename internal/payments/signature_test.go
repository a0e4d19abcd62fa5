package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"event":"payment_link.paid"}`)
	secret := "whsec_test"

	if !VerifySignature(body, sign(body, secret), secret) {
		t.Fatal("expected valid signature to verify")
	}
}

func TestVerifySignatureTampered(t *testing.T) {
	body := []byte(`{"event":"payment_link.paid"}`)
	secret := "whsec_test"

	if VerifySignature(body, sign(body, secret)+"x", secret) {
		t.Fatal("expected appended signature to fail")
	}
	if VerifySignature(append(body, ' '), sign(body, secret), secret) {
		t.Fatal("expected modified body to fail")
	}
	if VerifySignature(body, sign(body, "other-secret"), secret) {
		t.Fatal("expected wrong secret to fail")
	}
}

func TestVerifySignatureMissingInputs(t *testing.T) {
	body := []byte("{}")
	if VerifySignature(body, "", "secret") {
		t.Fatal("expected empty signature to fail")
	}
	if VerifySignature(body, sign(body, ""), "") {
		t.Fatal("expected empty secret to fail")
	}
}
