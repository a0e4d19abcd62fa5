package payments

import (
	"errors"
	"testing"
)

func TestEncodeDescription(t *testing.T) {
	got := EncodeDescription("Goa Beach Escape", "15-Jan-25", "GOA123")
	want := "Payment for Goa Beach Escape and date: 15-Jan-25 and Exp code: GOA123"
	if got != want {
		t.Fatalf("EncodeDescription = %q, want %q", got, want)
	}
}

func TestDescriptionRoundTrip(t *testing.T) {
	tests := []struct {
		title string
		date  string
		code  string
	}{
		{"Goa Beach Escape", "15-Jan-25", "GOA123"},
		{"Manali Winter Trek", "02-Feb-26", "MAN7"},
		{"Rann of Kutch", "28-Dec-25", "KUTCH01"},
	}
	for _, tt := range tests {
		encoded := EncodeDescription(tt.title, tt.date, tt.code)
		title, date, code, err := DecodeDescription(encoded)
		if err != nil {
			t.Fatalf("DecodeDescription(%q) returned error: %v", encoded, err)
		}
		if title != tt.title || date != tt.date || code != tt.code {
			t.Errorf("round trip mismatch: got (%q, %q, %q), want (%q, %q, %q)",
				title, date, code, tt.title, tt.date, tt.code)
		}
	}
}

func TestDecodeDescriptionMalformed(t *testing.T) {
	tests := []string{
		"",
		"Payment for Goa Beach Escape",
		"Refund for Goa and date: 15-Jan-25 and Exp code: GOA123",
		"random text",
	}
	for _, desc := range tests {
		if _, _, _, err := DecodeDescription(desc); !errors.Is(err, ErrMalformedDescription) {
			t.Errorf("DecodeDescription(%q): expected ErrMalformedDescription, got %v", desc, err)
		}
	}
}

func TestDecodeDescriptionCaseInsensitive(t *testing.T) {
	title, date, code, err := DecodeDescription("payment for Goa Beach Escape and date: 15-Jan-25 and Exp code: GOA123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if title != "Goa Beach Escape" || date != "15-Jan-25" || code != "GOA123" {
		t.Fatalf("unexpected decode result (%q, %q, %q)", title, date, code)
	}
}
