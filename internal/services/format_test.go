package services

import (
	"strings"
	"testing"

	"github.com/assistec/go-whats-backend/internal/domain"
)

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{189.9, "189,90"},
		{0, "0,00"},
		{1234.5, "1234,50"},
		{89.99, "89,99"},
		{100, "100,00"},
	}
	for _, tc := range cases {
		if got := FormatPrice(tc.in); got != tc.want {
			t.Errorf("FormatPrice(%v) = %q; want %q", tc.in, got, tc.want)
		}
	}
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"189,90", 189.9, false},
		{"189.90", 189.9, false},
		{"R$ 189,90", 189.9, false},
		{" 89,99 ", 89.99, false},
		{"0", 0, false},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := ParsePrice(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParsePrice(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParsePrice(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
	}
}

func TestParsePrice_RoundTrip(t *testing.T) {
	for _, v := range []float64{0, 9.9, 189.9, 1234.56} {
		got, err := ParsePrice(FormatPrice(v))
		if err != nil || got != v {
			t.Errorf("round trip %v: got %v, %v", v, got, err)
		}
	}
}

func TestFormatProductResponse(t *testing.T) {
	p := domain.Product{
		Name:        "Frontal Galaxy S20",
		DeviceModel: "Galaxy S20",
		Description: "Original, com película",
		Price:       189.9,
		Quantity:    5,
	}
	got := FormatProductResponse(p)

	for _, want := range []string{
		"Produto disponível",
		"Frontal Galaxy S20",
		"Galaxy S20",
		"R$ 189,90",
		"5 unidades",
		"Original, com película",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("response missing %q:\n%s", want, got)
		}
	}
}

func TestFormatProductResponse_NoDescription(t *testing.T) {
	p := domain.Product{Name: "Bateria", DeviceModel: "iPhone 12", Price: 99, Quantity: 1}
	got := FormatProductResponse(p)
	if strings.Contains(got, "📝") {
		t.Fatalf("description line should be omitted:\n%s", got)
	}
}

func TestFormatNotFoundResponse(t *testing.T) {
	got := FormatNotFoundResponse("Assistec")
	if !strings.Contains(got, "Assistec") {
		t.Fatalf("assistant name missing:\n%s", got)
	}
	if !strings.Contains(got, "Modelo completo") {
		t.Fatalf("clarification prompt missing:\n%s", got)
	}
}

func TestFormatErrorResponse(t *testing.T) {
	got := FormatErrorResponse("Assistec")
	if !strings.Contains(got, "Assistec") || !strings.Contains(got, "dificuldades técnicas") {
		t.Fatalf("unexpected error template:\n%s", got)
	}
}
