package receipt

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spacbotltd/spacbot-api/internal/receipt"
)

var testPricing = receipt.Pricing{Below13: 1000, AtOrAbove13: 1500}

func post(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/receipts", bytes.NewReader([]byte(body)))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestNewRendersPDF(t *testing.T) {
	handler := New(testPricing, time.UTC)

	body := `{
		"student_name": "Ama Mensah",
		"payment_method": "Mobile Money",
		"amount_paid": 1000,
		"items": [
			{"program": "Arduino", "age_category": "13 and Above"}
		]
	}`
	rec := post(t, handler, body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q, want application/pdf", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != "attachment; filename=receipt_Ama_Mensah.pdf" {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Error("body is not a PDF document")
	}
}

func TestNewRejectsBadRequests(t *testing.T) {
	handler := New(testPricing, time.UTC)

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"missing student name", `{"payment_method":"Cash","amount_paid":0,"items":[{"program":"Arduino","age_category":"Below 13"}]}`},
		{"empty items", `{"student_name":"Ama","payment_method":"Cash","amount_paid":0,"items":[]}`},
		{"negative amount paid", `{"student_name":"Ama","payment_method":"Cash","amount_paid":-5,"items":[{"program":"Arduino","age_category":"Below 13"}]}`},
		{"unknown age category", `{"student_name":"Ama","payment_method":"Cash","amount_paid":0,"items":[{"program":"Arduino","age_category":"Teen"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, handler, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400; body: %s", rec.Code, rec.Body)
			}
		})
	}
}

func TestPricing(t *testing.T) {
	handler := Pricing(testPricing)

	req := httptest.NewRequest(http.MethodGet, "/api/pricing", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var table map[string]float64
	if err := json.Unmarshal(rec.Body.Bytes(), &table); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if table["below_13"] != 1000 || table["at_or_above_13"] != 1500 {
		t.Errorf("pricing = %v", table)
	}
}

func TestDownloadName(t *testing.T) {
	tests := []struct {
		student string
		want    string
	}{
		{"Ama Mensah", "receipt_Ama_Mensah.pdf"},
		{"O'Brien", "receipt_O_Brien.pdf"},
		{"kid42", "receipt_kid42.pdf"},
	}

	for _, tt := range tests {
		if got := downloadName(tt.student); got != tt.want {
			t.Errorf("downloadName(%q) = %q, want %q", tt.student, got, tt.want)
		}
	}
}
