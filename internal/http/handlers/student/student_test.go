package student

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spacbotltd/spacbot-api/internal/config"
	"github.com/spacbotltd/spacbot-api/internal/notify"
	"github.com/spacbotltd/spacbot-api/internal/storage/sqlite"
)

// fakeOutbox records enqueued messages without sending anything.
type fakeOutbox struct {
	msgs []notify.Message
}

func (f *fakeOutbox) Enqueue(msg notify.Message) string {
	f.msgs = append(f.msgs, msg)
	return "job-1"
}

func testStore(t *testing.T) *sqlite.SQLite {
	t.Helper()

	cfg := &config.Config{
		StoragePath:     filepath.Join(t.TempDir(), "spacbot.db"),
		StudentIDPrefix: "SPAC",
	}
	s, err := sqlite.New(cfg)
	if err != nil {
		t.Fatalf("sqlite.New() error = %v", err)
	}
	t.Cleanup(func() { s.Db.Close() })
	return s
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/students", bytes.NewReader([]byte(body)))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

const validBody = `{"name":"Ama Mensah","email":"ama@example.com","password":"s3cret","program":"Robotics"}`

func TestRegister(t *testing.T) {
	store := testStore(t)
	outbox := &fakeOutbox{}
	handler := New(store, outbox, "admin@example.com", time.UTC)

	rec := postJSON(t, handler, validBody)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}

	wantID := fmt.Sprintf("SPAC%d-001", time.Now().UTC().Year())
	if resp["student_id"] != wantID {
		t.Errorf("student_id = %q, want %q", resp["student_id"], wantID)
	}

	// The record must be retrievable, with the password hashed.
	st, err := store.GetStudentByID(wantID)
	if err != nil {
		t.Fatalf("GetStudentByID(%q) error = %v", wantID, err)
	}
	if st.PasswordHash == "s3cret" || len(st.PasswordHash) != 64 {
		t.Errorf("PasswordHash = %q, want 64-char SHA-256 hex digest", st.PasswordHash)
	}

	// Two notifications: welcome to the registrant, alert to the admin
	// with the CSV export attached.
	if len(outbox.msgs) != 2 {
		t.Fatalf("enqueued %d messages, want 2", len(outbox.msgs))
	}
	welcome, alert := outbox.msgs[0], outbox.msgs[1]
	if welcome.Kind != notify.KindWelcome || welcome.To != "ama@example.com" {
		t.Errorf("first message = %s to %s", welcome.Kind, welcome.To)
	}
	if alert.Kind != notify.KindAdminAlert || alert.To != "admin@example.com" {
		t.Errorf("second message = %s to %s", alert.Kind, alert.To)
	}
	if alert.Attachment == nil {
		t.Fatal("admin alert has no attachment")
	}
	if !strings.Contains(string(alert.Attachment.Data), "ama@example.com") {
		t.Error("admin alert CSV does not contain the new registration")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := testStore(t)
	outbox := &fakeOutbox{}
	handler := New(store, outbox, "admin@example.com", time.UTC)

	if rec := postJSON(t, handler, validBody); rec.Code != http.StatusCreated {
		t.Fatalf("first register status = %d", rec.Code)
	}

	second := `{"name":"Other","email":"ama@example.com","password":"pw","program":"Electronics"}`
	rec := postJSON(t, handler, second)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register status = %d, want 409; body: %s", rec.Code, rec.Body)
	}

	// Exactly one row, and only the first registration's two messages.
	students, err := store.GetStudents()
	if err != nil {
		t.Fatalf("GetStudents() error = %v", err)
	}
	if len(students) != 1 {
		t.Errorf("table has %d rows, want 1", len(students))
	}
	if len(outbox.msgs) != 2 {
		t.Errorf("enqueued %d messages, want 2", len(outbox.msgs))
	}
}

func TestRegisterValidation(t *testing.T) {
	store := testStore(t)
	handler := New(store, &fakeOutbox{}, "admin@example.com", time.UTC)

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"malformed json", `{"name":`},
		{"missing name", `{"email":"a@b.com","password":"pw","program":"Robotics"}`},
		{"missing password", `{"name":"A","email":"a@b.com","program":"Robotics"}`},
		{"bad email", `{"name":"A","email":"not-an-email","password":"pw","program":"Robotics"}`},
		{"unknown program", `{"name":"A","email":"a@b.com","password":"pw","program":"Knitting"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, handler, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400; body: %s", rec.Code, rec.Body)
			}
		})
	}

	// None of the rejected requests may leave a row behind.
	students, err := store.GetStudents()
	if err != nil {
		t.Fatalf("GetStudents() error = %v", err)
	}
	if len(students) != 0 {
		t.Errorf("table has %d rows after rejected requests, want 0", len(students))
	}
}

func TestGetByID(t *testing.T) {
	store := testStore(t)
	outbox := &fakeOutbox{}
	register := New(store, outbox, "admin@example.com", time.UTC)
	postJSON(t, register, validBody)

	id := fmt.Sprintf("SPAC%d-001", time.Now().UTC().Year())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/students/{id}", GetByID(store))

	req := httptest.NewRequest(http.MethodGet, "/api/students/"+id, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), "Ama Mensah") {
		t.Errorf("body missing student name: %s", rec.Body)
	}
	// The hash must not leak through the API.
	if strings.Contains(rec.Body.String(), "password") {
		t.Errorf("body leaks password material: %s", rec.Body)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/students/SPAC1999-999", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d, want 404", rec.Code)
	}
}

func TestGetListEmpty(t *testing.T) {
	store := testStore(t)
	handler := GetList(store)

	req := httptest.NewRequest(http.MethodGet, "/api/students", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("body = %q, want []", rec.Body.String())
	}
}
