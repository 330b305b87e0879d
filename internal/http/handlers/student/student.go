// Package student contains all HTTP handlers related to registrations.
//
// HANDLER PATTERN USED HERE — THE CLOSURE / FACTORY PATTERN:
// Go's router expects handler functions with the signature
// func(http.ResponseWriter, *http.Request), which leaves no room for
// extra parameters like a database or a mail outbox. Each factory below
// accepts its dependencies once at route-registration time and returns
// a handler that closes over them.
package student

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/spacbotltd/spacbot-api/internal/catalog"
	"github.com/spacbotltd/spacbot-api/internal/notify"
	"github.com/spacbotltd/spacbot-api/internal/storage"
	"github.com/spacbotltd/spacbot-api/internal/types"
	"github.com/spacbotltd/spacbot-api/internal/utils/hash"
	"github.com/spacbotltd/spacbot-api/internal/utils/response"
)

// New handles POST /api/students — the registration flow.
//
// Request body (JSON):
//
//	{ "name": "Ama Mensah", "email": "ama@example.com",
//	  "password": "s3cret", "program": "Robotics" }
//
// Success response (201 Created):
//
//	{ "student_id": "SPAC2026-001" }
//
// Error responses:
//
//	400 Bad Request — empty body, malformed JSON, failed validation,
//	                  or a program that is not in the catalog
//	409 Conflict    — email already registered
//	500 Internal    — storage failure
//
// The welcome mail and the admin alert are enqueued only after the
// insert commits, and their delivery outcome never affects the response:
// a registered-but-unnotified student is possible and accepted, a
// notified-but-unregistered one is not.
func New(store storage.Storage, outbox notify.Enqueuer, adminEmail string, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("registering a student")

		var req types.RegisterRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		if err := validator.New().Struct(req); err != nil {
			validateErrs := err.(validator.ValidationErrors)
			response.WriteJSON(w, http.StatusBadRequest,
				response.ValidationError(validateErrs))
			return
		}

		// The program must be a catalog key; the catalog is the source
		// of truth for what can be registered for.
		if !catalog.Exists(req.Program) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(fmt.Errorf("unknown program: %q", req.Program)))
			return
		}

		now := time.Now().In(loc)
		id, err := store.CreateStudent(
			req.Name, req.Email, hash.String(req.Password), req.Program, now,
		)
		if err != nil {
			if errors.Is(err, storage.ErrDuplicateEmail) {
				response.WriteJSON(w, http.StatusConflict, response.GeneralError(err))
				return
			}
			slog.Error("error creating student", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		slog.Info("student registered",
			slog.String("student_id", id),
			slog.String("program", req.Program),
		)

		// Registration is committed — queue both notifications.
		outbox.Enqueue(notify.WelcomeMessage(req.Email, req.Name, req.Program, id))

		export, err := store.ExportStudentsCSV()
		if err != nil {
			// The alert still goes out; it just loses its attachment.
			slog.Error("csv export for admin alert failed",
				slog.String("error", err.Error()))
		}
		outbox.Enqueue(notify.AdminAlertMessage(adminEmail, req.Name, req.Program, export))

		response.WriteJSON(w, http.StatusCreated, map[string]string{"student_id": id})
	}
}

// GetByID handles GET /api/students/{id}.
//
// Success response (200 OK): the student record without the password
// hash. 404 when the ID matches nothing.
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// r.PathValue("id") extracts the {id} segment from the URL
		// (Go 1.22+ named path parameters in ServeMux patterns).
		id := r.PathValue("id")
		slog.Info("getting a student", slog.String("student_id", id))

		student, err := store.GetStudentByID(id)
		if err != nil {
			if errors.Is(err, storage.ErrStudentNotFound) {
				response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
				return
			}
			slog.Error("error getting student",
				slog.String("student_id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, student)
	}
}

// GetList handles GET /api/students.
// Returns a JSON array of all registrations, empty array (not null)
// when there are none.
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all students")

		students, err := store.GetStudents()
		if err != nil {
			slog.Error("error getting students", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, students)
	}
}
