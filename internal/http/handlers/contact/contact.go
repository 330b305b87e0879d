// Package contact holds the handler for the contact form.
package contact

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/spacbotltd/spacbot-api/internal/storage"
	"github.com/spacbotltd/spacbot-api/internal/types"
	"github.com/spacbotltd/spacbot-api/internal/utils/response"
)

// New handles POST /api/contact — stores one visitor message.
//
// Request body (JSON):
//
//	{ "name": "Visitor", "email": "v@example.com", "message": "..." }
//
// Success response (201 Created): { "status": "ok" }.
// Messages are stored only; nobody is emailed about them.
func New(store storage.Storage, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("storing a contact message")

		var req types.ContactRequest
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

		now := time.Now().In(loc)
		if err := store.CreateContactMessage(req.Name, req.Email, req.Message, now); err != nil {
			slog.Error("error storing contact message", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusCreated,
			response.Response{Status: response.StatusOK})
	}
}
