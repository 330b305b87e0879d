// Package receipt holds the HTTP surface of the receipt generator:
// the price table lookup and the PDF rendering endpoint.
package receipt

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/spacbotltd/spacbot-api/internal/receipt"
	"github.com/spacbotltd/spacbot-api/internal/types"
	"github.com/spacbotltd/spacbot-api/internal/utils/response"
)

// Pricing handles GET /api/pricing.
// Returns the two-tier fee table so the front end can show the fee
// before an item is added.
func Pricing(pricing receipt.Pricing) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, map[string]float64{
			"below_13":       pricing.Below13,
			"at_or_above_13": pricing.AtOrAbove13,
		})
	}
}

// New handles POST /api/receipts — renders a receipt PDF.
//
// Request body (JSON):
//
//	{ "student_name": "Ama Mensah", "payment_method": "Mobile Money",
//	  "amount_paid": 1000,
//	  "items": [ { "program": "Arduino", "age_category": "13 and Above" } ] }
//
// Success response (200 OK): the PDF bytes with Content-Type
// application/pdf and a Content-Disposition download filename derived
// from the student name.
//
// An empty items list is rejected here, at the caller boundary — the
// composer itself renders an empty list gracefully, but a receipt with
// nothing on it is always a client mistake.
func New(pricing receipt.Pricing, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("generating a receipt")

		var req types.ReceiptRequest
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

		// Build the cart from the submitted lines. The cart prices each
		// line from the age tier; the program name is label only.
		cart := receipt.NewCart(pricing)
		for _, item := range req.Items {
			if _, err := cart.Add(item.Program, item.AgeCategory); err != nil {
				response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
				return
			}
		}

		out, err := receipt.Render(receipt.Details{
			StudentName:   req.StudentName,
			PaymentMethod: req.PaymentMethod,
			Items:         cart.Items(),
			AmountPaid:    req.AmountPaid,
		}, time.Now().In(loc))
		if err != nil {
			slog.Error("error rendering receipt", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		slog.Info("receipt generated",
			slog.String("student", req.StudentName),
			slog.Int("items", len(req.Items)),
		)

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%s", downloadName(req.StudentName)))
		w.WriteHeader(http.StatusOK)
		w.Write(out)
	}
}

// downloadName builds a header-safe filename from the student name.
func downloadName(student string) string {
	s := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, student)
	return "receipt_" + s + ".pdf"
}
