// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// handlers, storage, notify, and receipt can all import types without
// depending on each other.
package types

// Student represents one registration row in the students table.
//
// Struct tags serve two purposes:
//
//  1. json:"..."  — controls how the field appears when encoded to JSON
//     (lowercase names match REST API conventions).
//
//  2. validate:"..." — rules checked by the go-playground/validator
//     package. "required" means the field must be non-zero / non-empty.
//
// PasswordHash is the SHA-256 hex digest of the password supplied at
// registration. It is stored and exported in the admin CSV, never
// verified — there is no login flow in this system.
type Student struct {
	StudentID    string `json:"student_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // never serialised to API clients
	Program      string `json:"program"`
	RegisteredAt string `json:"registered_at"` // "2006-01-02 15:04:05" in the configured zone
}

// RegisterRequest is the POST /api/students payload.
// The plaintext password is hashed by the handler before it reaches
// storage; it never leaves the request scope.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Program  string `json:"program"  validate:"required"`
}

// ContactMessage is one row in the contact_messages table.
type ContactMessage struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Message     string `json:"message"`
	SubmittedAt string `json:"submitted_at"`
}

// ContactRequest is the POST /api/contact payload.
type ContactRequest struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

// ReceiptLineItem is one priced row on a receipt. Qty is always 1 in the
// current flow but is kept explicit so the table math stays honest.
type ReceiptLineItem struct {
	Name  string  `json:"name"`
	Qty   int     `json:"qty"`
	Price float64 `json:"price"`
	Total float64 `json:"total"`
}

// ReceiptRequest is the POST /api/receipts payload. Each entry in Items
// names a program and an age category; the price is derived from the
// category alone (two-tier pricing, no per-program rates).
type ReceiptRequest struct {
	StudentName   string             `json:"student_name"   validate:"required"`
	PaymentMethod string             `json:"payment_method" validate:"required"`
	AmountPaid    float64            `json:"amount_paid"    validate:"gte=0"`
	Items         []ReceiptItemInput `json:"items"          validate:"required,min=1,dive"`
}

// ReceiptItemInput is one requested receipt line before pricing.
type ReceiptItemInput struct {
	Program     string `json:"program"      validate:"required"`
	AgeCategory string `json:"age_category" validate:"required"`
}
