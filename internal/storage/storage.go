// Package storage defines the Storage interface — a contract that any
// database backend must satisfy to work with this application.
//
// Handlers (HTTP layer) should not know or care which database they are
// talking to. By depending only on this interface, switching databases
// means implementing it for the new backend and changing one line in
// main.go, and unit tests can pass a fake without a real database.
package storage

import (
	"errors"
	"time"

	"github.com/spacbotltd/spacbot-api/internal/types"
)

// Sentinel errors returned by Storage implementations. Handlers check
// these with errors.Is to pick the right HTTP status.
var (
	// ErrDuplicateEmail means the email is already registered.
	// Recoverable: reported to the caller, no state change.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrStudentNotFound means no row matched the requested StudentID.
	ErrStudentNotFound = errors.New("student not found")
)

// Storage is the database contract.
// Any concrete type that implements ALL of these methods automatically
// satisfies this interface — Go does this implicitly.
type Storage interface {
	// CreateStudent checks email uniqueness, mints the next sequential
	// StudentID, and inserts the record — all inside one transaction, so
	// two concurrent registrations can neither share an email nor an ID.
	// Returns the generated StudentID, or ErrDuplicateEmail.
	CreateStudent(name, email, passwordHash, program string, registeredAt time.Time) (string, error)

	// GetStudentByID fetches a single registration by its StudentID.
	// Returns ErrStudentNotFound if no row matches.
	GetStudentByID(id string) (types.Student, error)

	// GetStudents returns every registration in insertion order.
	// Returns an empty slice (not nil) if there are none.
	GetStudents() ([]types.Student, error)

	// CreateContactMessage stores one contact-form submission.
	CreateContactMessage(name, email, message string, submittedAt time.Time) error

	// ExportStudentsCSV renders the full students table as CSV bytes
	// with the header row
	// StudentID,Name,Email,PasswordHash,Program,RegisteredAt.
	// This is the payload attached to the admin sign-up alert.
	ExportStudentsCSV() ([]byte, error)
}
