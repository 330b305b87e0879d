// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// SQLite stores everything in a single file on disk — no network, no
// separate server process. That matches this deployment: one process,
// one writer, a few hundred rows. Unlike the flat CSV file it replaces,
// SQLite gives a real UNIQUE index on email and transactions, so the
// duplicate check, the sequential-ID computation, and the insert happen
// atomically instead of racing between a full-table scan and a rewrite.
package sqlite

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"time"

	"github.com/spacbotltd/spacbot-api/internal/config"
	"github.com/spacbotltd/spacbot-api/internal/storage"
	"github.com/spacbotltd/spacbot-api/internal/studentid"
	"github.com/spacbotltd/spacbot-api/internal/types"

	"github.com/mattn/go-sqlite3"
)

// TimeLayout is how timestamps are stored and exported. It matches the
// receipts and CSV exports the business has been sending out, so keep it
// stable even though RFC 3339 would be the usual choice.
const TimeLayout = "2006-01-02 15:04:05"

// csvHeader is the fixed schema of the admin CSV export. The column
// order is load-bearing — the admin mailbox has spreadsheets built on
// the files this produces.
var csvHeader = []string{"StudentID", "Name", "Email", "PasswordHash", "Program", "RegisteredAt"}

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB, a connection pool managed by database/sql that is
// safe for concurrent use by multiple goroutines.
type SQLite struct {
	Db       *sql.DB
	idPrefix string
}

// New opens the SQLite database at cfg.StoragePath, creates the tables
// if they do not already exist, and returns a ready-to-use *SQLite.
//
// Both tables are created up front — contact_messages starts empty even
// though only the contact endpoint writes to it — mirroring the file
// bootstrap the previous deployment did at startup.
func New(cfg *config.Config) (*SQLite, error) {
	// sql.Open does NOT open a real connection yet — it validates the
	// driver name and DSN. The first actual connection happens on the
	// first query.
	db, err := sql.Open("sqlite3", cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// CREATE TABLE IF NOT EXISTS is idempotent — safe to run on every
	// startup.
	//
	// students.email carries a UNIQUE index: the transactional duplicate
	// check below is the primary guard, and the index makes the database
	// itself reject a duplicate that somehow slips past it.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			student_id    TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			program       TEXT NOT NULL,
			registered_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS contact_messages (
			name         TEXT NOT NULL,
			email        TEXT NOT NULL,
			message      TEXT NOT NULL,
			submitted_at TEXT NOT NULL
		);
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: create tables: %w", err)
	}

	return &SQLite{Db: db, idPrefix: cfg.StudentIDPrefix}, nil
}

// CreateStudent performs the whole registration write as one atomic
// unit: duplicate-email check, row count, ID generation, insert.
//
// The transaction is what removes the two races the old flat-file store
// had — a duplicate email slipping in between scan and write, and two
// registrations reading the same row count and minting the same ID.
func (s *SQLite) CreateStudent(name, email, passwordHash, program string, registeredAt time.Time) (string, error) {
	tx, err := s.Db.Begin()
	if err != nil {
		return "", fmt.Errorf("CreateStudent: begin tx: %w", err)
	}
	// Rollback is a no-op after a successful Commit, so deferring it
	// unconditionally covers every early-return path.
	defer tx.Rollback()

	var existing int
	err = tx.QueryRow(
		"SELECT COUNT(*) FROM students WHERE email = ?", email,
	).Scan(&existing)
	if err != nil {
		return "", fmt.Errorf("CreateStudent: duplicate check: %w", err)
	}
	if existing > 0 {
		return "", storage.ErrDuplicateEmail
	}

	// Sequence = current row count + 1, read inside the same transaction
	// as the insert so the ID is monotone and collision-free.
	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM students").Scan(&count); err != nil {
		return "", fmt.Errorf("CreateStudent: count rows: %w", err)
	}

	id := studentid.Format(s.idPrefix, registeredAt.Year(), count+1)

	_, err = tx.Exec(`
		INSERT INTO students (student_id, name, email, password_hash, program, registered_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, name, email, passwordHash, program, registeredAt.Format(TimeLayout),
	)
	if err != nil {
		// The UNIQUE index is the backstop for the duplicate check;
		// translate its violation into the same sentinel error.
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) &&
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return "", storage.ErrDuplicateEmail
		}
		return "", fmt.Errorf("CreateStudent: insert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("CreateStudent: commit: %w", err)
	}

	return id, nil
}

// GetStudentByID fetches exactly one registration matched by StudentID.
func (s *SQLite) GetStudentByID(id string) (types.Student, error) {
	var student types.Student

	err := s.Db.QueryRow(`
		SELECT student_id, name, email, password_hash, program, registered_at
		FROM students WHERE student_id = ? LIMIT 1`, id,
	).Scan(
		&student.StudentID,
		&student.Name,
		&student.Email,
		&student.PasswordHash,
		&student.Program,
		&student.RegisteredAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Student{}, storage.ErrStudentNotFound
		}
		return types.Student{}, fmt.Errorf("GetStudentByID: scan: %w", err)
	}

	return student, nil
}

// GetStudents returns all registrations in insertion order (rowid order,
// which for this append-only table is registration order).
func (s *SQLite) GetStudents() ([]types.Student, error) {
	rows, err := s.Db.Query(`
		SELECT student_id, name, email, password_hash, program, registered_at
		FROM students ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("GetStudents: query: %w", err)
	}
	defer rows.Close()

	// Pre-allocate an empty (non-nil) slice so the JSON encoding is []
	// rather than null when there are no students.
	students := make([]types.Student, 0)

	for rows.Next() {
		var student types.Student
		if err := rows.Scan(
			&student.StudentID,
			&student.Name,
			&student.Email,
			&student.PasswordHash,
			&student.Program,
			&student.RegisteredAt,
		); err != nil {
			return nil, fmt.Errorf("GetStudents: scan row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetStudents: rows iteration: %w", err)
	}

	return students, nil
}

// CreateContactMessage stores one contact-form submission. No
// uniqueness constraint — the same visitor may write twice.
func (s *SQLite) CreateContactMessage(name, email, message string, submittedAt time.Time) error {
	_, err := s.Db.Exec(`
		INSERT INTO contact_messages (name, email, message, submitted_at)
		VALUES (?, ?, ?, ?)`,
		name, email, message, submittedAt.Format(TimeLayout),
	)
	if err != nil {
		return fmt.Errorf("CreateContactMessage: insert: %w", err)
	}
	return nil
}

// ExportStudentsCSV renders the students table in the legacy CSV layout
// used as the admin-alert attachment.
func (s *SQLite) ExportStudentsCSV() ([]byte, error) {
	students, err := s.GetStudents()
	if err != nil {
		return nil, fmt.Errorf("ExportStudentsCSV: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("ExportStudentsCSV: write header: %w", err)
	}
	for _, st := range students {
		record := []string{st.StudentID, st.Name, st.Email, st.PasswordHash, st.Program, st.RegisteredAt}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("ExportStudentsCSV: write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("ExportStudentsCSV: flush: %w", err)
	}

	return buf.Bytes(), nil
}
