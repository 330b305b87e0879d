// Package studentid formats the human-readable student identifiers
// handed out at registration, e.g. SPAC2026-001.
//
// The formatter is a pure function. The sequence number it receives is
// computed by the storage layer inside the same transaction as the
// insert, so two concurrent registrations can never observe the same
// row count and mint the same ID.
package studentid

import "fmt"

// Format builds an identifier of the form <PREFIX><year>-<seq>, with the
// sequence zero-padded to three digits. Sequences past 999 widen rather
// than wrap, so IDs stay unique after the thousandth sign-up.
func Format(prefix string, year int, seq int) string {
	return fmt.Sprintf("%s%d-%03d", prefix, year, seq)
}
