package studentid

import "testing"

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		year   int
		seq    int
		want   string
	}{
		{"first of the year", "SPAC", 2026, 1, "SPAC2026-001"},
		{"double digit", "SPAC", 2026, 42, "SPAC2026-042"},
		{"triple digit", "SPAC", 2025, 999, "SPAC2025-999"},
		{"widens past 999", "SPAC", 2025, 1000, "SPAC2025-1000"},
		{"alternate prefix", "ISTAR", 2024, 7, "ISTAR2024-007"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.prefix, tt.year, tt.seq)
			if got != tt.want {
				t.Errorf("Format(%q, %d, %d) = %q, want %q",
					tt.prefix, tt.year, tt.seq, got, tt.want)
			}
		})
	}
}
