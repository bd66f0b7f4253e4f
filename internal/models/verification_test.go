package models

import (
	"testing"
	"time"
)

func TestVerificationPopulateSlug(t *testing.T) {
	tests := []struct {
		name    string
		id      int64
		created time.Time
		want    string
	}{
		{
			name:    "june run",
			id:      7,
			created: time.Date(2023, time.June, 15, 10, 0, 0, 0, time.UTC),
			want:    "2023.06.7",
		},
		{
			name:    "december run keeps two-digit month",
			id:      123,
			created: time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC),
			want:    "2024.12.123",
		},
		{
			name:    "early year pads to four digits",
			id:      1,
			created: time.Date(999, time.January, 2, 0, 0, 0, 0, time.UTC),
			want:    "0999.01.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &Verification{ID: tt.id, CreatedAt: tt.created}
			if got := v.PopulateSlug(); got != tt.want {
				t.Errorf("PopulateSlug() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVerificationArchiveBaseName(t *testing.T) {
	tests := []struct {
		name    string
		archive string
		want    string
	}{
		{"no archive", "", ""},
		{"key with directory", "results/ab12cd34_run-output.tar.gz", "ab12cd34_run-output.tar.gz"},
		{"bare filename", "output.zip", "output.zip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &Verification{ArchiveFile: tt.archive}
			if got := v.ArchiveBaseName(); got != tt.want {
				t.Errorf("ArchiveBaseName() = %q, want %q", got, tt.want)
			}
		})
	}
}
