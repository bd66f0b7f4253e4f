package models

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Computational Science", "computational-science"},
		{"Books & Lecture Notes", "books-lecture-notes"},
		{"  Padded  ", "padded"},
		{"Already-Kebab", "already-kebab"},
		{"Vol. 2 (2014)", "vol-2-2014"},
	}

	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
