package ui

import "testing"

func TestTruncate(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"fits", "Pong", 10, "Pong"},
		{"no limit", "  Pong  ", 0, "Pong"},
		{"ellipsis", "The Legend of Zelda", 10, "The Leg..."},
		{"tiny limit", "Tetris", 2, "Te"},
		{"runes", "ゼルダの伝説", 4, "ゼ..."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := truncate(tc.in, tc.limit); got != tc.want {
				t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Fatalf("padRight = %q, want %q", got, "ab  ")
	}
	if got := padRight("abcdef", 4); got != "abcdef" {
		t.Fatalf("padRight long = %q, want unchanged", got)
	}
}
