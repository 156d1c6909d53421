package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Welcome", "welcome"},
		{"spaces and punctuation", "My First Note!", "my_first_note_"},
		{"empty", "", ""},
		{"digits kept", "Note 42", "note_42"},
		{"unicode replaced", "笔记 one", "___one"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.title); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}
