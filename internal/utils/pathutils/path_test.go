package pathutils

import (
	"path/filepath"
	"testing"
)

func TestToAbsolutePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in   string
		want string
	}{
		{"~/state/state.json", filepath.Join(home, "state/state.json")},
		{"~", home},
		{"/var/lib/sourcewatch/state.json", "/var/lib/sourcewatch/state.json"},
		{"state.json", "state.json"},
		{"~other/x", "~other/x"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ToAbsolutePath(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ToAbsolutePath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestToHomePathFormat(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ToHomePathFormat(filepath.Join(home, "state.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "~/state.json" {
		t.Errorf("got %q, want ~/state.json", got)
	}
}
