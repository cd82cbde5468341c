package ui

import "testing"

func TestDetectTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	if !DetectTheme(true).IsDark {
		t.Fatalf("expected dark theme when forced")
	}
	if DetectTheme(false).IsDark {
		t.Fatalf("expected light theme by default")
	}

	t.Setenv("COLORFGBG", "15;0")
	if !DetectTheme(false).IsDark {
		t.Fatalf("expected dark theme for a black background")
	}

	t.Setenv("COLORFGBG", "0;15")
	if DetectTheme(false).IsDark {
		t.Fatalf("expected light theme for a white background")
	}
}
