package detector_test

import (
	"testing"

	"go.trai.ch/symres/internal/adapters/detector"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		isTTY    bool
		ci       string
		expected detector.SessionMode
	}{
		{name: "terminal without CI", isTTY: true, ci: "", expected: detector.ModeInteractive},
		{name: "CI=true", isTTY: true, ci: "true", expected: detector.ModeUnattended},
		{name: "CI=1", isTTY: true, ci: "1", expected: detector.ModeUnattended},
		{name: "CI=TRUE", isTTY: true, ci: "TRUE", expected: detector.ModeUnattended},
		{name: "CI=false", isTTY: true, ci: "false", expected: detector.ModeInteractive},
		{name: "no terminal", isTTY: false, ci: "", expected: detector.ModeUnattended},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detector.DetectExported(tt.isTTY, tt.ci); got != tt.expected {
				t.Errorf("detect(%v, %q) = %v, want %v", tt.isTTY, tt.ci, got, tt.expected)
			}
		})
	}
}

func TestDetectSession_CI(t *testing.T) {
	t.Setenv("CI", "true")
	if got := detector.DetectSession(); got != detector.ModeUnattended {
		t.Errorf("DetectSession() with CI=true = %v, want unattended", got)
	}
}

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name     string
		detected detector.SessionMode
		userFlag string
		expected detector.SessionMode
	}{
		{name: "auto keeps interactive", detected: detector.ModeInteractive, userFlag: "auto", expected: detector.ModeInteractive},
		{name: "empty keeps unattended", detected: detector.ModeUnattended, userFlag: "", expected: detector.ModeUnattended},
		{name: "interactive overrides", detected: detector.ModeUnattended, userFlag: "interactive", expected: detector.ModeInteractive},
		{name: "unattended overrides", detected: detector.ModeInteractive, userFlag: "unattended", expected: detector.ModeUnattended},
		{name: "ci is alias for unattended", detected: detector.ModeInteractive, userFlag: "ci", expected: detector.ModeUnattended},
		{name: "unknown falls back", detected: detector.ModeInteractive, userFlag: "bogus", expected: detector.ModeInteractive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detector.ResolveMode(tt.detected, tt.userFlag); got != tt.expected {
				t.Errorf("ResolveMode(%v, %q) = %v, want %v", tt.detected, tt.userFlag, got, tt.expected)
			}
		})
	}
}

func TestSessionMode_String(t *testing.T) {
	if detector.ModeUnattended.String() != "unattended" || !detector.ModeUnattended.Unattended() {
		t.Error("unexpected unattended mode spelling")
	}
	if detector.ModeAuto.String() != "auto" || detector.ModeInteractive.Unattended() {
		t.Error("unexpected auto/interactive mode")
	}
}
