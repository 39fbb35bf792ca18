package entities

import (
	"testing"
)

func TestParseBuildType(t *testing.T) {
	tests := []struct {
		in      string
		want    BuildType
		wantErr bool
	}{
		{"", BuildTypeRelease, false},
		{"release", BuildTypeRelease, false},
		{"Debug", BuildTypeDebug, false},
		{"NOOPT", BuildTypeNoOpt, false},
		{"fast", "", true},
		{"RELEASE_GCC5", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBuildType(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBuildType(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseBuildType(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestResolveBuildRequest(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantType  BuildType
		wantMode  InvocationMode
		wantError bool
	}{
		{"no arguments", nil, BuildTypeRelease, ModeInteractive, false},
		{"build type only", []string{"debug"}, BuildTypeDebug, ModeInteractive, false},
		{"automated", []string{"release", "anything"}, BuildTypeRelease, ModeAutomated, false},
		{"three arguments stay interactive", []string{"debug", "ci", "extra"}, BuildTypeDebug, ModeInteractive, false},
		{"bad build type", []string{"fast", "ci"}, "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ResolveBuildRequest(tt.args)
			if tt.wantError {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveBuildRequest() error = %v", err)
			}
			if req.BuildType != tt.wantType {
				t.Errorf("BuildType = %s, want %s", req.BuildType, tt.wantType)
			}
			if req.Mode != tt.wantMode {
				t.Errorf("Mode = %s, want %s", req.Mode, tt.wantMode)
			}
		})
	}
}
