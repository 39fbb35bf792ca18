package entities

import (
	"errors"
	"strings"
	"testing"
)

func TestStepError_Unwrap(t *testing.T) {
	inner := &ArtifactNotFoundError{Pattern: "Build/*.efi"}
	err := error(&StepError{Step: StepLocate, Err: inner})

	var notFound *ArtifactNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatal("StepError should unwrap to ArtifactNotFoundError")
	}
	if err.Error() != "locate: no build output matches Build/*.efi" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestArtifactNotFoundError_Multiple(t *testing.T) {
	err := &ArtifactNotFoundError{Pattern: "p", Matches: []string{"a.efi", "b.efi"}}
	if !strings.Contains(err.Error(), "2 build outputs") || !strings.Contains(err.Error(), "a.efi, b.efi") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestToolError_Error(t *testing.T) {
	exited := &ToolError{Tool: "GenSec", Args: []string{"-o", "pe32.sec"}, Dir: "/b", ExitCode: 2, Err: errors.New("exit status 2")}
	if got := exited.Error(); got != "GenSec -o pe32.sec (in /b) exited with status 2" {
		t.Errorf("Error() = %q", got)
	}

	missing := &ToolError{Tool: "GenFfs", Dir: "/b", ExitCode: -1, Err: errors.New("not found")}
	if got := missing.Error(); got != "GenFfs (in /b) failed: not found" {
		t.Errorf("Error() = %q", got)
	}
}
