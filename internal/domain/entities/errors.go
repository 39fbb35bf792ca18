package entities

import (
	"fmt"
	"strings"
)

// Step names a pipeline stage
type Step string

// Pipeline steps in execution order
const (
	StepConfigure Step = "configure"
	StepBuild     Step = "build"
	StepLocate    Step = "locate"
	StepPatch     Step = "patch"
	StepPackage   Step = "package"
	StepChecksum  Step = "checksum"
	StepSign      Step = "sign"
)

// StepError wraps a failure with the step it happened in
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// ArtifactNotFoundError is returned when the build output glob does not match exactly one file
type ArtifactNotFoundError struct {
	Pattern string
	Matches []string
}

func (e *ArtifactNotFoundError) Error() string {
	if len(e.Matches) == 0 {
		return fmt.Sprintf("no build output matches %s", e.Pattern)
	}
	return fmt.Sprintf("%d build outputs match %s, expected exactly one: %s",
		len(e.Matches), e.Pattern, strings.Join(e.Matches, ", "))
}

// ToolError describes an external tool that failed to start or exited non-zero
type ToolError struct {
	Tool     string
	Args     []string
	Dir      string
	ExitCode int
	Err      error
}

func (e *ToolError) Error() string {
	cmdline := strings.TrimSpace(e.Tool + " " + strings.Join(e.Args, " "))
	if e.ExitCode > 0 {
		return fmt.Sprintf("%s (in %s) exited with status %d", cmdline, e.Dir, e.ExitCode)
	}
	return fmt.Sprintf("%s (in %s) failed: %v", cmdline, e.Dir, e.Err)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}
