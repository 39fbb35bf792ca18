package gateways

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/ochairo/buildffs/internal/domain/entities"
	"github.com/ochairo/buildffs/internal/domain/interfaces"
)

// CommandRunner runs one external tool to completion
type CommandRunner interface {
	Run(ctx context.Context, config RunConfig) *RunResult
}

// RunConfig contains configuration for running an external tool
type RunConfig struct {
	Tool        string
	Args        []string
	WorkingDir  string
	Description string
}

// RunResult contains the result of a tool run
type RunResult struct {
	Success  bool
	ExitCode int
	Duration time.Duration
	Error    error
}

// ToolError converts a failed result into a *entities.ToolError, or nil on success
func (r *RunResult) ToolError(config RunConfig) error {
	if r.Success {
		return nil
	}
	return &entities.ToolError{
		Tool:     config.Tool,
		Args:     config.Args,
		Dir:      config.WorkingDir,
		ExitCode: r.ExitCode,
		Err:      r.Error,
	}
}

// ToolRunner runs external tools with the current environment, forwarding their output
type ToolRunner struct {
	stdout io.Writer
	stderr io.Writer
	logger interfaces.Logger
}

// NewToolRunner creates a tool runner. Nil writers default to the process streams.
func NewToolRunner(stdout, stderr io.Writer, logger interfaces.Logger) *ToolRunner {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &ToolRunner{stdout: stdout, stderr: stderr, logger: logger}
}

// Run executes the tool and blocks until it exits. There is no timeout.
func (r *ToolRunner) Run(ctx context.Context, config RunConfig) *RunResult {
	startTime := time.Now()
	result := &RunResult{}

	//nolint:gosec // G204: tool names come from the project configuration
	cmd := exec.CommandContext(ctx, config.Tool, config.Args...)

	if config.WorkingDir != "" {
		cmd.Dir = config.WorkingDir
	}

	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	description := config.Description
	if description == "" {
		description = config.Tool
	}
	r.logger.Debug("running tool",
		interfaces.F("step", description),
		interfaces.F("args", config.Args),
		interfaces.F("dir", config.WorkingDir))

	err := cmd.Run()
	result.Duration = time.Since(startTime)

	if err != nil {
		result.Error = err
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
		}
	} else {
		result.Success = true
	}

	r.logger.Debug("tool finished",
		interfaces.F("step", description),
		interfaces.F("exit_code", result.ExitCode),
		interfaces.F("duration", result.Duration.Round(time.Millisecond)))

	return result
}
