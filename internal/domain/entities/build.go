package entities

import (
	"fmt"
	"strings"
)

// BuildType is the EDK2 build target (DEBUG, RELEASE, NOOPT)
type BuildType string

// Supported build types
const (
	BuildTypeDebug   BuildType = "DEBUG"
	BuildTypeRelease BuildType = "RELEASE"
	BuildTypeNoOpt   BuildType = "NOOPT"
)

// DefaultBuildType is used when no build type argument is given
const DefaultBuildType = BuildTypeRelease

// ParseBuildType normalizes s to upper case and checks it against the known targets.
// An empty string yields DefaultBuildType.
func ParseBuildType(s string) (BuildType, error) {
	if s == "" {
		return DefaultBuildType, nil
	}

	bt := BuildType(strings.ToUpper(s))
	switch bt {
	case BuildTypeDebug, BuildTypeRelease, BuildTypeNoOpt:
		return bt, nil
	default:
		return "", fmt.Errorf("unknown build type %q (want DEBUG, RELEASE or NOOPT)", s)
	}
}

// InvocationMode tells how the tool was started
type InvocationMode int

const (
	// ModeInteractive is a developer run from the driver directory
	ModeInteractive InvocationMode = iota
	// ModeAutomated is a CI run from the EDK2 workspace root
	ModeAutomated
)

func (m InvocationMode) String() string {
	if m == ModeAutomated {
		return "automated"
	}
	return "interactive"
}

// automatedArgCount is the number of positional arguments (program name excluded)
// that selects automated mode. Only the count matters, not the content.
const automatedArgCount = 2

// BuildRequest is the resolved form of the command line
type BuildRequest struct {
	BuildType BuildType
	Mode      InvocationMode
}

// ResolveBuildRequest interprets positional arguments, program name excluded.
func ResolveBuildRequest(args []string) (BuildRequest, error) {
	req := BuildRequest{BuildType: DefaultBuildType, Mode: ModeInteractive}

	if len(args) > 0 {
		bt, err := ParseBuildType(args[0])
		if err != nil {
			return req, err
		}
		req.BuildType = bt
	}

	if len(args) == automatedArgCount {
		req.Mode = ModeAutomated
	}

	return req, nil
}
