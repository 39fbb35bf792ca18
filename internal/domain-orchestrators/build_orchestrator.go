// Package orchestrators coordinates the driver build workflow across domain services.
package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ochairo/buildffs/internal/domain/entities"
	"github.com/ochairo/buildffs/internal/domain/interfaces"
	"github.com/ochairo/buildffs/internal/domain/interfaces/gateways"
	"github.com/ochairo/buildffs/internal/domain/interfaces/services"
)

// Toolchain groups the external collaborators of the pipeline.
// Checksums and Signer are optional.
type Toolchain struct {
	Builder   gateways.PlatformBuilder
	Locator   gateways.ArtifactLocator
	Patcher   gateways.ImagePatcher
	Checksums gateways.ChecksumWriter
	Signer    gateways.Signer
}

// BuildOrchestratorConfig holds configuration for the orchestrator
type BuildOrchestratorConfig struct {
	// Strict makes a non-zero exit of the platform build fatal
	Strict bool
	// LookupEnv resolves target substitutions; defaults to os.LookupEnv
	LookupEnv services.EnvLookup
	// OnStep reports progress with the driver image path: StepPatch once the
	// image is patched, StepPackage before packaging starts
	OnStep func(step entities.Step, path string)
}

// BuildOrchestrator coordinates the complete driver build workflow
type BuildOrchestrator struct {
	project   entities.ProjectConfig
	target    services.TargetService
	packaging services.PackagingService
	toolchain Toolchain
	strict    bool
	lookupEnv services.EnvLookup
	onStep    func(entities.Step, string)
	logger    interfaces.Logger
}

// NewBuildOrchestrator creates a new build orchestrator
func NewBuildOrchestrator(
	project entities.ProjectConfig,
	target services.TargetService,
	packaging services.PackagingService,
	toolchain Toolchain,
	config BuildOrchestratorConfig,
	logger interfaces.Logger,
) *BuildOrchestrator {
	lookupEnv := config.LookupEnv
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	onStep := config.OnStep
	if onStep == nil {
		onStep = func(entities.Step, string) {}
	}
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}

	return &BuildOrchestrator{
		project:   project,
		target:    target,
		packaging: packaging,
		toolchain: toolchain,
		strict:    config.Strict,
		lookupEnv: lookupEnv,
		onStep:    onStep,
		logger:    logger,
	}
}

// BuildResult contains the result of a build operation
type BuildResult struct {
	Request         entities.BuildRequest
	Workspace       string
	Substitutions   []services.AppliedSubstitution
	EffectiveTarget []services.TargetSetting
	Image           *entities.Artifact
	Patch           *entities.PatchResult
	Package         *entities.Artifact
	Checksum        *entities.Artifact
	Signature       *entities.Artifact
	BuildDuration   time.Duration
	TotalDuration   time.Duration
	Success         bool
	Error           error
}

// Workspace returns the EDK2 workspace root for a run started in cwd
func (o *BuildOrchestrator) Workspace(req entities.BuildRequest, cwd string) string {
	if req.Mode == entities.ModeInteractive {
		return filepath.Clean(filepath.Join(cwd, o.project.InteractiveWorkspace))
	}
	return cwd
}

// Build executes the complete workflow. Every returned error is a *entities.StepError.
func (o *BuildOrchestrator) Build(ctx context.Context, req entities.BuildRequest, cwd string) (*BuildResult, error) {
	startTime := time.Now()
	result := &BuildResult{Request: req, Workspace: o.Workspace(req, cwd)}

	fail := func(step entities.Step, err error) (*BuildResult, error) {
		result.Error = &entities.StepError{Step: step, Err: err}
		result.TotalDuration = time.Since(startTime)
		return result, result.Error
	}

	o.logger.Info("starting build",
		interfaces.F("build_type", req.BuildType),
		interfaces.F("mode", req.Mode),
		interfaces.F("workspace", result.Workspace))

	// Step 1: Prepare Conf/target.txt (automated runs only)
	targetPath := filepath.Join(result.Workspace, filepath.FromSlash(o.project.TargetConfig))
	if req.Mode == entities.ModeAutomated {
		applied, err := o.target.ConfigureTarget(ctx, targetPath, o.project.Substitutions, o.lookupEnv)
		if err != nil {
			return fail(entities.StepConfigure, err)
		}
		result.Substitutions = applied
	}

	effective, err := o.target.EffectiveTarget(ctx, targetPath)
	if err != nil {
		o.logger.Warn("could not read target config", interfaces.F("error", err))
	} else {
		result.EffectiveTarget = effective
		for _, setting := range effective {
			o.logger.Info("effective target setting", interfaces.F(setting.Key, setting.Value))
		}
	}

	// Step 2: Run the platform build. Its exit status is advisory unless strict;
	// the locator decides whether the build produced anything.
	buildStart := time.Now()
	if err := o.toolchain.Builder.Build(ctx, result.Workspace, o.project.Platform); err != nil {
		var toolErr *entities.ToolError
		if o.strict || !errors.As(err, &toolErr) || toolErr.ExitCode < 0 {
			return fail(entities.StepBuild, err)
		}
		o.logger.Warn("platform build reported failure", interfaces.F("exit_code", toolErr.ExitCode))
	}
	result.BuildDuration = time.Since(buildStart)

	// Step 3: Locate the single driver image
	imagePath, err := o.toolchain.Locator.Locate(result.Workspace, o.project.ArtifactPattern(req.BuildType))
	if err != nil {
		return fail(entities.StepLocate, err)
	}
	result.Image = &entities.Artifact{
		Name:      o.project.DriverName,
		BuildType: req.BuildType,
		Path:      imagePath,
		Type:      entities.ArtifactTypeEFI,
	}

	// Step 4: Mark the image NX compatible
	patch, err := o.toolchain.Patcher.SetNXCompat(ctx, imagePath)
	if err != nil {
		return fail(entities.StepPatch, err)
	}
	result.Patch = patch
	o.onStep(entities.StepPatch, imagePath)
	o.logger.Info("set NX_COMPAT",
		interfaces.F("path", imagePath),
		interfaces.F("before", fmt.Sprintf("0x%04x", patch.Before)),
		interfaces.F("after", fmt.Sprintf("0x%04x", patch.After)))

	// Step 5: Package sections into the FFS file
	o.onStep(entities.StepPackage, imagePath)
	pkg, err := o.packaging.Package(ctx, imagePath)
	if err != nil {
		return fail(entities.StepPackage, err)
	}
	pkg.BuildType = req.BuildType
	result.Package = pkg

	// Step 6: Optional release artifacts
	if o.toolchain.Checksums != nil {
		sumPath, err := o.toolchain.Checksums.WriteChecksum(ctx, pkg.Path)
		if err != nil {
			return fail(entities.StepChecksum, err)
		}
		result.Checksum = &entities.Artifact{Name: pkg.Name, BuildType: req.BuildType, Path: sumPath, Type: entities.ArtifactTypeChecksum}
	}

	if o.toolchain.Signer != nil {
		sigPath, err := o.toolchain.Signer.SignDetached(ctx, pkg.Path)
		if err != nil {
			return fail(entities.StepSign, err)
		}
		result.Signature = &entities.Artifact{Name: pkg.Name, BuildType: req.BuildType, Path: sigPath, Type: entities.ArtifactTypeSignature}
	}

	result.Success = true
	result.TotalDuration = time.Since(startTime)
	return result, nil
}

// GetBuildSummary returns a human-readable summary of the build
func (r *BuildResult) GetBuildSummary() string {
	if !r.Success {
		return fmt.Sprintf("Build failed: %v", r.Error)
	}

	summary := fmt.Sprintf(`Build successful!
Build type: %s
Image: %s
DllCharacteristics: 0x%04x -> 0x%04x
FFS: %s
Build: %v
Total: %v`,
		r.Request.BuildType,
		r.Image.Path,
		r.Patch.Before, r.Patch.After,
		r.Package.Path,
		r.BuildDuration,
		r.TotalDuration,
	)

	if r.Checksum != nil {
		summary += "\nChecksum: " + r.Checksum.Path
	}
	if r.Signature != nil {
		summary += "\nSignature: " + r.Signature.Path
	}

	return summary
}
