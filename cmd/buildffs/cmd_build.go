package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ochairo/buildffs/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/buildffs/internal/domain-orchestrators"
	"github.com/ochairo/buildffs/internal/domain/entities"
	"github.com/ochairo/buildffs/internal/domain/interfaces"
	"github.com/ochairo/buildffs/internal/domain/services"
	"github.com/ochairo/buildffs/internal/external-adapters/gpg"
	"github.com/ochairo/buildffs/internal/external-adapters/yaml"
)

// DefaultPassphraseEnv holds the signing key passphrase unless --sign-passphrase-env says otherwise
const DefaultPassphraseEnv = "BUILDFFS_SIGN_PASSPHRASE"

type buildFlags struct {
	strict        bool
	checksum      bool
	signKey       string
	passphraseEnv string
}

func addBuildFlags(cmd *cobra.Command, c *cli) {
	var flags buildFlags

	cmd.Flags().BoolVar(&flags.strict, "strict", false, "fail when the build command exits non-zero")
	cmd.Flags().BoolVar(&flags.checksum, "checksum", false, "write <ffs>.sha256 next to the packaged driver")
	cmd.Flags().StringVar(&flags.signKey, "sign-key", "", "armored OpenPGP private key used to write <ffs>.asc")
	cmd.Flags().StringVar(&flags.passphraseEnv, "sign-passphrase-env", DefaultPassphraseEnv, "environment variable holding the signing key passphrase")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runBuild(cmd, c, flags, args)
	}
}

// loadProject reads the explicit --config file, or buildffs.yaml when it exists
func loadProject(c *cli) (*entities.ProjectConfig, error) {
	parser := yaml.NewConfigParser()
	if c.flags.configPath != "" {
		return parser.Load(c.flags.configPath, true)
	}
	return parser.Load(yaml.DefaultConfigFile, false)
}

func runBuild(cmd *cobra.Command, c *cli, flags buildFlags, args []string) error {
	req, err := entities.ResolveBuildRequest(args)
	if err != nil {
		return err
	}

	logger, err := c.logger()
	if err != nil {
		return err
	}

	project, err := loadProject(c)
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	// Initialize gateways
	runner := gateways.NewToolRunner(c.stdout, c.stderr, logger)
	toolchain := orchestrators.Toolchain{
		Builder: gateways.NewPlatformBuilder(runner, project.Tools.Build),
		Locator: gateways.NewArtifactLocator(),
		Patcher: gateways.NewImagePatcherGateway(),
	}
	if flags.checksum {
		toolchain.Checksums = gateways.NewChecksumWriter()
	}
	if flags.signKey != "" {
		signer, err := gpg.NewSigner(flags.signKey, []byte(os.Getenv(flags.passphraseEnv)))
		if err != nil {
			return err
		}
		logger.Info("signing enabled", interfaces.F("key_id", signer.KeyID()))
		toolchain.Signer = signer
	}

	// Initialize services
	target := services.NewTargetService(gateways.NewTargetConfig(), logger)
	packaging := services.NewPackagingService(
		*project,
		gateways.NewSectionGenerator(runner, project.Tools.GenSec),
		gateways.NewFfsGenerator(runner, project.Tools.GenFfs),
		gateways.NewFileCleaner(),
		logger,
	)

	out := cmd.OutOrStdout()
	buildOrch := orchestrators.NewBuildOrchestrator(
		*project,
		target,
		packaging,
		toolchain,
		orchestrators.BuildOrchestratorConfig{
			Strict: flags.strict,
			OnStep: func(step entities.Step, path string) {
				switch step {
				case entities.StepPatch:
					fmt.Fprintln(out, path)
				case entities.StepPackage:
					//nolint:errcheck // Best-effort terminal output
					color.New(color.FgCyan).Fprintln(out, "Building FFS")
				}
			},
		},
		logger,
	)

	result, err := buildOrch.Build(cmd.Context(), req, cwd)
	if err != nil {
		return err
	}

	logger.Debug(result.GetBuildSummary())
	if result.Checksum != nil {
		fmt.Fprintln(out, result.Checksum.Path)
	}
	if result.Signature != nil {
		fmt.Fprintln(out, result.Signature.Path)
	}

	//nolint:errcheck // Best-effort terminal output
	color.New(color.FgGreen, color.Bold).Fprintln(out, "Finished")
	return nil
}
