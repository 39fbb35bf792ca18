// Package main provides the buildffs CLI for building and packaging the NvStrapsReBar driver.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ochairo/buildffs/internal/domain/entities"
	"github.com/ochairo/buildffs/internal/domain/interfaces"
	"github.com/ochairo/buildffs/internal/external-adapters/logrus"
)

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// globalFlags are shared by every command
type globalFlags struct {
	configPath string
	logLevel   string
}

// cli carries the output streams and shared flags to the commands
type cli struct {
	stdout io.Writer
	stderr io.Writer
	flags  globalFlags
}

func (c *cli) logger() (interfaces.Logger, error) {
	l, err := logrus.NewLogger(c.stderr, c.flags.logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return l, nil
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "buildffs [BUILDTYPE] [CI]",
		Short: "Build the NvStrapsReBar driver and package it as an FFS file",
		Long: `Runs the EDK2 build for the NvStrapsReBar DXE driver, marks the image
NX compatible and packages it into NvStrapsReBar.ffs with GenSec and GenFfs.

BUILDTYPE is DEBUG, RELEASE (default) or NOOPT. Passing a second argument
selects automated mode: the command runs from the EDK2 workspace root and
substitutes $TARGET, $TARGET_ARCH and $TOOL_CHAIN_TAG into Conf/target.txt.
Without it the command runs from the driver directory, two levels below the
workspace root.`,
		Example: `  buildffs                      # interactive RELEASE build
  buildffs debug                # interactive DEBUG build
  buildffs release ci           # automated build from the workspace root
  buildffs release ci --checksum --sign-key release.asc`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetOut(c.stdout)
	root.SetErr(c.stderr)

	root.PersistentFlags().StringVar(&c.flags.configPath, "config", "", "project configuration file (default ./buildffs.yaml if present)")
	root.PersistentFlags().StringVar(&c.flags.logLevel, "log-level", "info", "log level: debug, info, warn, error")

	addBuildFlags(root, c)

	root.AddCommand(newPatchCmd(c), newVerifyCmd(c))

	return root
}

// execute runs the CLI and returns the process exit code
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	c := &cli{stdout: stdout, stderr: stderr}

	root := newRootCmd(c)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var notFound *entities.ArtifactNotFoundError
	if errors.As(err, &notFound) {
		//nolint:errcheck // Best-effort terminal output
		color.New(color.FgRed, color.Bold).Fprintln(stdout, "Build failed")
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}
