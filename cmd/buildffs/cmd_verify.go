package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ochairo/buildffs/internal/domain-adapters/gateways"
	"github.com/ochairo/buildffs/internal/external-adapters/gpg"
)

var errVerificationFailed = errors.New("verification failed")

type verifyFlags struct {
	checksumFile string
	signature    string
	key          string
}

func newVerifyCmd(_ *cli) *cobra.Command {
	var flags verifyFlags

	cmd := &cobra.Command{
		Use:   "verify <file.ffs>",
		Short: "Verify a packaged driver against its checksum file and signature",
		Long: `Verifies a packaged driver. Without flags the checksum file <file>.sha256
is used when it exists. A signature is checked only when --signature is
given, and requires the signer's public key in --key.`,
		Example: `  buildffs verify NvStrapsReBar.ffs
  buildffs verify NvStrapsReBar.ffs --signature NvStrapsReBar.ffs.asc --key release.pub.asc`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, flags, args[0])
		},
	}

	cmd.Flags().StringVar(&flags.checksumFile, "checksum-file", "", "sha256sum-format checksum file (default <file>.sha256 if present)")
	cmd.Flags().StringVar(&flags.signature, "signature", "", "armored detached signature (.asc)")
	cmd.Flags().StringVar(&flags.key, "key", "", "armored public key of the signer")

	return cmd
}

func runVerify(cmd *cobra.Command, flags verifyFlags, filePath string) error {
	if flags.signature != "" && flags.key == "" {
		return errors.New("--signature requires --key")
	}

	if flags.checksumFile == "" {
		if _, err := os.Stat(filePath + gateways.ChecksumSuffix); err == nil {
			flags.checksumFile = filePath + gateways.ChecksumSuffix
		}
	}

	if flags.checksumFile == "" && flags.signature == "" {
		return fmt.Errorf("nothing to verify for %s: no checksum file or signature given", filePath)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "🔍 Verifying %s\n", filepath.Base(filePath))

	failed := 0

	if flags.checksumFile != "" {
		err := gateways.NewChecksumWriter().VerifyChecksumFile(cmd.Context(), filePath, flags.checksumFile)
		failed += report(out, "Checksum", err)
	}

	if flags.signature != "" {
		keyID, err := verifySignature(filePath, flags.signature, flags.key)
		if err == nil {
			fmt.Fprintf(out, "🔑 Signed by key %s\n", keyID)
		}
		failed += report(out, "Signature", err)
	}

	if failed > 0 {
		return errVerificationFailed
	}
	return nil
}

func verifySignature(filePath, sigPath, keyPath string) (string, error) {
	verifier, err := gpg.NewVerifier(keyPath)
	if err != nil {
		return "", err
	}
	return verifier.VerifyDetached(filePath, sigPath)
}

// report prints the outcome of one check and returns 1 if it failed
func report(out io.Writer, what string, err error) int {
	if err != nil {
		fmt.Fprintf(out, "❌ %s verification FAILED: %v\n", what, err)
		return 1
	}
	fmt.Fprintf(out, "✅ %s verified\n", what)
	return 0
}
