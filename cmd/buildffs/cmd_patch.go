package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ochairo/buildffs/internal/domain-adapters/gateways"
	"github.com/ochairo/buildffs/internal/domain/interfaces"
)

func newPatchCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "patch <image.efi>...",
		Short: "Set the NX_COMPAT DllCharacteristics bit in PE/COFF images",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := c.logger()
			if err != nil {
				return err
			}

			patcher := gateways.NewImagePatcherGateway()
			out := cmd.OutOrStdout()

			for _, path := range args {
				result, err := patcher.SetNXCompat(cmd.Context(), path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}

				logger.Debug("patched image", interfaces.F("path", path), interfaces.F("format", result.Format))
				status := ""
				if !result.Changed() {
					status = " (already set)"
				}
				fmt.Fprintf(out, "%s: DllCharacteristics 0x%04x -> 0x%04x%s\n", path, result.Before, result.After, status)
			}

			return nil
		},
	}
}
