package system

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/moksha_web/config"
	"github.com/Alijeyrad/moksha_web/pkg/clinicapi"
)

func NewPingCommand() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Check that the clinic API is reachable",
		Long: `Fetch the doctor roster from the configured clinic API and print its size.

Exits non-zero when the API cannot be reached or answers with an error.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
			if err != nil {
				return err
			}

			cfg, err := config.ReadConfig(filepath.Dir(cfgPath))
			if err != nil {
				return err
			}

			client, err := clinicapi.NewFromConfig(cfg.API)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			start := time.Now()
			doctors, err := client.ListDoctors(ctx)
			if err != nil {
				return fmt.Errorf("clinic api at %s: %w", cfg.API.BaseURL, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s reachable in %s, %d doctors listed\n",
				cfg.API.BaseURL, time.Since(start).Round(time.Millisecond), len(doctors))
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "How long to wait for the API")

	return cmd
}
