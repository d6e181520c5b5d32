package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	httpcmd "github.com/Alijeyrad/moksha_web/cmd/http"
	systemcmd "github.com/Alijeyrad/moksha_web/cmd/system"
)

var (
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "moksha",
	Short: "Moksha Dental Experts patient website.",
	Long: `Moksha is the patient-facing website of Moksha Dental Experts.
It lists the clinic's doctors and lets patients book, look up, reschedule and
cancel appointments against the clinic's appointments API.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global config flag, available for all commands.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")

	// Attach top-level command trees.
	rootCmd.AddCommand(systemcmd.NewSystemCommand())
	rootCmd.AddCommand(httpcmd.NewHTTPCommand())
}
