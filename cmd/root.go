package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "studio",
	Short: "Crazy Thinker studio website",
	Long: `Serves the Crazy Thinker marketing site: Home, Services, Portfolio,
Pricing and Contact pages with per-visitor navigation, portfolio filtering
and contact form submission.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}
