package cmd

import (
	"github.com/ethpandaops/rfv/pkg/engine"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra commands are typically global
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the RFV API service",
	Long:  `The API service accepts ledger uploads and returns RFV segmentation tables and exports.`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	// Silence usage on error
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	// Load configuration
	config, err := LoadConfig(cfgFile)
	if err != nil {
		return err
	}

	// The --log-level flag wins over the config file
	if !cmd.Flags().Changed("log-level") {
		level, err := logrus.ParseLevel(config.Logging)
		if err != nil {
			return err
		}
		logger.SetLevel(level)
	}

	logger.WithField("config", cfgFile).Info("Configuration loaded")

	svc, err := engine.NewService(logger, config)
	if err != nil {
		return err
	}

	return svc.Run(cmd.Context())
}
