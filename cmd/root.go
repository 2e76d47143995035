// Package cmd contains the CLI commands for RFV
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Global vars needed for cobra CLI
var (
	cfgFile string
	logger  *logrus.Logger
)

// rootCmd represents the base command
//
//nolint:gochecknoglobals // Cobra commands are typically global
var rootCmd = &cobra.Command{
	Use:   "rfv",
	Short: "RFV - Recency, Frequency and Value customer segmentation",
	Long: `RFV segments the customers of a purchase ledger (ID_cliente, DiaCompra,
CodigoCompra, ValorTotal) into recency, frequency and value quartiles.
Each customer gets an A-D grade per metric, a three letter score such as
AAA or DDD and a suggested marketing action.

Run "rfv analyze" to segment a file from the terminal or "rfv serve" to
accept uploads over HTTP.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML file with ledger columns, export and server settings (default ./rfv.yaml, defaults apply when missing)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (trace, debug, info, warn, error); overrides logging in the config file")

	// Initialize logger
	logger = logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = "./rfv.yaml"
	}

	// Set log level
	logLevel, err := rootCmd.PersistentFlags().GetString("log-level")
	if err != nil {
		logLevel = "info" // Default to info if error
	}
	level, parseErr := logrus.ParseLevel(logLevel)
	if parseErr != nil {
		logger.WithError(parseErr).Warn("Invalid log level, defaulting to info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
}
