// Package cmd wires the shiftsat CLI's cobra command tree. initConfig loads a
// viper config file (--config, or ./shiftsat.yaml) and enables SHIFTSAT_* env
// lookup, but no command reads settings from viper: compile options come only
// from the input JSON.
package cmd

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	logLevel string
	log      = logrus.New()
)

// NewRootCmd builds the shiftsat root command and its subcommand tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "shiftsat",
		Short: "Compile workforce schedules into CP-SAT requests and analyze solver responses",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./shiftsat.yaml)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug|info|warn|error)")

	root.AddCommand(newCompileCmd())
	root.AddCommand(newAnalyzeCmd())
	return root
}

// Execute runs the root command, logging and exiting nonzero on failure.
func Execute(ctx context.Context) {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		log.WithError(err).Error("command failed")
		os.Exit(1)
	}
}

func initConfig() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	viper.SetEnvPrefix("SHIFTSAT")
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("shiftsat")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			return err
		}
	}
	return nil
}

func logEntry() *logrus.Entry {
	return logrus.NewEntry(log)
}
