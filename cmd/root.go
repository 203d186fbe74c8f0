// Package cmd implements the command-line interface for fightcrawl.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonesrussell/fightcrawl/cmd/crawl"
	cmdschedule "github.com/jonesrussell/fightcrawl/cmd/schedule"
	"github.com/jonesrussell/fightcrawl/internal/config"
)

// Version is set at build time with -ldflags "-X".
var Version = "dev"

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// Debug enables debug logging for all commands
	Debug bool

	rootCmd = &cobra.Command{
		Use:   "fightcrawl",
		Short: "Crawl FightMatrix historical MMA rankings",
		Long: `fightcrawl extracts historical MMA ranking snapshots and fighter
identity cross-references from FightMatrix and writes them to JSON Lines,
PostgreSQL or Elasticsearch.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd.Root())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command. SIGINT and SIGTERM cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml or ./config/config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fightcrawl version %s\n", Version)
		},
	})

	rootCmd.AddCommand(crawl.Command())
	rootCmd.AddCommand(cmdschedule.Command(Version))
}

// initConfig reads the config file, .env and environment variables into
// viper and binds the persistent flags of root.
func initConfig(root *cobra.Command) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := viper.BindPFlag("logging.debug", root.PersistentFlags().Lookup("debug")); err != nil {
		return fmt.Errorf("failed to bind debug flag: %w", err)
	}
	return nil
}
