/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/josephgoksu/RepoWing/internal/logger"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables debug logging.
	verbose bool
	// jsonOutput forces machine-readable output.
	jsonOutput bool
	// version is the application version.
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "repowing",
	Short: "RepoWing - repository analysis and classification",
	Long: `RepoWing inspects a repository's file tree and dependency manifests and
reports its tech stack, structure, code-quality signals, design paradigm,
architecture style and project type. It can also score a phased task plan
against the code that already exists.

Targets are a local directory or a GitHub repository (owner/name[@ref]).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// rootPersistentPreRunE is attached to rootCmd in init; referencing it from
// the rootCmd initializer would form an initialization cycle.
func rootPersistentPreRunE(cmd *cobra.Command, args []string) error {
	bindPersistentFlags()
	setupLogger()
	if err := InitConfig(); err != nil {
		return err
	}
	target := ""
	if len(args) > 0 {
		target = args[0]
	}
	logger.SetBasePath(appConfig.Memory.Path)
	logger.SetCommand(cmd.CommandPath(), target)
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	logger.SetVersion(version)
	defer logger.HandlePanic()

	if err := rootCmd.Execute(); err != nil {
		PrintError(friendlyMessage(err), err)
		os.Exit(1)
	}
}

// GetVersion returns the application version.
func GetVersion() string {
	return version
}

func init() {
	rootCmd.PersistentPreRunE = rootPersistentPreRunE
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.repowing.yaml or $HOME/.repowing.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print JSON instead of styled output")
	bindPersistentFlags()
}

// bindPersistentFlags ties the global flags to viper keys. It runs again
// before each command so a reset viper still sees the flags.
func bindPersistentFlags() {
	for _, name := range []string{"config", "verbose", "json"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

// setupLogger installs a text handler on stderr, at debug level with --verbose.
func setupLogger() {
	level := slog.LevelInfo
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// versionCmd prints the version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the RepoWing version",
	Args:  cobra.NoArgs,
	// Skip config loading so version always works.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "repowing %s\n", GetVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
