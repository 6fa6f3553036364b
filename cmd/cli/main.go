package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/limaJavier/handbook/internal/config"
	"github.com/limaJavier/handbook/pkg/handbook"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configFile string
	dataDir    string
	logLevel   string
	outFile    string
	settings   config.Config
)

var rootCmd = &cobra.Command{
	Use:   "handbook",
	Short: "handbook answers course, program and eligibility queries over a processed handbook catalog",
	Long: `handbook loads the processed course and program snapshots of the handbook and answers
structure, course pool and eligibility queries, either once from the command line or as an HTTP service`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("data") {
			loaded.DataDir = dataDir
		}
		if cmd.Flags().Changed("log-level") {
			loaded.LogLevel = logLevel
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		loaded.ApplyLogging()
		settings = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "Directory holding the processed catalog files")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&outFile, "out", "o", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func loadHandbook() (*handbook.Handbook, error) {
	book, err := handbook.New(settings.DataDir)
	if err != nil {
		return nil, fmt.Errorf("cannot load catalog from %v: %w", settings.DataDir, err)
	}
	return book, nil
}

// writeOutput marshals the result into json and writes it to the output file or the Standard Output
func writeOutput(result any) error {
	resultJson, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("an error occurred while building output json: %w", err)
	}

	if outFile == "" {
		fmt.Println(string(resultJson))
		return nil
	}
	if err := os.WriteFile(outFile, resultJson, 0666); err != nil {
		return fmt.Errorf("an error occurred while writing to the output file: %w", err)
	}
	log.WithField("file", outFile).Debug("output written")
	return nil
}
