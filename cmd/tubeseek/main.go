// Package main is the terminal client for the youtube-search server.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Vizlook/youtube-search/internal/core/model"
	"github.com/Vizlook/youtube-search/internal/logger"
	"github.com/Vizlook/youtube-search/internal/session"
)

var rootCmd = &cobra.Command{
	Use:   "tubeseek",
	Short: "Search YouTube video moments and get cited answers",
	Long: `tubeseek talks to a running youtube-search server. "search" runs one query
and prints the matching videos; "interactive" keeps a session open where every
new line replaces the query still in flight.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("server", envOr("TUBESEEK_SERVER", "http://localhost:8080"), "base URL of the search server")
	rootCmd.PersistentFlags().String("log-level", "warn", "client log level")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// newSession builds a session from the persistent flags.
func newSession(cmd *cobra.Command) (*session.Session, error) {
	server, _ := cmd.Flags().GetString("server")
	level, _ := cmd.Flags().GetString("log-level")

	log, err := logger.New(level, "")
	if err != nil {
		return nil, err
	}
	log.SetOutput(os.Stderr)
	return session.New(session.NewClient(server), log.WithField("component", "session")), nil
}

func parseModeFlag(cmd *cobra.Command) (model.Mode, error) {
	raw, _ := cmd.Flags().GetString("mode")
	return model.ParseMode(raw)
}

func main() {
	_ = godotenv.Load()
	logrus.SetOutput(os.Stderr)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
