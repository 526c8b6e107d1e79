package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Vizlook/youtube-search/internal/session"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Run one query and print the results",
	Long: `Search sends the query to the server and prints the matching videos.
With --mode answer it also prints the synthesized answer and the videos it cites.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := parseModeFlag(cmd)
		if err != nil {
			return err
		}
		s, err := newSession(cmd)
		if err != nil {
			return err
		}

		run, err := s.Submit(cmd.Context(), strings.Join(args, " "), mode)
		if err != nil {
			return err
		}
		<-run.Done()

		snap := s.Snapshot()
		render(cmd.OutOrStdout(), snap)
		if snap.State == session.Failed {
			return errors.New(snap.Message)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().String("mode", "search", "search or answer")
	rootCmd.AddCommand(searchCmd)
}
