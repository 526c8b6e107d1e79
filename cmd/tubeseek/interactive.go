package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/Vizlook/youtube-search/internal/core/model"
	"github.com/Vizlook/youtube-search/internal/session"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Type queries; a new line cancels the one still running",
	Long: `Interactive reads one query per line. Submitting a new query cancels the
previous one if it has not finished. Commands:
  :search   switch to search mode
  :answer   switch to answer mode
  :cancel   cancel the running query
  :quit     exit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := parseModeFlag(cmd)
		if err != nil {
			return err
		}
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		return interact(cmd, s, mode, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	interactiveCmd.Flags().String("mode", "search", "initial mode: search or answer")
	rootCmd.AddCommand(interactiveCmd)
}

func interact(cmd *cobra.Command, s *session.Session, mode model.Mode, in io.Reader, out io.Writer) error {
	var outMu sync.Mutex
	s.OnChange(func(snap session.Snapshot) {
		outMu.Lock()
		defer outMu.Unlock()
		switch snap.State {
		case session.Pending:
			fmt.Fprintf(out, "Searching (%s) %q...\n", strings.ToLower(string(snap.Mode)), snap.Query)
		case session.Cancelled:
			fmt.Fprintln(out, "Cancelled.")
		default:
			render(out, snap)
		}
	})

	var last *session.Run
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case ":quit", ":q":
			s.Cancel()
			return nil
		case ":cancel":
			s.Cancel()
			continue
		case ":search", ":answer":
			mode, _ = model.ParseMode(strings.TrimPrefix(line, ":"))
			outMu.Lock()
			fmt.Fprintf(out, "Mode: %s\n", mode)
			outMu.Unlock()
			continue
		}

		run, err := s.Submit(cmd.Context(), line, mode)
		if err != nil {
			outMu.Lock()
			fmt.Fprintln(out, "Query cannot be empty.")
			outMu.Unlock()
			continue
		}
		last = run
	}

	// Input closed: let the last query finish so its output is not lost.
	if last != nil {
		<-last.Done()
	}
	return scanner.Err()
}
