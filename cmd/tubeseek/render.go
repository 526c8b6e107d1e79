package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Vizlook/youtube-search/internal/core/citation"
	"github.com/Vizlook/youtube-search/internal/core/model"
	"github.com/Vizlook/youtube-search/internal/session"
)

const summaryWidth = 160

func render(w io.Writer, snap session.Snapshot) {
	switch snap.State {
	case session.Failed:
		fmt.Fprintln(w, snap.Message)
		return
	case session.Succeeded:
	default:
		return
	}
	if snap.Response == nil {
		return
	}

	resp := snap.Response
	if resp.Answer != nil {
		renderAnswer(w, *resp.Answer, resp.Results)
		fmt.Fprintln(w)
	}
	renderResults(w, resp.Results)
}

func renderResults(w io.Writer, results []model.ResultItem) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No matching results found.")
		return
	}

	for i, r := range results {
		fmt.Fprintf(w, "[%d] %s\n", i+1, r.Title)

		meta := []string{r.Author.Name}
		if d := formatDate(r.PublishedDate); d != "" {
			meta = append(meta, d)
		}
		meta = append(meta, model.FormatClock(r.Duration))
		fmt.Fprintf(w, "    %s\n", strings.Join(meta, " · "))
		fmt.Fprintf(w, "    %s\n", r.URL)

		if len(r.Highlights) > 0 {
			h := r.Highlights[0]
			fmt.Fprintf(w, "    Highlight at %s (%ds)\n", model.FormatClock(h.StartTime), int(h.Length()))
			if sec, ok := r.Summary.SectionAt(h.StartTime); ok {
				fmt.Fprintf(w, "    Section %s-%s: %s\n",
					model.FormatTimestamp(sec.StartTime), model.FormatTimestamp(sec.EndTime), sec.Title)
			}
		}
		if r.Summary != nil && r.Summary.OverallSummary != "" {
			fmt.Fprintf(w, "    %s\n", truncate(r.Summary.OverallSummary, summaryWidth))
		}
	}
}

// renderAnswer prints the answer, then the videos it cites numbered as in the result list,
// then any outside links.
func renderAnswer(w io.Writer, answer string, results []model.ResultItem) {
	fmt.Fprintln(w, "Answer:")
	fmt.Fprintln(w, answer)

	index := make(map[string]int, len(results))
	for i, r := range results {
		if _, ok := index[r.URL]; !ok {
			index[r.URL] = i + 1
		}
	}

	links := citation.Resolve(answer, results)
	cited := citation.CitedResults(answer, results)
	if len(cited) > 0 {
		fmt.Fprintln(w, "\nSources:")
		for _, r := range cited {
			fmt.Fprintf(w, "  [%d] %s (%s)\n", index[r.URL], r.Title, r.Author.Name)
		}
	}

	var external []string
	seen := make(map[string]bool)
	for _, l := range links {
		if l.Kind == citation.External && !seen[l.Href] {
			seen[l.Href] = true
			external = append(external, l.Href)
		}
	}
	if len(external) > 0 {
		fmt.Fprintln(w, "\nLinks:")
		for _, href := range external {
			fmt.Fprintf(w, "  %s\n", href)
		}
	}
}

func formatDate(raw string) string {
	if raw == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return raw
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
