package model

import (
	"fmt"
	"strings"

	"github.com/Vizlook/youtube-search/internal/apperr"
)

type Mode string

const (
	ModeSearch Mode = "Search"
	ModeAnswer Mode = "Answer"
)

func (m Mode) Valid() bool {
	return m == ModeSearch || m == ModeAnswer
}

// ParseMode accepts the canonical names case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "search":
		return ModeSearch, nil
	case "answer":
		return ModeAnswer, nil
	}
	return "", fmt.Errorf("unknown mode %q: %w", s, apperr.ErrInvalidRequest)
}

// Request is one pipeline invocation. Immutable once validated.
type Request struct {
	Query string `json:"query"`
	Mode  Mode   `json:"mode"`
}

// Normalize trims the query and validates both fields.
func (r Request) Normalize() (Request, error) {
	r.Query = strings.TrimSpace(r.Query)
	if r.Query == "" {
		return Request{}, fmt.Errorf("the query cannot be empty: %w", apperr.ErrInvalidRequest)
	}
	if !r.Mode.Valid() {
		return Request{}, fmt.Errorf("unknown mode %q: %w", r.Mode, apperr.ErrInvalidRequest)
	}
	return r, nil
}
