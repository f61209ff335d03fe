package resolver

import (
	"context"
	"fmt"
	"strings"
)

// MinShortIDLength is the minimum required length for session prefixes.
const MinShortIDLength = 4

// SessionLister lists the sessions that have published frames.
type SessionLister interface {
	Sessions(ctx context.Context) ([]string, error)
}

// ResolveSession resolves a session ID or unique prefix to the full ID.
// An exact match always wins; otherwise the prefix must match exactly one
// known session.
func ResolveSession(ctx context.Context, lister SessionLister, shortID string) (string, error) {
	sessions, err := lister.Sessions(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list sessions: %w", err)
	}

	var matches []string
	for _, s := range sessions {
		if s == shortID {
			return s, nil
		}
		if strings.HasPrefix(s, shortID) {
			matches = append(matches, s)
		}
	}

	if len(shortID) < MinShortIDLength {
		return "", fmt.Errorf("session prefix must be at least %d characters (got %d)", MinShortIDLength, len(shortID))
	}

	switch len(matches) {
	case 0:
		return "", &NotFoundError{ShortID: shortID}
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguousError{ShortID: shortID, Matches: matches}
	}
}

// NotFoundError indicates no sessions matched the prefix.
type NotFoundError struct {
	ShortID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no sessions found matching '%s'", e.ShortID)
}

// AmbiguousError indicates multiple sessions matched the prefix.
type AmbiguousError struct {
	ShortID string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous session prefix '%s' matches %d sessions", e.ShortID, len(e.Matches))
}

// FormatAmbiguousError creates a user-friendly error message for ambiguous prefixes.
// Lists all matching sessions (up to 10, then "...and N more").
func FormatAmbiguousError(err *AmbiguousError) string {
	msg := fmt.Sprintf("'%s' matches %d sessions:\n", err.ShortID, len(err.Matches))

	displayCount := len(err.Matches)
	if displayCount > 10 {
		displayCount = 10
	}

	for i := 0; i < displayCount; i++ {
		msg += fmt.Sprintf("  %s\n", err.Matches[i])
	}

	if len(err.Matches) > 10 {
		msg += fmt.Sprintf("  ...and %d more\n", len(err.Matches)-10)
	}

	msg += "\nUse a longer prefix to pick one session."
	return msg
}

// IsNotFoundError checks if an error is a NotFoundError.
func IsNotFoundError(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// IsAmbiguousError checks if an error is an AmbiguousError.
func IsAmbiguousError(err error) bool {
	_, ok := err.(*AmbiguousError)
	return ok
}
