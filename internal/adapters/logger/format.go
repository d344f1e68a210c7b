package logger

import (
	"errors"
	"strings"
)

// messager is implemented by zerr errors. Message returns the error's own
// text without the text of the errors it wraps.
type messager interface {
	Message() string
}

// errorEntry is one level of an error chain.
type errorEntry struct {
	Message string
}

// collectErrorEntries flattens an error chain into the messages of its
// levels, outermost first. Joined errors contribute each of their branches
// in order.
func collectErrorEntries(err error) []errorEntry {
	var entries []errorEntry
	var walk func(err error)

	walk = func(err error) {
		for err != nil {
			if joined, ok := err.(interface{ Unwrap() []error }); ok {
				for _, branch := range joined.Unwrap() {
					walk(branch)
				}
				return
			}

			m, ok := err.(messager)
			if !ok {
				entries = append(entries, errorEntry{Message: err.Error()})
				return
			}

			entries = append(entries, errorEntry{Message: m.Message()})
			err = errors.Unwrap(err)
		}
	}

	walk(err)
	if len(entries) == 0 {
		entries = append(entries, errorEntry{Message: err.Error()})
	}
	return entries
}

// formatErrorEntries renders the entries as a headline followed by an
// indented list of causes.
func formatErrorEntries(entries []errorEntry) string {
	var lines []string

	for i, entry := range entries {
		parts := strings.Split(entry.Message, "\n")

		if i == 0 {
			lines = append(lines, "Error: "+parts[0])
			for _, part := range parts[1:] {
				lines = append(lines, "       "+part)
			}
			continue
		}

		if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}
		lines = append(lines, "    → "+parts[0])
		for _, part := range parts[1:] {
			lines = append(lines, "      "+part)
		}
	}

	return strings.Join(lines, "\n")
}
