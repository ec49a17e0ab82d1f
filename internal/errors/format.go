// Package errors provides error formatting for relcheck CLI output.
package errors

import (
	"io"
	"sort"
	"strings"
)

// PrintOptions controls error output formatting.
type PrintOptions struct {
	// Verbose enables detailed error output with more context keys.
	Verbose bool
}

// Context key whitelist (default mode, in order)
var defaultContextKeys = []string{
	"op",
	"repo",
	"manifest",
	"changelog",
	"descriptor",
	"config",
	"tag",
	"crate",
	"version",
	"url",
	"status",
	"command",
	"exit_code",
	"output",
}

// Additional context keys for verbose mode
var verboseContextKeys = []string{
	"op",
	"repo",
	"manifest",
	"changelog",
	"descriptor",
	"config",
	"tag",
	"crate",
	"version",
	"url",
	"status",
	"command",
	"exit_code",
	"output",
	"timeout",
	"stderr",
	"hint",
}

// maxValueLen is the max chars for single-line context values.
const maxValueLen = 256

// maxExtraValueLen is the max chars for extra section values.
const maxExtraValueLen = 128

// Format formats an error for display without I/O.
// This is a pure function and returns the formatted string ready for printing.
func Format(err error, opts PrintOptions) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder

	ce, isCheck := AsCheckError(err)
	if !isCheck {
		// Fallback for non-CheckError errors
		sb.WriteString(err.Error())
		sb.WriteString("\n")
		return sb.String()
	}

	// Line 1: error_code
	sb.WriteString("error_code: ")
	sb.WriteString(string(ce.Code))
	sb.WriteString("\n")

	// Line 2: message
	sb.WriteString(ce.Msg)
	sb.WriteString("\n")

	// Blank line before context
	sb.WriteString("\n")

	contextKeys := defaultContextKeys
	if opts.Verbose {
		contextKeys = verboseContextKeys
	}

	printedKeys := make(map[string]bool)

	// Print context keys in order
	for _, key := range contextKeys {
		if ce.Details == nil {
			continue
		}
		val, ok := ce.Details[key]
		if !ok || val == "" {
			continue
		}
		// Skip hint - printed separately at the end
		if key == "hint" {
			continue
		}
		printedKeys[key] = true
		sb.WriteString(key)
		sb.WriteString(": ")
		sb.WriteString(sanitizeValue(val, maxValueLen))
		sb.WriteString("\n")
	}

	// In verbose mode, print extra keys under extra: section
	if opts.Verbose && ce.Details != nil {
		var extraKeys []string
		for key := range ce.Details {
			if !printedKeys[key] && key != "hint" {
				extraKeys = append(extraKeys, key)
			}
		}
		if len(extraKeys) > 0 {
			sort.Strings(extraKeys)
			sb.WriteString("\nextra:\n")
			for _, key := range extraKeys {
				val := ce.Details[key]
				if val == "" {
					continue
				}
				sb.WriteString("  ")
				sb.WriteString(key)
				sb.WriteString(": ")
				sb.WriteString(sanitizeValue(val, maxExtraValueLen))
				sb.WriteString("\n")
			}
		}
	}

	// Hint line (if present)
	if ce.Details != nil {
		if hint, ok := ce.Details["hint"]; ok && hint != "" {
			sb.WriteString("\nhint: ")
			sb.WriteString(hint)
			sb.WriteString("\n")
		}
	}

	// Try lines (suggestions for common errors)
	tryLines := deriveTryLines(ce)
	for _, try := range tryLines {
		sb.WriteString("try: ")
		sb.WriteString(try)
		sb.WriteString("\n")
	}

	return sb.String()
}

// PrintWithOptions writes a formatted error to w with the given options.
func PrintWithOptions(w io.Writer, err error, opts PrintOptions) {
	if err == nil {
		return
	}
	_, _ = io.WriteString(w, Format(err, opts))
}

// sanitizeValue sanitizes a value for single-line context output.
// - Trims trailing whitespace first
// - Normalizes CRLF to LF
// - Replaces newlines with literal \n
// - Truncates to maxLen chars
func sanitizeValue(val string, maxLen int) string {
	val = strings.TrimRight(val, " \t\r\n")
	val = strings.ReplaceAll(val, "\r\n", "\n")
	val = strings.ReplaceAll(val, "\n", "\\n")
	if len(val) > maxLen {
		return val[:maxLen] + "…"
	}
	return val
}

// deriveTryLines returns actionable suggestions based on error code.
func deriveTryLines(ce *CheckError) []string {
	if ce == nil {
		return nil
	}

	var lines []string

	switch ce.Code {
	case ENoManifest:
		lines = append(lines, "relcheck check --repo <path-to-crate-root>")
	case ENoRepo:
		lines = append(lines, "git init")
	case EInvalidConfig:
		lines = append(lines, "relcheck doctor")
	}

	return lines
}
