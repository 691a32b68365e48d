package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"stave/internal/ast"
)

// ErrorLevel represents the severity of an error
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
)

// CompilerError represents a structured error with location and context
type CompilerError struct {
	Level    ErrorLevel
	Code     string       // Error code like E0701
	Message  string       // Primary error message
	Position ast.Position // Location in source
	Length   int          // Length of the problematic region
	Notes    []string     // Additional context notes
}

// ErrorReporter handles consistent error formatting
type ErrorReporter struct {
	filename string
	source   string
	lines    []string
}

// NewErrorReporter creates a new error reporter for a file
func NewErrorReporter(filename, source string) *ErrorReporter {
	return &ErrorReporter{
		filename: filename,
		source:   source,
		lines:    strings.Split(source, "\n"),
	}
}

// FormatError formats a compiler error with caret markers and notes
func (er *ErrorReporter) FormatError(err CompilerError) string {
	var result strings.Builder

	levelColor := er.getLevelColor(err.Level)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	// Header: error[E0701]: message
	if err.Code != "" {
		result.WriteString(fmt.Sprintf("%s[%s]: %s\n",
			levelColor(string(err.Level)), err.Code, err.Message))
	} else {
		result.WriteString(fmt.Sprintf("%s: %s\n",
			levelColor(string(err.Level)), err.Message))
	}

	// Location line: --> filename:line:column
	lineNumberWidth := er.getLineNumberWidth(err.Position.Line)
	indent := strings.Repeat(" ", lineNumberWidth)

	result.WriteString(fmt.Sprintf("%s %s %s:%d:%d\n",
		indent, dim("-->"), er.filename, err.Position.Line, err.Position.Column))

	// Main error line with caret marker
	if err.Position.Line <= len(er.lines) && err.Position.Line > 0 {
		result.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))

		lineContent := er.lines[err.Position.Line-1]
		result.WriteString(fmt.Sprintf("%s %s %s\n",
			bold(fmt.Sprintf("%*d", lineNumberWidth, err.Position.Line)),
			dim("│"),
			lineContent))

		marker := er.createMarker(err.Position.Column, err.Length)
		result.WriteString(fmt.Sprintf("%s %s %s\n",
			indent, dim("│"), marker))
	}

	// Notes
	for _, note := range err.Notes {
		noteColor := color.New(color.FgBlue).SprintFunc()
		result.WriteString(fmt.Sprintf("%s %s %s %s\n",
			indent, dim("│"), noteColor("note:"), note))
	}

	result.WriteString("\n")
	return result.String()
}

// getLevelColor returns the appropriate color function for an error level
func (er *ErrorReporter) getLevelColor(level ErrorLevel) func(...interface{}) string {
	switch level {
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

// createMarker creates the underline marker for errors
func (er *ErrorReporter) createMarker(column, length int) string {
	if length <= 0 {
		length = 1
	}

	spaces := strings.Repeat(" ", max(0, column-1))
	markerColor := color.New(color.FgRed, color.Bold).SprintFunc()

	return spaces + markerColor(strings.Repeat("^", length))
}

// getLineNumberWidth calculates the width needed for line numbers
func (er *ErrorReporter) getLineNumberWidth(line int) int {
	width := len(fmt.Sprintf("%d", line))
	if width < 3 {
		width = 3 // minimum width for visual alignment
	}
	return width
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
