// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"

	"stave/internal/errors"
	"stave/internal/ir"
	"stave/internal/parser"
	"stave/internal/semantic"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: stave <file.stv>")
		os.Exit(1)
	}

	// Configure logging (0 = info level, nil = default logger)
	commonlog.Configure(0, nil)

	startTime := time.Now()
	path := os.Args[1]

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read file: %v\n", err)
		os.Exit(1)
	}

	errorReporter := errors.NewErrorReporter(path, string(source))

	module, parseErr := parser.ParseSource(path, string(source))
	if parseErr != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n",
			color.New(color.FgRed, color.Bold).Sprint("error"), parseErr)
		color.Red("Compilation failed after %s", formatDuration(time.Since(startTime)))
		os.Exit(1)
	}

	hasErrors := false

	analyzer := semantic.NewAnalyzer()
	for _, semErr := range analyzer.Annotate(module) {
		fmt.Print(errorReporter.FormatError(errors.CompilerError{
			Level:    errors.Error,
			Code:     semErr.Code,
			Message:  semErr.Message,
			Position: semErr.Position,
			Length:   1,
		}))
		hasErrors = true
	}

	var irModule *ir.Module
	if !hasErrors {
		var irErrors []error
		irModule, irErrors = ir.BuildModule(module)
		for _, irErr := range irErrors {
			fmt.Print(formatIRError(errorReporter, irErr))
			hasErrors = true
		}
	}

	duration := formatDuration(time.Since(startTime))

	if !hasErrors {
		fmt.Println(ir.Print(irModule))
		color.Green("Successfully processed %s in %s", path, duration)
	} else {
		color.Red("Compilation failed after %s", duration)
		os.Exit(1)
	}
}

// formatIRError renders conversion errors with source context and validator
// violations as plain internal errors: a violation means the converter
// produced malformed SSA, so there is no source position to point at.
func formatIRError(reporter *errors.ErrorReporter, err error) string {
	switch e := err.(type) {
	case *ir.ConvertError:
		return reporter.FormatError(errors.CompilerError{
			Level:    errors.Error,
			Code:     e.Code,
			Message:  e.Message,
			Position: e.Pos,
			Length:   1,
		})
	case *ir.Violation:
		return fmt.Sprintf("%s[%s]: %s\n",
			color.New(color.FgRed, color.Bold).Sprint("internal error"), e.Code, e.Error())
	default:
		return fmt.Sprintf("%s: %v\n",
			color.New(color.FgRed, color.Bold).Sprint("error"), err)
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
