package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/platinummonkey/pkglint/pkg/linter"
)

var (
	errorColor = color.New(color.FgRed, color.Bold)
	fixedColor = color.New(color.FgGreen)
	faintColor = color.New(color.Faint)
)

func writeResult(w io.Writer, format, root string, result *linter.Result, dryRun bool) error {
	switch format {
	case "text", "":
		return writeText(w, root, result, dryRun)
	case "json":
		return writeJSON(w, result)
	case "github":
		return writeGitHub(w, root, result)
	default:
		return fmt.Errorf("unknown output format %q (want text, json or github)", format)
	}
}

func writeText(w io.Writer, root string, result *linter.Result, dryRun bool) error {
	for _, f := range result.Failures {
		status := errorColor.Sprint("error")
		if f.Fixed {
			status = fixedColor.Sprint("fixed")
		}
		fmt.Fprintf(w, "%s %s %s\n", status, relPath(root, f.File), faintColor.Sprintf("[%s]", f.Rule))
		fmt.Fprintf(w, "  %s\n", f.Message)
		if f.LongMessage != "" {
			for _, line := range strings.Split(f.LongMessage, "\n") {
				fmt.Fprintf(w, "    %s\n", line)
			}
		}
	}

	verb := "wrote"
	if dryRun {
		verb = "would write"
	}
	for _, path := range result.Written {
		fmt.Fprintf(w, "%s %s\n", verb, relPath(root, path))
	}

	s := result.Summary
	summary := fmt.Sprintf("%d package(s), %d rule(s): %d failure(s), %d fixed, %d unfixed",
		s.Packages, s.Rules, s.Failures, s.Fixed, s.Unfixed)
	if s.Unfixed > 0 {
		errorColor.Fprintln(w, summary)
	} else {
		fixedColor.Fprintln(w, summary)
	}
	return nil
}

func writeJSON(w io.Writer, result *linter.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeGitHub prints workflow commands that GitHub Actions turns into annotations
func writeGitHub(w io.Writer, root string, result *linter.Result) error {
	for _, f := range result.Failures {
		level := "error"
		if f.Fixed {
			level = "notice"
		}
		message := f.Message
		if f.LongMessage != "" {
			message += "\n" + f.LongMessage
		}
		fmt.Fprintf(w, "::%s file=%s,title=%s::%s\n", level, relPath(root, f.File), f.Rule, escapeData(message))
	}
	return nil
}

func escapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	return strings.ReplaceAll(s, "\n", "%0A")
}
