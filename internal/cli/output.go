package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool
	Out   io.Writer
	Err   io.Writer
}

// NewFormatter creates a formatter writing to out and errOut.
// Nil writers fall back to stdout and stderr.
func NewFormatter(jsonOutput, quiet bool, out, errOut io.Writer) *OutputFormatter {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &OutputFormatter{JSON: jsonOutput, Quiet: quiet, Out: out, Err: errOut}
}

func (f *OutputFormatter) stdout() io.Writer {
	if f.Out == nil {
		return os.Stdout
	}
	return f.Out
}

func (f *OutputFormatter) stderr() io.Writer {
	if f.Err == nil {
		return os.Stderr
	}
	return f.Err
}

// Success outputs a successful operation result. human renders the
// human-readable form; nil falls back to a generic dump.
func (f *OutputFormatter) Success(data any, human func(w io.Writer) error) error {
	if f.Quiet {
		return f.printIDs(data)
	}

	if f.JSON {
		return json.NewEncoder(f.stdout()).Encode(map[string]any{
			"success": true,
			"data":    data,
		})
	}

	if human != nil {
		return human(f.stdout())
	}
	_, err := fmt.Fprintf(f.stdout(), "%+v\n", data)
	return err
}

// printIDs writes one id per line for entities, or nothing for other data
func (f *OutputFormatter) printIDs(data any) error {
	var ids []string
	switch v := data.(type) {
	case interface{ GetID() string }:
		ids = append(ids, v.GetID())
	case []string:
		ids = v
	default:
		if lister, ok := data.(interface{ IDs() []string }); ok {
			ids = lister.IDs()
		}
	}
	if len(ids) == 0 {
		return nil
	}
	_, err := fmt.Fprintln(f.stdout(), strings.Join(ids, "\n"))
	return err
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]any{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return json.NewEncoder(f.stdout()).Encode(map[string]any{
			"success": false,
			"error":   errData,
		})
	}

	fmt.Fprintf(f.stderr(), "❌ Error: %s\n", message)
	if suggestion != "" {
		fmt.Fprintf(f.stderr(), "💡 Suggestion: %s\n", suggestion)
	}
	return nil
}

// Fail prints err and returns it wrapped with the matching exit code
func (f *OutputFormatter) Fail(err error) error {
	code, name := classify(err)
	_ = f.Error(name, err.Error())
	return &CommandError{Code: code, Err: err}
}

// Usage prints a usage problem and returns an ExitUsage error
func (f *OutputFormatter) Usage(message, suggestion string) error {
	_ = f.ErrorWithSuggestion("USAGE_ERROR", message, suggestion)
	return &CommandError{Code: ExitUsage, Err: fmt.Errorf("%s", message)}
}

// List wraps a slice of entities so quiet mode prints every id
type List[T interface{ GetID() string }] []T

// IDs returns the id of every entity in order
func (l List[T]) IDs() []string {
	ids := make([]string, len(l))
	for i, item := range l {
		ids[i] = item.GetID()
	}
	return ids
}
