package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// ErrInvalidField is returned for malformed --field values
var ErrInvalidField = errors.New("invalid field")

// Fetcher is satisfied by every entity store
type Fetcher interface {
	FetchAll(ctx context.Context)
	Refresh(ctx context.Context)
	Error() string
}

// Load populates a store, bypassing the cache when refresh is set.
// The store's fetch error, if any, is returned as an error.
func Load(ctx context.Context, s Fetcher, refresh bool) error {
	if refresh {
		s.Refresh(ctx)
	} else {
		s.FetchAll(ctx)
	}
	if msg := s.Error(); msg != "" {
		return errors.New(msg)
	}
	return nil
}

// AddOutputFlags registers the --json and --quiet flags every command has
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")
}

// CanPrompt reports whether cmd may fall back to an interactive form:
// stdin is a terminal and neither --json nor --quiet is set
func CanPrompt(cmd *cobra.Command) bool {
	f := FormatterFor(cmd)
	if f.JSON || f.Quiet {
		return false
	}
	in, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd())
}

// MissingFlags returns the names that were not passed on the command line
func MissingFlags(cmd *cobra.Command, names ...string) []string {
	var missing []string
	for _, name := range names {
		if !cmd.Flags().Changed(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// RequiredFlagsError reports missing flags the way cobra does, as a usage error
func RequiredFlagsError(f *OutputFormatter, missing []string) error {
	quoted := make([]string, len(missing))
	for i, name := range missing {
		quoted[i] = strconv.Quote(name)
	}
	return f.Usage(
		fmt.Sprintf("required flag(s) %s not set", strings.Join(quoted, ", ")),
		"Pass the flags, or run in a terminal to fill in a form",
	)
}

// FormatterFor builds the formatter from a command's output flags
func FormatterFor(cmd *cobra.Command) *OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return NewFormatter(jsonOutput, quietMode, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// OptionalString returns a pointer to the flag value when the flag was set
func OptionalString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

// ParseFields turns k=v pairs into a field map. Values that parse as JSON
// (numbers, booleans, quoted strings, arrays, objects) keep their type;
// anything else is a plain string.
func ParseFields(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	fields := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q (want key=value)", ErrInvalidField, pair)
		}
		fields[key] = parseFieldValue(value)
	}
	return fields, nil
}

func parseFieldValue(value string) any {
	if _, err := strconv.ParseFloat(value, 64); err == nil || looksLikeJSON(value) {
		var v any
		if err := json.Unmarshal([]byte(value), &v); err == nil {
			return v
		}
	}
	return value
}

func looksLikeJSON(value string) bool {
	switch value {
	case "true", "false", "null":
		return true
	}
	return strings.HasPrefix(value, "[") || strings.HasPrefix(value, "{") || strings.HasPrefix(value, `"`)
}
