package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/carbonwise/internal/carbon"
	"github.com/rshade/carbonwise/internal/profile"
	"github.com/rshade/carbonwise/internal/report"
)

// stdinPath selects standard input for --input.
const stdinPath = "-"

// EstimateParams holds the flags of the estimate command.
type EstimateParams struct {
	Input  string
	Output string
	Set    []string // key=value
}

// NewEstimateCmd creates the "estimate" subcommand, which estimates a
// profile read from a file or standard input.
func NewEstimateCmd() *cobra.Command {
	var params EstimateParams

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the footprint of a lifestyle profile",
		Long: `Read a lifestyle profile (YAML or JSON) and print its monthly and yearly
footprint, per-category breakdown and recommendations.

Missing fields take their defaults. --set overrides individual fields and
may be used without --input to build a profile entirely from flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeEstimate(cmd, params)
		},
	}

	cmd.Flags().StringVarP(&params.Input, "input", "i", "", `Profile file, or "-" for stdin`)
	cmd.Flags().StringVarP(&params.Output, "output", "o", string(report.FormatText), "Output format (text, json, yaml)")
	cmd.Flags().StringArrayVar(&params.Set, "set", nil, "Field override key=value (repeatable)")

	return cmd
}

func executeEstimate(cmd *cobra.Command, params EstimateParams) error {
	logger := loggerFrom(cmd)

	format, err := report.ParseFormat(params.Output)
	if err != nil {
		return err
	}

	overrides, err := ParseOverrides(params.Set)
	if err != nil {
		return err
	}

	raw, err := readProfile(cmd.InOrStdin(), params.Input)
	if err != nil {
		return err
	}
	if raw == nil {
		raw = make(map[string]any, len(overrides))
	}
	for k, v := range overrides {
		raw[k] = v
	}

	in, err := profile.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}

	res := carbon.NewEstimator().Estimate(in)
	logger.Debug().
		Str("operation", "Estimate").
		Float64("monthly_kg", res.MonthlyEmissions).
		Int("recommendation_count", len(res.Recommendations)).
		Msg("footprint calculated")

	return report.Write(cmd.OutOrStdout(), res, format)
}

// readProfile loads the untyped profile named by path. An empty path means
// no file; "-" reads stdin.
func readProfile(stdin io.Reader, path string) (map[string]any, error) {
	switch path {
	case "":
		return nil, nil
	case stdinPath:
		raw, err := profile.ReadYAML(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading profile from stdin: %w", err)
		}
		return raw, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening profile: %w", err)
	}
	defer f.Close()

	raw, err := profile.ReadYAML(f)
	if err != nil {
		return nil, fmt.Errorf("reading profile %s: %w", path, err)
	}
	return raw, nil
}

// ParseOverrides parses key=value pairs from --set. Keys must be profile
// field names; values are kept as strings and coerced by profile.Parse.
func ParseOverrides(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q: expected key=value", pair)
		}
		if !profile.IsField(key) {
			return nil, fmt.Errorf("invalid --set %q: unknown field %q", pair, key)
		}
		out[key] = strings.TrimSpace(value)
	}
	return out, nil
}
