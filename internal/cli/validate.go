package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fluxbio/sbmlio/internal/xmldoc"
)

// ValidationResult holds the outcome of validating one document.
type ValidationResult struct {
	Valid       bool     `json:"valid"`
	Diagnostics []string `json:"diagnostics,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Open a document and report its diagnostics",
		Long: `Open an SBML document, collect the diagnostics the engine attaches to it,
and fail if any match the watched severity set (default: Fatal and Error).`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	ro, _, err := readerOptions(opts)
	if err != nil {
		return formatter.Fail(ExitCommandError, err.Error(), nil)
	}

	var oo *xmldoc.OpenOptions
	if ro != nil && ro.Severities != nil {
		oo = &xmldoc.OpenOptions{}
		for _, name := range ro.Severities {
			sev, ok := xmldoc.ParseSeverity(name)
			if !ok {
				return formatter.Fail(ExitCommandError, fmt.Sprintf("unknown severity %q", name), nil)
			}
			oo.Watched = append(oo.Watched, sev)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return formatter.Fail(ExitCommandError, err.Error(), nil)
	}

	doc, err := xmldoc.Open(data, oo)
	if err != nil {
		var pe *xmldoc.ParseError
		result := ValidationResult{Valid: false}
		if errors.As(err, &pe) {
			for _, d := range pe.Diagnostics {
				result.Diagnostics = append(result.Diagnostics, d.String())
			}
		}
		return formatter.Fail(ExitFailure, err.Error(), result)
	}
	defer doc.Close()

	result := ValidationResult{Valid: true}
	for _, d := range doc.Diagnostics() {
		result.Diagnostics = append(result.Diagnostics, d.String())
		formatter.VerboseLog("%s", d)
	}
	return formatter.Success(result, fmt.Sprintf("%s: valid (%d diagnostic(s) below watched severities)",
		path, len(result.Diagnostics)))
}
