package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fluxbio/sbmlio/internal/reader"
)

// InfoResult summarizes one model.
type InfoResult struct {
	ModelID         string `json:"model_id"`
	Name            string `json:"name,omitempty"`
	Species         int    `json:"species"`
	Reactions       int    `json:"reactions"`
	Compartments    int    `json:"compartments"`
	GeneProducts    int    `json:"gene_products"`
	Objectives      int    `json:"objectives"`
	ActiveObjective string `json:"active_objective,omitempty"`
}

// NewInfoCommand creates the info command.
func NewInfoCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "info <file>",
		Short:         "Print a summary of a model",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(rootOpts, args[0], cmd)
		},
	}
}

func runInfo(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	ro, _, err := readerOptions(opts)
	if err != nil {
		return formatter.Fail(ExitCommandError, err.Error(), nil)
	}
	m, err := reader.ReadFile(path, ro)
	if err != nil {
		return formatter.Fail(ExitFailure, err.Error(), nil)
	}

	result := InfoResult{
		ModelID:         m.ID,
		Name:            m.Name,
		Species:         len(m.Species),
		Reactions:       len(m.Reactions),
		Compartments:    len(m.Compartments),
		GeneProducts:    len(m.GeneProducts),
		Objectives:      len(m.Objectives),
		ActiveObjective: m.ActiveObjective,
	}

	var text strings.Builder
	fmt.Fprintf(&text, "model %s", result.ModelID)
	if result.Name != "" {
		fmt.Fprintf(&text, " (%s)", result.Name)
	}
	fmt.Fprintf(&text, "\n  species: %d\n  reactions: %d\n  compartments: %d\n  gene products: %d\n  objectives: %d",
		result.Species, result.Reactions, result.Compartments, result.GeneProducts, result.Objectives)
	if result.ActiveObjective != "" {
		fmt.Fprintf(&text, "\n  active objective: %s", result.ActiveObjective)
	}
	return formatter.Success(result, text.String())
}
