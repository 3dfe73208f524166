package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fluxbio/sbmlio/internal/reader"
	"github.com/fluxbio/sbmlio/internal/store"
)

const defaultCatalogPath = "sbmlio-catalog.db"

// ImportResult reports a catalog import.
type ImportResult struct {
	RecordID string `json:"record_id"`
	ModelID  string `json:"model_id"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	var catalogPath string
	cmd := &cobra.Command{
		Use:           "import <file>",
		Short:         "Read a model and add it to the local catalog",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(rootOpts, catalogPath, args[0], cmd)
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", defaultCatalogPath, "catalog database path")
	return cmd
}

func runImport(opts *RootOptions, catalogPath, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	ro, _, err := readerOptions(opts)
	if err != nil {
		return formatter.Fail(ExitCommandError, err.Error(), nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return formatter.Fail(ExitCommandError, err.Error(), nil)
	}
	m, err := reader.ReadBytes(data, ro)
	if err != nil {
		return formatter.Fail(ExitFailure, err.Error(), nil)
	}

	st, err := store.Open(catalogPath)
	if err != nil {
		return formatter.Fail(ExitCommandError, err.Error(), nil)
	}
	defer st.Close()

	id, err := st.Save(cmd.Context(), m, data)
	if err != nil {
		return formatter.Fail(ExitCommandError, err.Error(), nil)
	}
	result := ImportResult{RecordID: id, ModelID: m.ID}
	return formatter.Success(result, fmt.Sprintf("imported %s as %s", m.ID, id))
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	var catalogPath string
	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List cataloged models",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, catalogPath, cmd)
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", defaultCatalogPath, "catalog database path")
	return cmd
}

func runList(opts *RootOptions, catalogPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	st, err := store.Open(catalogPath)
	if err != nil {
		return formatter.Fail(ExitCommandError, err.Error(), nil)
	}
	defer st.Close()

	records, err := st.List(cmd.Context())
	if err != nil {
		return formatter.Fail(ExitCommandError, err.Error(), nil)
	}

	var text strings.Builder
	fmt.Fprintf(&text, "%d model(s) in catalog", len(records))
	for _, rec := range records {
		fmt.Fprintf(&text, "\n%s  %s  species=%d reactions=%d genes=%d  %s",
			rec.ID, rec.ModelID, rec.Species, rec.Reactions, rec.GeneProducts,
			rec.ImportedAt.Format("2006-01-02"))
	}
	return formatter.Success(records, text.String())
}
