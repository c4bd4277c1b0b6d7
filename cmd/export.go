package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/geosamples/curator/export"
	"github.com/geosamples/curator/validation"
)

var (
	exportFormat string
	exportOutput string
	exportRaw    bool
)

var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a resource as a DataCite document",
	Long: `Export a stored resource as a DataCite 4.6 document.

Output defaults to stdout. Schema validation is best-effort: if the
external validator is unreachable the export still proceeds, with the
warnings printed to stderr.

Examples:
  curator export 42
  curator export 42 --format xml -o record.xml`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json",
		"Output format ("+strings.Join(export.List(), ", ")+")")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
	exportCmd.Flags().BoolVar(&exportRaw, "compact", false, "Disable pretty-printing")
}

func runExport(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid resource id %q", args[0])
	}

	exporter, err := export.Get(exportFormat)
	if err != nil {
		return err
	}

	cfg, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	resource, err := store.Get(id)
	if err != nil {
		return err
	}

	out, err := exporter.Export(resource, export.Options{
		DefaultPublisher: cfg.DefaultPublisher,
		Pretty:           !exportRaw,
	})
	if err != nil {
		return err
	}

	// The schema validator is an external collaborator; none configured
	// means an empty result and the export proceeds unchecked.
	result := validation.Check(nil, out)
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	for _, v := range result.Violations {
		fmt.Fprintf(os.Stderr, "schema violation: %s\n", v)
	}

	if exportOutput == "" {
		fmt.Println(string(out))
		return nil
	}
	if err := os.WriteFile(exportOutput, append(out, '\n'), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", exportOutput, err)
	}
	return nil
}
