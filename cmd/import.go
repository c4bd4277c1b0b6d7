package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/geosamples/curator/transform"
)

var importActor string

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import a DataCite JSON document",
	Long: `Import a DataCite JSON document into the database.

A document whose DOI is already registered updates that resource;
anything else creates a new resource. Input defaults to stdin.

Examples:
  curator import record.json
  cat record.json | curator import`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importActor, "actor", "", "Acting user recorded on created resources")
}

func runImport(cmd *cobra.Command, args []string) error {
	var raw []byte
	var err error
	if len(args) == 1 {
		raw, err = os.ReadFile(args[0])
	} else {
		raw, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	doc, err := transform.ParseDocument(raw)
	if err != nil {
		return err
	}

	cfg, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	actor := importActor
	if actor == "" {
		actor = cfg.Instance
	}

	importer := transform.NewImporter(store, nil)
	resource, updated, err := importer.Import(doc, actor)
	if err != nil {
		return err
	}

	verb := "created"
	if updated {
		verb = "updated"
	}
	fmt.Printf("%s resource %d: %s\n", verb, resource.ID, resource.MainTitle())
	return nil
}
