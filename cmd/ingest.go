package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/geosamples/curator/igsn"
)

var ingestActor string

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>",
	Short: "Ingest a pipe-delimited IGSN sample file",
	Long: `Ingest a pipe-delimited IGSN CSV file of physical samples.

Each row becomes one Physical Object resource. Rows missing a required
field (igsn, title, name) are skipped and reported; the remaining rows
commit together in one transaction.

Example:
  curator ingest samples.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestActor, "actor", "", "Acting user recorded on created resources")
}

func runIngest(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening %s: %w", args[0], err)
	}
	defer f.Close()

	result, err := igsn.Parse(f)
	if err != nil {
		return err
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "error: %s\n", e)
	}

	cfg, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	actor := ingestActor
	if actor == "" {
		actor = cfg.Instance
	}

	ingester := igsn.NewIngester(store, nil)
	report, err := ingester.Store(result, filepath.Base(args[0]), actor)
	if err != nil {
		return err
	}
	for _, e := range report.Errors {
		fmt.Fprintf(os.Stderr, "error: %s\n", e)
	}

	fmt.Printf("batch %s: created %d resources, %d rows failed\n",
		report.BatchID, report.Created, len(result.Errors)+len(report.Errors))
	return nil
}
