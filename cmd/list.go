package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored resources",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		summaries, err := store.List()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDOI\tTYPE\tUPDATED\tTITLE")
		for _, s := range summaries {
			doi := s.DOI
			if doi == "" {
				doi = "-"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", s.ID, doi, s.ResourceType, s.UpdatedAt, s.Title)
		}
		return w.Flush()
	},
}
