package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a stored resource",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid resource id %q", args[0])
		}

		_, store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		r, err := store.Get(id)
		if err != nil {
			return err
		}

		fmt.Printf("Resource %d (%s)\n", r.ID, r.ResourceType.Name)
		if r.HasDOI() {
			fmt.Printf("  DOI:        %s\n", *r.DOI)
		}
		fmt.Printf("  Title:      %s\n", r.MainTitle())
		fmt.Printf("  Year:       %d\n", r.PublicationYear)
		if r.Publisher != "" {
			fmt.Printf("  Publisher:  %s\n", r.Publisher)
		}
		if r.Language != "" {
			fmt.Printf("  Language:   %s\n", r.Language)
		}

		for _, c := range r.Creators {
			if c.IsPerson() {
				fmt.Printf("  Creator:    %s\n", c.Person.DisplayName())
			} else {
				fmt.Printf("  Creator:    %s\n", c.Institution.Name)
			}
		}
		for _, c := range r.Contributors {
			name := ""
			if c.IsPerson() {
				name = c.Person.DisplayName()
			} else {
				name = c.Institution.Name
			}
			fmt.Printf("  Contributor: %s (%s)\n", name, c.Role)
		}

		for _, d := range r.Dates {
			fmt.Printf("  Date:       %s (%s)\n", d.Resolved(), d.Type)
		}
		if len(r.Subjects) > 0 {
			values := make([]string, len(r.Subjects))
			for i, s := range r.Subjects {
				values[i] = s.Value
			}
			fmt.Printf("  Subjects:   %s\n", strings.Join(values, ", "))
		}
		for _, right := range r.Rights {
			fmt.Printf("  License:    %s\n", right.Identifier)
		}

		if r.Sample != nil {
			fmt.Printf("  IGSN:       %s\n", r.Sample.IGSN)
			if r.Sample.SampleType != "" {
				fmt.Printf("  Sample:     %s\n", r.Sample.SampleType)
			}
			if r.Sample.Material != "" {
				fmt.Printf("  Material:   %s\n", r.Sample.Material)
			}
		}
		return nil
	},
}
