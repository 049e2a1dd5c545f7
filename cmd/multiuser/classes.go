package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var classesCmd = &cobra.Command{
	Use:   "classes",
	Short: "List the configured user types in declaration order",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig()
		if err != nil {
			return err
		}

		table, err := loadUserTypes(config.UserTypesFile)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tCLASS\tFACTORY\tDEFAULT")
		for _, desc := range table.Descriptors() {
			isDefault := ""
			if desc.Class == table.Default() {
				isDefault = "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", desc.Key, desc.Class, desc.Factory, isDefault)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(classesCmd)
}
