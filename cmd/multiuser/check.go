package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tendant/simple-idm-multiuser/pkg/discriminator"
	apperrors "github.com/tendant/simple-idm-multiuser/pkg/errors"
	"github.com/tendant/simple-idm-multiuser/pkg/metrics"
	"github.com/tendant/simple-idm-multiuser/pkg/user"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the user type configuration against the built-in factories and forms",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig()
		if err != nil {
			return err
		}

		table, err := loadUserTypes(config.UserTypesFile)
		if err != nil {
			for field, msg := range apperrors.GetDetails(err) {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %v\n", field, msg)
			}
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d user types, default %s\n",
			config.UserTypesFile, len(table.Classes()), table.Default())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// loadUserTypes reads, validates and checks a user type file
func loadUserTypes(path string) (*discriminator.Table, error) {
	cfg, err := discriminator.LoadFile(path)
	if err != nil {
		metrics.RecordConfigError()
		return nil, err
	}
	table, err := discriminator.NewTable(cfg)
	if err != nil {
		metrics.RecordConfigError()
		return nil, err
	}
	if err := table.Check(user.DefaultCatalog()); err != nil {
		metrics.RecordConfigError()
		return nil, err
	}
	return table, nil
}
