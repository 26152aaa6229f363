// Package cli is the command-line enrollment form.
package cli

import (
	"fmt"

	"employee-enrollment/internal/config"
	"employee-enrollment/internal/salary"
	"employee-enrollment/internal/service"
	"employee-enrollment/internal/store"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags and the wiring built from them.
type RootOptions struct {
	ConfigPath string
	File       string // overrides store.path

	store   *store.Store
	service *service.Service
}

// NewRootCommand creates the root command for the enroll CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "enroll",
		Short: "Employee enrollment",
		Long:  "Record employee enrollments in the shared workbook served by the dashboard.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
		SilenceUsage:  true,
		SilenceErrors: true, // main prints errors that were not reported
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ./config.yaml if present)")
	cmd.PersistentFlags().StringVar(&opts.File, "file", "", "workbook path (overrides store.path)")

	cmd.AddCommand(NewInitCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewSalaryCommand(opts))

	return cmd
}

func (o *RootOptions) setup() error {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	path := cfg.Store.Path
	if o.File != "" {
		path = o.File
	}
	o.store = store.New(path, store.WithSheet(cfg.Store.Sheet))
	o.service = service.New(o.store, salary.NewResolver(salary.EntriesFromConfig(cfg.Salary)))
	return nil
}
