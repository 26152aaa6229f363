package cli

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"employee-enrollment/internal/service"

	"github.com/spf13/cobra"
)

// NewInitCommand creates the workbook if it does not exist yet.
func NewInitCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the workbook with its header row",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.store.EnsureInitialized(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Workbook ready: %s\n", opts.store.Path())
			return nil
		},
	}
}

// NewAddCommand submits one enrollment, like the form's Submit button.
func NewAddCommand(opts *RootOptions) *cobra.Command {
	var in service.EnrollmentInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Enroll an employee",
		Long: `Enroll an employee.

For a predefined category the salary comes from the category table and
--salary is ignored. For "Others" or any other category --salary is required.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := opts.service.Submit(in); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", service.Message(err))
				return &reportedError{err: err}
			}
			fmt.Fprintln(cmd.OutOrStdout(), service.Message(nil))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Name, "name", "", "employee name")
	f.StringVar(&in.Role, "role", "", "role")
	f.StringVar(&in.Category, "category", "", "category (see enroll salary --list)")
	f.StringVar(&in.Salary, "salary", "", "salary, for categories without a default")
	f.StringVar(&in.AccountNumber, "account-number", "", "bank account number")
	f.StringVar(&in.AccountName, "account-name", "", "bank account name")
	f.StringVar(&in.BankName, "bank-name", "", "bank name")

	return cmd
}

// NewListCommand prints every enrollment as a table.
func NewListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List enrollments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view := opts.service.RenderDashboard()
			if view.Message != "" {
				fmt.Fprintln(cmd.OutOrStdout(), view.Message)
				if view.Failed {
					return errors.New(view.Message)
				}
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, strings.Join(view.Header, "\t"))
			for _, row := range view.Rows {
				fmt.Fprintln(w, strings.Join(row, "\t"))
			}
			return w.Flush()
		},
	}
}

// NewSalaryCommand shows the default salary of a category.
func NewSalaryCommand(opts *RootOptions) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "salary [category]",
		Short: "Show the default salary for a category",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if list {
				for _, name := range opts.service.Salaries().Categories() {
					if amount, ok := opts.service.ResolveSalary(name); ok {
						fmt.Fprintf(out, "%s\t%s\n", name, amount)
					} else {
						fmt.Fprintf(out, "%s\t(free input)\n", name)
					}
				}
				return nil
			}
			if len(args) == 0 {
				return errors.New("category is required unless --list is set")
			}
			if amount, ok := opts.service.ResolveSalary(args[0]); ok {
				fmt.Fprintln(out, amount)
			} else {
				fmt.Fprintf(out, "%s is not predefined; enter the salary manually\n", args[0])
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "list all categories")

	return cmd
}

// reportedError has already been shown to the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// IsReported reports whether err was already printed by a command.
func IsReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}
