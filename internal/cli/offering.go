package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	appServices "github.com/yigit/registrar/internal/app/services"
)

func newOfferingCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "offering",
		Short: "Manage offerings (course and course type pairs)",
	}

	var filterType string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List offerings",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, store *appServices.Store, args []string) error {
			offerings := store.FilterByType(filterType)
			if len(offerings) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No offerings.")
				return nil
			}
			for _, o := range offerings {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", o.ID, o.Label())
			}
			return nil
		}),
	}
	listCmd.Flags().StringVarP(&filterType, "type", "t", "", "only offerings of this course type")

	cmd.AddCommand(
		listCmd,
		&cobra.Command{
			Use:   "add <course> <course-type>",
			Short: "Offer a course as a course type",
			Args:  cobra.ExactArgs(2),
			RunE: a.run(func(cmd *cobra.Command, store *appServices.Store, args []string) error {
				offering, err := store.AddOffering(cmd.Context(), args[0], args[1])
				if err != nil {
					return fmt.Errorf("failed to add offering: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added offering %s\t%s\n", offering.ID, offering.Label())
				return nil
			}),
		},
		&cobra.Command{
			Use:   "update <offering-id> <course> <course-type>",
			Short: "Change the course and course type of an offering",
			Args:  cobra.ExactArgs(3),
			RunE: a.run(func(cmd *cobra.Command, store *appServices.Store, args []string) error {
				offering, err := store.UpdateOffering(cmd.Context(), args[0], args[1], args[2])
				if err != nil {
					return fmt.Errorf("failed to update offering: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated offering %s\t%s\n", offering.ID, offering.Label())
				return nil
			}),
		},
		&cobra.Command{
			Use:   "remove <offering-id>",
			Short: "Remove an offering and its registrations",
			Args:  cobra.ExactArgs(1),
			RunE: a.run(func(cmd *cobra.Command, store *appServices.Store, args []string) error {
				if err := store.RemoveOffering(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("failed to remove offering: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed offering %s\n", args[0])
				return nil
			}),
		},
	)
	return cmd
}
