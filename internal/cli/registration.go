package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	appServices "github.com/yigit/registrar/internal/app/services"
)

func newRegisterCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "register <student> <offering-id>",
		Short: "Register a student for an offering",
		Args:  cobra.ExactArgs(2),
		RunE: a.run(func(cmd *cobra.Command, store *appServices.Store, args []string) error {
			offering, err := store.Offering(args[1])
			if err != nil {
				return fmt.Errorf("failed to register: %w", err)
			}
			registration, err := store.Register(cmd.Context(), args[0], &offering)
			if err != nil {
				return fmt.Errorf("failed to register: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), registration.String())
			return nil
		}),
	}
}

func newRegistrationsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "registrations",
		Short: "List registrations in the order they were made",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, store *appServices.Store, args []string) error {
			registrations := store.Registrations()
			if len(registrations) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No registrations.")
				return nil
			}
			for _, r := range registrations {
				fmt.Fprintln(cmd.OutOrStdout(), r.String())
			}
			return nil
		}),
	}
}
