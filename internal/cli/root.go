package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the registrar command tree. Storage is opened through open.
func NewRootCommand(open OpenFunc) *cobra.Command {
	a := &app{open: open}

	rootCmd := &cobra.Command{
		Use:   "registrar",
		Short: "Registrar - course catalog and student registrations",
		Long: `Registrar manages course types, courses, the offerings that pair them
and the students registered for each offering.

Every change is saved to the storage backend chosen in the config file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file path (default configs/config.yaml)")

	rootCmd.AddCommand(
		newNameCommand(a, courseTypeNames),
		newNameCommand(a, courseNames),
		newOfferingCommand(a),
		newRegisterCommand(a),
		newRegistrationsCommand(a),
		newServeCommand(a),
	)
	return rootCmd
}

// Execute runs the registrar binary.
func Execute() {
	if err := NewRootCommand(OpenConfiguredStorage).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
