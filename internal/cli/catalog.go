package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	appServices "github.com/yigit/registrar/internal/app/services"
)

// names binds a command group to one of the store's name lists.
type names struct {
	use    string
	noun   string
	list   func(s *appServices.Store) []string
	add    func(s *appServices.Store, ctx context.Context, name string) error
	rename func(s *appServices.Store, ctx context.Context, oldName, newName string) error
	remove func(s *appServices.Store, ctx context.Context, name string) error
}

var courseTypeNames = names{
	use:    "course-type",
	noun:   "course type",
	list:   (*appServices.Store).CourseTypes,
	add:    (*appServices.Store).AddCourseType,
	rename: (*appServices.Store).RenameCourseType,
	remove: (*appServices.Store).RemoveCourseType,
}

var courseNames = names{
	use:    "course",
	noun:   "course",
	list:   (*appServices.Store).Courses,
	add:    (*appServices.Store).AddCourse,
	rename: (*appServices.Store).RenameCourse,
	remove: (*appServices.Store).RemoveCourse,
}

func newNameCommand(a *app, n names) *cobra.Command {
	cmd := &cobra.Command{
		Use:   n.use,
		Short: "Manage " + n.noun + "s",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List " + n.noun + "s",
			Args:  cobra.NoArgs,
			RunE: a.run(func(cmd *cobra.Command, store *appServices.Store, args []string) error {
				list := n.list(store)
				if len(list) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No %ss.\n", n.noun)
					return nil
				}
				for _, name := range list {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}),
		},
		&cobra.Command{
			Use:   "add <name>",
			Short: "Add a " + n.noun,
			Args:  cobra.ExactArgs(1),
			RunE: a.run(func(cmd *cobra.Command, store *appServices.Store, args []string) error {
				if err := n.add(store, cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("failed to add %s: %w", n.noun, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s %q\n", n.noun, args[0])
				return nil
			}),
		},
		&cobra.Command{
			Use:   "rename <old-name> <new-name>",
			Short: "Rename a " + n.noun + " and the offerings using it",
			Args:  cobra.ExactArgs(2),
			RunE: a.run(func(cmd *cobra.Command, store *appServices.Store, args []string) error {
				if err := n.rename(store, cmd.Context(), args[0], args[1]); err != nil {
					return fmt.Errorf("failed to rename %s: %w", n.noun, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s %q to %q\n", n.noun, args[0], args[1])
				return nil
			}),
		},
		&cobra.Command{
			Use:   "remove <name>",
			Short: "Remove a " + n.noun + " and every offering using it",
			Args:  cobra.ExactArgs(1),
			RunE: a.run(func(cmd *cobra.Command, store *appServices.Store, args []string) error {
				if err := n.remove(store, cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("failed to remove %s: %w", n.noun, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s %q\n", n.noun, args[0])
				return nil
			}),
		},
	)
	return cmd
}
