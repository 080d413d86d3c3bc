package cli

import (
	"github.com/spf13/cobra"
	"github.com/yigit/registrar/internal/server"
)

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := server.NewServer(cmd.Context(), a.configPath)
			if err != nil {
				return err
			}
			return srv.Run()
		},
	}
}
