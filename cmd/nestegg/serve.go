package main

import (
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/nestegg/internal/api"
)

func serveCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculation, projection and solve endpoints over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer func() { _ = a.logger.Sync() }()

			server := api.NewServer(a.engine())
			return server.ListenAndServe(cmd.Context(), firstNonEmpty(addr, a.settings.ServerAddr))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from settings, :8080)")
	return cmd
}
