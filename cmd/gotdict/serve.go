package main

import (
	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/gotdict/server"
)

func newServeCommand(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve lookups and the word list over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			if addr == "" {
				addr = a.cfg.Server.Addr
			}

			svc, err := a.newService()
			if err != nil {
				return err
			}
			words, closeWords, err := a.newWordStore()
			if err != nil {
				return err
			}
			defer closeWords()

			ctx := cmd.Context()
			go svc.RunSweeper(ctx)

			srv := server.New(svc,
				server.WithWordList(words),
				server.WithMeaningFinder(a.newFinder()),
				server.WithCORSOrigins(a.cfg.Server.CORSOrigins...),
				server.WithLogger(a.logger),
			)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
