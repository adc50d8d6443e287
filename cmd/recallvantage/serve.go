package main

import (
	"github.com/spf13/cobra"
)

func newServeCommand(c *cli) *cobra.Command {
	var port int
	command := &cobra.Command{
		Use:   "serve",
		Short: "Run the http api",
		RunE: func(command *cobra.Command, args []string) error {
			if !command.Flags().Changed("port") {
				port = c.deps.Config.Server.Port
			}
			c.deps.Logger.Infow("starting api", "port", port)
			return c.deps.ApiHandler().StartApi(port)
		},
	}
	command.Flags().IntVar(&port, "port", 3009, "port to listen on, overrides server.port")
	return command
}
