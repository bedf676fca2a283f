package internal

import (
	"github.com/genspectrum/sourcewatch/internal/middleware"
	"github.com/spf13/cobra"
)

var defaultCommands = []middleware.CommandFactory{
	middleware.UseMiddlewareChain(middleware.RequireConfig)(NewCheckCmd),
	middleware.UseMiddlewareChain(middleware.RequireConfig)(NewStatusCmd),
	middleware.UseMiddlewareChain(middleware.RequireConfig)(NewInitCmd),
	NewVersionCmd,
}

func RegisterSubCommands(cmd *cobra.Command) {
	for _, factory := range defaultCommands {
		cmd.AddCommand(factory())
	}
}
