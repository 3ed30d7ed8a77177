package commands

import (
	"github.com/spf13/cobra"

	"github.com/balkashynov/cludy/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Run: func(cmd *cobra.Command, args []string) {
		app.InitDefaultLogger()
		app.MustReadEnv()
		app.MustInitApplicationLogger()

		app.MustOpenDatabase()
		defer app.CloseDatabase()

		app.MustListenAndServeHTTP()
	},
}
