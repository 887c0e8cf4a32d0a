package cli

import (
	"fmt"
	"io"

	"github.com/mailslurper/settings-service/configs"
	"github.com/mailslurper/settings-service/handlers"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree. Output goes to out. The returned App
// is filled in before any command runs and must be closed by the caller.
func NewRootCmd(info handlers.BuildInfo, out io.Writer) (*cobra.Command, *App) {
	var (
		envFile    string
		jsonOutput bool
	)

	app := &App{}

	root := &cobra.Command{
		Use:   "mailslurper-settings",
		Short: "Saved searches and service settings for the MailSlurper front end",
		Long: `mailslurper-settings keeps the MailSlurper front end's saved searches and
service connection settings in a durable store, and derives the service URL
from them. Configuration is read from MAILSLURPER_* environment variables.`,
		Version:       fmt.Sprintf("v%s build on %s from sha1 %s", info.Version, info.BuildTime, info.Sha1ver),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configs.ParseConfig(&configs.Options{EnvFilePath: envFile})
			if err != nil {
				return err
			}

			configs.ConfigureLogger(cfg.LogLevel, cfg.LogFormat)

			return app.init(cfg, out, jsonOutput)
		},
	}

	root.SetOut(out)
	root.PersistentFlags().StringVar(&envFile, "envfile", "", "load environment variables from this file")
	root.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")

	root.AddCommand(
		newServeCmd(app, info),
		newSearchesCmd(app),
		newSettingsCmd(app),
	)

	return root, app
}

// Execute runs the command line with the process arguments.
func Execute(info handlers.BuildInfo, out io.Writer) error {
	return execute(NewRootCmd(info, out))
}

// execute runs cmd and closes app whether or not the command failed.
func execute(cmd *cobra.Command, app *App) error {
	defer app.Close()
	return cmd.Execute()
}
