package cli

import (
	"fmt"
	"strconv"

	"github.com/mailslurper/settings-service/settings"
	"github.com/spf13/cobra"
)

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage service settings",
	}

	cmd.AddCommand(
		newSettingsShowCmd(app),
		newSettingsSetCmd(app),
		newSettingsExistsCmd(app),
		newSettingsURLCmd(app),
		newSettingsFetchCmd(app),
		newSettingsSyncCmd(app),
	)

	return cmd
}

func (a *App) outputSettings(s *settings.ServiceSettings) error {
	if a.JSON {
		return a.OutputJSON(s)
	}
	a.Printf("address:\t%s\nport:\t\t%s\nversion:\t%s\nurl:\t\t%s\n",
		s.ServiceAddress, s.ServicePort, s.Version, s.ServiceURL())
	return nil
}

func newSettingsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the stored service settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Service.RetrieveServiceSettings()
			if err != nil {
				return err
			}
			return app.outputSettings(s)
		},
	}
}

func newSettingsSetCmd(app *App) *cobra.Command {
	var (
		address     string
		port        string
		version     string
		numericPort bool
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store service settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := &settings.ServiceSettings{
				ServiceAddress: address,
				ServicePort:    settings.StringPort(port),
				Version:        version,
			}
			if numericPort {
				n, err := strconv.Atoi(port)
				if err != nil {
					return fmt.Errorf("invalid numeric port %q", port)
				}
				s.ServicePort = settings.NumericPort(n)
			}

			if err := app.Service.StoreServiceSettings(s); err != nil {
				return err
			}
			return app.outputSettings(s)
		},
	}

	cmd.Flags().StringVar(&address, "address", "127.0.0.1", "service address")
	cmd.Flags().StringVar(&port, "port", "8085", "service port")
	cmd.Flags().StringVar(&version, "version", "v1", "service API version")
	cmd.Flags().BoolVar(&numericPort, "numeric-port", false, "store the port as a JSON number")

	return cmd
}

func newSettingsExistsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "exists",
		Short: "Report whether service settings are stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			exists, err := app.Service.ServiceSettingsExistInLocalStore()
			if err != nil {
				return err
			}
			if app.JSON {
				return app.OutputJSON(map[string]bool{"exists": exists})
			}
			app.Printf("%t\n", exists)
			return nil
		},
	}
}

func newSettingsURLCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "url",
		Short: "Print the service URL built from the stored settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.Service.GetServiceURL(nil)
			if err != nil {
				return err
			}

			c, err := d.Await(cmd.Context())
			if err != nil {
				return err
			}

			if app.JSON {
				return app.OutputJSON(c)
			}
			app.Printf("%s\n", c["serviceURL"])
			return nil
		},
	}
}

func newSettingsFetchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Fetch service settings from the peer without storing them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Service.GetServiceSettings(cmd.Context()).Await(cmd.Context())
			if err != nil {
				return err
			}
			return app.outputSettings(s)
		},
	}
}

func newSettingsSyncCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Store service settings from the peer if none are stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if force {
				s, err := app.Service.GetServiceSettings(cmd.Context()).Await(cmd.Context())
				if err != nil {
					return err
				}
				if err := app.Service.StoreServiceSettings(s); err != nil {
					return err
				}
				return app.outputSettings(s)
			}

			s, err := app.Service.EnsureServiceSettings(cmd.Context())
			if err != nil {
				return err
			}
			return app.outputSettings(s)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "replace stored settings with the peer's")

	return cmd
}
