package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mailslurper/settings-service/settings"
	"github.com/spf13/cobra"
)

func newSearchesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "searches",
		Aliases: []string{"search"},
		Short:   "Manage saved searches",
	}

	cmd.AddCommand(
		newSearchesListCmd(app),
		newSearchesAddCmd(app),
		newSearchesShowCmd(app),
		newSearchesDeleteCmd(app),
	)

	return cmd
}

func newSearchesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved searches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			searches, err := app.Service.RetrieveSavedSearches()
			if err != nil {
				return err
			}

			if app.JSON {
				return app.OutputJSON(searches)
			}

			if len(searches) == 0 {
				app.Printf("No saved searches\n")
				return nil
			}
			for i, s := range searches {
				app.Printf("%d\t%s\n", i, s.Name())
			}
			return nil
		},
	}
}

func newSearchesAddCmd(app *App) *cobra.Command {
	var criteriaJSON string

	cmd := &cobra.Command{
		Use:   "add <name> [field=value...]",
		Short: "Save a search",
		Long: `Save a search under a name. Criteria are given as field=value pairs,
or as a JSON object with --criteria. Pairs override fields of --criteria.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria, err := parseCriteria(criteriaJSON, args[1:])
			if err != nil {
				return err
			}

			if err := app.Service.AddSavedSearch(args[0], criteria); err != nil {
				return err
			}

			if app.JSON {
				return app.OutputJSON(criteria)
			}

			app.Printf("%s %s\n", app.SuccessColor("Saved search"), args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&criteriaJSON, "criteria", "", "search criteria as a JSON object")

	return cmd
}

func parseCriteria(criteriaJSON string, pairs []string) (settings.SavedSearch, error) {
	criteria := settings.SavedSearch{}

	if criteriaJSON != "" {
		if err := json.Unmarshal([]byte(criteriaJSON), &criteria); err != nil {
			return nil, fmt.Errorf("invalid --criteria: %w", err)
		}
		if criteria == nil {
			criteria = settings.SavedSearch{}
		}
	}

	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid criterion %q, expected field=value", p)
		}
		criteria[k] = v
	}

	return criteria, nil
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", s)
	}
	return i, nil
}

func newSearchesShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <index>",
		Short: "Show a saved search",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}

			s, err := app.Service.GetSavedSearchByIndex(index)
			if err != nil {
				return err
			}

			return app.OutputJSON(s)
		},
	}
}

func newSearchesDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <index>",
		Aliases: []string{"rm"},
		Short:   "Delete a saved search",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}

			if err := app.Service.DeleteSavedSearch(index); err != nil {
				return err
			}

			if app.JSON {
				return app.OutputJSON(map[string]int{"deleted": index})
			}

			app.Printf("%s %d\n", app.SuccessColor("Deleted saved search"), index)
			return nil
		},
	}
}
