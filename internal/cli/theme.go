package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/recipecost/pkg/prefs"
)

// themeCommand creates the theme command. Without a subcommand it prints
// the stored theme.
func (c *CLI) themeCommand() *cobra.Command {
	get := c.themeGetCommand()

	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the colour theme",
		Long: `Show or change the colour theme used by charts and the interactive editor.

The theme is stored in the preference backend chosen in the config
([prefs] backend = file, redis, mongo or memory).`,
		Args: cobra.NoArgs,
		RunE: get.RunE,
	}

	cmd.AddCommand(get)
	cmd.AddCommand(c.themeSetCommand())
	cmd.AddCommand(c.themeToggleCommand())
	return cmd
}

func (c *CLI) themeGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the stored theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.Config.OpenPrefs(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			theme, err := store.Theme(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), theme)
			return nil
		},
	}
}

func (c *CLI) themeSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "set light|dark",
		Short:     "Store a theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(prefs.Light), string(prefs.Dark)},
		RunE: func(cmd *cobra.Command, args []string) error {
			theme, err := prefs.ParseTheme(args[0])
			if err != nil {
				return err
			}
			store, err := c.Config.OpenPrefs(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.SetTheme(cmd.Context(), theme); err != nil {
				return err
			}
			printSuccess("Theme set to %s", StyleHighlight.Render(theme.String()))
			return nil
		},
	}
}

func (c *CLI) themeToggleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.Config.OpenPrefs(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			theme, err := prefs.Toggle(cmd.Context(), store)
			if err != nil {
				return err
			}
			printSuccess("Theme set to %s", StyleHighlight.Render(theme.String()))
			return nil
		},
	}
}
