package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/GregMSThompson/widget-dashboard/internal/errs"
	"github.com/GregMSThompson/widget-dashboard/internal/models"
	"github.com/GregMSThompson/widget-dashboard/internal/tui"
)

func main() {
	if err := rootCMD().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func rootCMD() *cobra.Command {
	a := new(app)
	root := &cobra.Command{
		Use:                "dashctl",
		Short:              "Inspect and configure the widget dashboard",
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}
	root.PersistentFlags().StringVarP(&a.cfgPath, "config", "c", "", "config file (environment only when empty)")
	root.PersistentFlags().StringVarP(&a.uid, "user", "u", "", "dashboard owner (the local dashboard when empty)")

	root.AddCommand(
		showCMD(a),
		visibleCMD(a),
		toggleCMD(a),
		moveCMD(a),
		patchCMD(a),
		resetCMD(a),
		catalogCMD(a),
		tuiCMD(a),
	)
	return root
}

func showCMD(a *app) *cobra.Command {
	var expand string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print every widget, visible or hidden, in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if expand != "" {
				a.dash.ToggleExpanded(models.WidgetID(expand))
			}
			return writeJSON(cmd.OutOrStdout(), a.dash.Manage(a.ctx))
		},
	}
	cmd.Flags().StringVar(&expand, "expand", "", "include the settings panel of this widget")
	return cmd
}

func visibleCMD(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "visible",
		Short: "Print the rendered dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeJSON(cmd.OutOrStdout(), a.dash.Dashboard(a.ctx))
		},
	}
}

func toggleCMD(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <widget-id>",
		Short: "Show or hide a widget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.dash.ToggleVisibility(a.ctx, models.WidgetID(args[0]))
			return writeJSON(cmd.OutOrStdout(), a.dash.Manage(a.ctx))
		},
	}
}

func moveCMD(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "move <index> <up|down>",
		Short: "Move the widget at index one step",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, direction, err := parseMoveArgs(args)
			if err != nil {
				return err
			}
			a.dash.MoveWidget(a.ctx, index, direction)
			return writeJSON(cmd.OutOrStdout(), a.dash.Manage(a.ctx))
		},
	}
}

func parseMoveArgs(args []string) (int, models.Direction, error) {
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, "", errs.NewValidationError(fmt.Sprintf("index must be an integer, got %q", args[0]))
	}
	direction, ok := models.ParseDirection(args[1])
	if !ok {
		return 0, "", errs.NewValidationError(fmt.Sprintf("direction must be up or down, got %q", args[1]))
	}
	return index, direction, nil
}

func patchCMD(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "patch <widget-id> <key=value>...",
		Short: "Change widget settings",
		Example: `  dashctl patch critique_panel limit=2
  dashctl patch student_list "timeRange=This Month"
  dashctl patch skills_radar 'enabledMetrics=["Power","VFX"]'`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := buildPatch(args[1:])
			if err != nil {
				return err
			}
			id := models.WidgetID(args[0])
			if err := a.dash.PatchSettings(a.ctx, id, patch); err != nil {
				return err
			}
			a.dash.ToggleExpanded(id)
			return writeJSON(cmd.OutOrStdout(), a.dash.Manage(a.ctx))
		},
	}
}

func resetCMD(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.dash.Reset(a.ctx)
			return writeJSON(cmd.OutOrStdout(), a.dash.Manage(a.ctx))
		},
	}
}

func catalogCMD(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the widget types and the settings they accept",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeJSON(cmd.OutOrStdout(), a.bs.Widgets.Catalog())
		},
	}
}

func tuiCMD(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := tea.NewProgram(tui.New(a.ctx, a.dash),
				tea.WithAltScreen(),
				tea.WithContext(a.ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err := p.Run()
			return err
		},
	}
}
