package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/Pirrikos/claritydesk/internal/config"
	"github.com/Pirrikos/claritydesk/internal/state"
	"github.com/Pirrikos/claritydesk/internal/vpath"
)

func addState(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Show the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.NewManager()
			if err := cfg.Load(); err != nil {
				return err
			}
			st := state.Load(cfg.StatePath())

			bold := color.New(color.Bold)
			_, _ = bold.Fprintln(color.Output, "Tabs")
			if len(st.OpenTabs) == 0 {
				_, _ = color.New(color.Faint, color.Italic).Fprintln(color.Output, "none")
			} else {
				tbl := uitable.New()
				tbl.Separator = "  "
				for i, tab := range st.OpenTabs {
					marker := ""
					if st.ActiveTab != nil && vpath.Equal(tab, *st.ActiveTab) {
						marker = color.GreenString("*")
					}
					tbl.AddRow(i, marker, displayPath(tab))
				}
				_, _ = fmt.Fprintln(color.Output, tbl)
			}

			_, _ = bold.Fprintln(color.Output, "History")
			printHistory(st.History, st.HistoryIndex)
			return nil
		},
	}

	addStateClear(cmd)
	topLevel.AddCommand(cmd)
}

func addStateClear(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.NewManager()
			if err := cfg.Load(); err != nil {
				return err
			}
			if err := os.Remove(cfg.StatePath()); err != nil && !os.IsNotExist(err) {
				return err
			}
			return nil
		},
	}

	parent.AddCommand(cmd)
}
