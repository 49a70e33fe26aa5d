package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/Pirrikos/claritydesk/internal/config"
	"github.com/Pirrikos/claritydesk/internal/fs"
	"github.com/Pirrikos/claritydesk/internal/state"
)

func addRoots(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "roots",
		Short: "List root folders and mounted volumes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.NewManager()
			if err := cfg.Load(); err != nil {
				return err
			}

			roots := fs.ListRoots()
			if order := state.Load(cfg.StatePath()).RootFoldersOrder; len(order) > 0 {
				roots = fs.OrderRoots(roots, order)
			}

			bold := color.New(color.Bold)
			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow(bold.Sprint("NAME"), bold.Sprint("PATH"))
			for _, root := range roots {
				tbl.AddRow(root.Name, root.Path)
			}
			_, _ = fmt.Fprintln(color.Output, tbl)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
