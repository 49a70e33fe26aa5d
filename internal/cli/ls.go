package cli

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/Pirrikos/claritydesk/internal/fs"
	"github.com/Pirrikos/claritydesk/internal/vpath"
)

func addLs(topLevel *cobra.Command) {
	var all bool

	cmd := &cobra.Command{
		Use:   "ls [path]",
		Short: "List a folder, directories first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.close()

			target := s.shell.ActiveFolder()
			if len(args) == 1 {
				target = resolveTarget(args[0])
			}
			if target == "" {
				return fmt.Errorf("no active tab; pass a path")
			}
			if target == vpath.DesktopFocus {
				target = fs.DesktopPath()
			}
			if vpath.IsVirtual(target) {
				return fmt.Errorf("cannot list %s; try 'trash list' or 'context show'", displayPath(target))
			}

			entries, err := fs.List(target)
			if err != nil {
				return err
			}

			showHidden := all || s.cfg.ShowHidden()
			dir := color.New(color.FgBlue, color.Bold)
			faint := color.New(color.Faint)
			tbl := uitable.New()
			tbl.Separator = "  "
			shown := 0
			for _, e := range entries {
				if !showHidden && strings.HasPrefix(e.Name, ".") {
					continue
				}
				shown++
				if e.IsDir {
					tbl.AddRow(dir.Sprint(e.Name+"/"), "", faint.Sprint(humanize.Time(e.ModTime)))
				} else {
					tbl.AddRow(e.Name, humanize.Bytes(uint64(e.Size)), faint.Sprint(humanize.Time(e.ModTime)))
				}
			}
			if shown == 0 {
				_, _ = color.New(color.Faint, color.Italic).Fprintln(color.Output, "empty")
				return nil
			}
			_, _ = fmt.Fprintln(color.Output, tbl)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "include hidden entries")

	topLevel.AddCommand(cmd)
}
