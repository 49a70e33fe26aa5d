package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

func addRecent(topLevel *cobra.Command) {
	var limit int
	var clear bool

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently visited folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.close()

			if s.db == nil {
				return fmt.Errorf("store unavailable")
			}
			if clear {
				return s.db.ClearVisits()
			}

			visits, err := s.db.RecentVisits(limit)
			if err != nil {
				return err
			}
			if len(visits) == 0 {
				_, _ = color.New(color.Faint, color.Italic).Fprintln(color.Output, "no visits yet")
				return nil
			}

			bold := color.New(color.Bold)
			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow(bold.Sprint("FOLDER"), bold.Sprint("VISITS"), bold.Sprint("LAST"))
			for _, v := range visits {
				tbl.AddRow(v.Path, v.Count, humanize.Time(v.LastVisit))
			}
			_, _ = fmt.Fprintln(color.Output, tbl)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "number of entries to show")
	cmd.Flags().BoolVar(&clear, "clear", false, "forget all visits")

	topLevel.AddCommand(cmd)
}
