package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/Pirrikos/claritydesk/internal/fs"
)

func addPin(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "pin",
		Short: "Pin folders for quick access",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addPinAdd(cmd)
	addPinRm(cmd)
	addPinList(cmd)

	topLevel.AddCommand(cmd)
}

func addPinAdd(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add <path>",
		Short: "Pin a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.close()

			if s.db == nil {
				return fmt.Errorf("store unavailable")
			}
			target := resolvePath(args[0])
			if !fs.DirExists(target) {
				return fmt.Errorf("not a folder: %s", target)
			}
			return s.db.AddPin(target)
		},
	}

	parent.AddCommand(cmd)
}

func addPinRm(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "rm <path>",
		Short: "Unpin a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.close()

			if s.db == nil {
				return fmt.Errorf("store unavailable")
			}
			return s.db.RemovePin(resolvePath(args[0]))
		},
	}

	parent.AddCommand(cmd)
}

func addPinList(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pinned folders",
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
			pins, err := s.db.Pins()
			if err != nil {
				return err
			}
			if len(pins) == 0 {
				_, _ = color.New(color.Faint, color.Italic).Fprintln(color.Output, "no pinned folders")
				return nil
			}

			faint := color.New(color.Faint)
			tbl := uitable.New()
			tbl.Separator = "  "
			for _, pin := range pins {
				note := ""
				if !fs.DirExists(pin) {
					note = faint.Sprint("(gone)")
				}
				tbl.AddRow(pin, note)
			}
			_, _ = fmt.Fprintln(color.Output, tbl)
			return nil
		},
	}

	parent.AddCommand(cmd)
}
