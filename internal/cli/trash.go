package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/Pirrikos/claritydesk/internal/trash"
)

func addTrash(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "trash",
		Short: "Inspect and empty the system trash",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addTrashList(cmd)
	addTrashEmpty(cmd)
	addTrashRm(cmd)

	topLevel.AddCommand(cmd)
}

func addTrashList(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List trashed items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !trash.IsAvailable() {
				return fmt.Errorf("%s is not available", trash.DisplayName())
			}
			items, err := trash.List()
			if err != nil {
				return err
			}
			if len(items) == 0 {
				_, _ = color.New(color.Faint, color.Italic).Fprintf(color.Output, "%s is empty\n", trash.DisplayName())
				return nil
			}

			bold := color.New(color.Bold)
			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow(bold.Sprint("NAME"), bold.Sprint("SIZE"), bold.Sprint("DELETED"), bold.Sprint("ORIGINAL"))
			for _, item := range items {
				size := ""
				if !item.IsDir {
					size = humanize.Bytes(uint64(item.Size))
				}
				deleted := ""
				if !item.DeletedAt.IsZero() {
					deleted = humanize.Time(item.DeletedAt)
				}
				tbl.AddRow(item.Name, size, deleted, item.OriginalPath)
			}
			_, _ = fmt.Fprintln(color.Output, tbl)
			return nil
		},
	}

	parent.AddCommand(cmd)
}

func addTrashEmpty(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "empty",
		Short: "Empty the trash",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := trash.Empty(); err != nil {
				return err
			}
			_, _ = color.New(color.Bold).Fprintf(color.Output, "%s emptied\n", trash.DisplayName())
			return nil
		},
	}

	parent.AddCommand(cmd)
}

func addTrashRm(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "rm <name>",
		Short: "Delete a single trashed item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := trash.List()
			if err != nil {
				return err
			}
			for _, item := range items {
				if item.Name == args[0] {
					return trash.Delete(item)
				}
			}
			return fmt.Errorf("no trashed item named %q", args[0])
		},
	}

	parent.AddCommand(cmd)
}
