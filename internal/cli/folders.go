package cli

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Pirrikos/claritydesk/internal/fs"
	"github.com/Pirrikos/claritydesk/internal/vpath"
)

func addMkdir(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "mkdir <path>",
		Short: "Create a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.close()

			target := resolvePath(args[0])
			created, err := s.shell.CreateFolder(filepath.Dir(target), filepath.Base(target))
			if err != nil {
				return err
			}
			_, _ = color.New(color.FgGreen).Fprintf(color.Output, "created %s\n", created)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

func addMv(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "mv <folder> <destination>",
		Short: "Rename a folder, or move it under an existing one",
		Example: `
claritydesk mv ~/docs/drafts ~/docs/archive    # archive exists: move into it
claritydesk mv ~/docs/drafts ~/docs/old-drafts # rename in place
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.close()

			src := resolvePath(args[0])
			dest := resolvePath(args[1])

			var moved string
			switch {
			case fs.DirExists(dest):
				moved, err = s.shell.MoveFolder(src, dest)
			case vpath.Equal(filepath.Dir(src), filepath.Dir(dest)):
				moved, err = s.shell.RenameFolder(src, filepath.Base(dest))
			default:
				return fmt.Errorf("destination does not exist: %s", dest)
			}
			if err != nil {
				return err
			}
			_, _ = color.New(color.Bold).Fprintf(color.Output, "%s -> %s\n", src, moved)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

func addRm(topLevel *cobra.Command) {
	var permanent bool

	cmd := &cobra.Command{
		Use:   "rm <folder>",
		Short: "Move a folder to the trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.close()

			target := resolvePath(args[0])
			if permanent {
				if err := s.shell.DeleteFolder(target); err != nil {
					return err
				}
				_, _ = color.New(color.FgRed).Fprintf(color.Output, "deleted %s\n", target)
				return nil
			}
			if err := s.shell.TrashFolder(target); err != nil {
				return err
			}
			_, _ = color.New(color.FgYellow).Fprintf(color.Output, "trashed %s\n", target)
			return nil
		},
	}
	cmd.Flags().BoolVar(&permanent, "permanent", false, "delete instead of trashing")

	topLevel.AddCommand(cmd)
}
