package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Pirrikos/claritydesk/internal/vpath"
)

// resolveTarget maps focus keywords to their virtual ids and expands
// everything else as a path.
func resolveTarget(input string) string {
	switch input {
	case "desktop":
		return vpath.DesktopFocus
	case "trash":
		return vpath.TrashFocus
	}
	return resolvePath(input)
}

func addOpen(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "open [path]",
		Short: "Open a folder in a new tab",
		Example: `
claritydesk open ~/Documents
claritydesk open .
claritydesk open desktop
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.close()

			target := s.cfg.NewTabPath()
			if len(args) == 1 {
				target = resolveTarget(args[0])
			}
			if !s.shell.AddTab(target) {
				return fmt.Errorf("cannot open %s", target)
			}
			printTabs(s.shell)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
