package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func addTabs(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "tabs",
		Short: "List open tabs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.close()

			printTabs(s.shell)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

func addClose(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "close <index|path>",
		Short: "Close a tab by index or folder",
		Example: `
claritydesk close 2
claritydesk close ~/Downloads
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.close()

			if idx, convErr := strconv.Atoi(args[0]); convErr == nil {
				if !s.shell.RemoveTab(idx) {
					return fmt.Errorf("no tab at index %d", idx)
				}
			} else if !s.shell.RemoveTabByPath(resolveTarget(args[0])) {
				return fmt.Errorf("no tab for %s", args[0])
			}

			printTabs(s.shell)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

func addSelect(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "select <index>",
		Short: "Make a tab active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("index must be a number: %q", args[0])
			}

			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.close()

			if !s.shell.SelectTab(idx) {
				return fmt.Errorf("no tab at index %d", idx)
			}
			printTabs(s.shell)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
