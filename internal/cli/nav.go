package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func addBack(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "back",
		Short: "Go back in navigation history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.close()

			if !s.shell.GoBack() {
				return fmt.Errorf("nothing to go back to")
			}
			_, _ = color.New(color.Bold).Fprintln(color.Output, displayPath(s.shell.ActiveFolder()))
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

func addForward(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "forward",
		Short: "Go forward in navigation history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.close()

			if !s.shell.GoForward() {
				return fmt.Errorf("nothing to go forward to")
			}
			_, _ = color.New(color.Bold).Fprintln(color.Output, displayPath(s.shell.ActiveFolder()))
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
