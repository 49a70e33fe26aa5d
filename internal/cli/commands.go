// Package cli implements the claritydesk command line: tab and navigation
// verbs against the persisted session, folder operations, and views over
// pins, recents, contexts, and the trash.
package cli

import (
	"github.com/spf13/cobra"
)

// New builds the root command with all verbs attached.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "claritydesk",
		Short:        "Folder-first desktop organizer shell.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

// AddCommands attaches every verb to the top level.
func AddCommands(topLevel *cobra.Command) {
	addOpen(topLevel)
	addTabs(topLevel)
	addClose(topLevel)
	addSelect(topLevel)
	addBack(topLevel)
	addForward(topLevel)
	addLs(topLevel)
	addContext(topLevel)
	addMkdir(topLevel)
	addMv(topLevel)
	addRm(topLevel)
	addPin(topLevel)
	addRecent(topLevel)
	addRoots(topLevel)
	addTrash(topLevel)
	addWatch(topLevel)
	addState(topLevel)
	addConfig(topLevel)
}
