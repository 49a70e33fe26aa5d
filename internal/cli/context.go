package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/Pirrikos/claritydesk/internal/query"
)

func addContext(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "context",
		Short: "Work with state contexts: named queries that gather folders by criteria",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addContextList(cmd)
	addContextSet(cmd)
	addContextRm(cmd)
	addContextShow(cmd)
	addContextEnter(cmd)

	topLevel.AddCommand(cmd)
}

func addContextList(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List defined contexts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.close()

			stored := map[string]string{}
			if s.db != nil {
				stored, err = s.db.Contexts()
				if err != nil {
					return err
				}
			}

			bold := color.New(color.Bold)
			faint := color.New(color.Faint)
			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow(bold.Sprint("NAME"), bold.Sprint("QUERY"), "")
			for _, name := range []string{"recent", "stale"} {
				if _, shadowed := stored[name]; shadowed {
					continue
				}
				q, _ := s.shell.ContextDefinition(name)
				tbl.AddRow(name, q, faint.Sprint("builtin"))
			}
			names := make([]string, 0, len(stored))
			for name := range stored {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				tbl.AddRow(name, stored[name], "")
			}
			_, _ = fmt.Fprintln(color.Output, tbl)
			return nil
		},
	}

	parent.AddCommand(cmd)
}

func addContextSet(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "set <name> <query>",
		Short: "Define or replace a context",
		Example: `
claritydesk context set projects "name:proj* depth:2"
claritydesk context set crowded "entries:>40"
claritydesk context set fresh "modified:>week"
`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			qs := strings.Join(args[1:], " ")
			if q := query.Parse(qs); q.IsEmpty() {
				return fmt.Errorf("empty query")
			}

			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.close()

			if s.db == nil {
				return fmt.Errorf("store unavailable; cannot save contexts")
			}
			if err := s.db.SetContextQuery(name, qs); err != nil {
				return err
			}
			_, _ = color.New(color.Bold).Fprintf(color.Output, "%s = %s\n", name, qs)
			return nil
		},
	}

	parent.AddCommand(cmd)
}

func addContextRm(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "rm <name>",
		Short: "Remove a context definition",
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
			return s.db.RemoveContext(args[0])
		},
	}

	parent.AddCommand(cmd)
}

func contextRunFlags(cmd *cobra.Command, root *string, limit *int) {
	cmd.Flags().StringVar(root, "root", "", "folder to gather from (default: home)")
	cmd.Flags().IntVar(limit, "limit", 0, "cap the number of results")
}

func gatherRoot(flag string) (string, error) {
	if flag != "" {
		return resolvePath(flag), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("no home directory; pass --root")
	}
	return home, nil
}

func printResults(results []query.Result) {
	if len(results) == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprintln(color.Output, "no folders matched")
		return
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("FOLDER"), bold.Sprint("MODIFIED"))
	for _, r := range results {
		tbl.AddRow(r.Path, humanize.Time(r.ModTime))
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

func addContextShow(parent *cobra.Command) {
	var root string
	var limit int

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Gather the folders a context selects",
		Example: `
claritydesk context show recent
claritydesk context show projects --root ~/work --limit 20
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.close()

			from, err := gatherRoot(root)
			if err != nil {
				return err
			}
			results, err := s.shell.ResolveContext(args[0], from, limit)
			if err != nil {
				return err
			}
			printResults(results)
			return nil
		},
	}
	contextRunFlags(cmd, &root, &limit)

	parent.AddCommand(cmd)
}

func addContextEnter(parent *cobra.Command) {
	var root string
	var limit int

	cmd := &cobra.Command{
		Use:   "enter <name>",
		Short: "Switch the view to a context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.close()

			if !s.shell.EnterStateContext(args[0]) {
				return fmt.Errorf("unknown context %q", args[0])
			}

			from, err := gatherRoot(root)
			if err != nil {
				return err
			}
			results, err := s.shell.MaterializeContext(from, limit)
			if err != nil {
				return err
			}
			printResults(results)
			return nil
		},
	}
	contextRunFlags(cmd, &root, &limit)

	parent.AddCommand(cmd)
}
