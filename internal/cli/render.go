package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/Pirrikos/claritydesk/internal/app"
	"github.com/Pirrikos/claritydesk/internal/vpath"
)

// displayPath renders virtual ids with friendly labels; real paths pass
// through.
func displayPath(p string) string {
	switch {
	case p == vpath.DesktopFocus:
		return "Desktop"
	case p == vpath.TrashFocus:
		return "Trash"
	case vpath.IsStateContext(p):
		return "context:" + vpath.StateContextName(p)
	}
	return p
}

// printTabs renders the tab list with the active tab marked.
func printTabs(shell *app.Shell) {
	tabs := shell.Tabs()
	if len(tabs) == 0 {
		faint := color.New(color.Faint, color.Italic)
		_, _ = faint.Fprintln(color.Output, "no open tabs")
		return
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("#"), bold.Sprint(""), bold.Sprint("FOLDER"))

	active := shell.ActiveIndex()
	for i, tab := range tabs {
		marker := ""
		if i == active {
			marker = color.GreenString("*")
		}
		tbl.AddRow(i, marker, displayPath(tab))
	}
	_, _ = fmt.Fprintln(color.Output, tbl)

	if ctx := shell.ActiveContext(); ctx != "" {
		_, _ = color.New(color.FgHiYellow).Fprintf(color.Output, "viewing %s\n", displayPath(ctx))
	}
}

// printHistory renders the navigation trail with the pointer marked.
func printHistory(entries []string, index int) {
	if len(entries) == 0 {
		faint := color.New(color.Faint, color.Italic)
		_, _ = faint.Fprintln(color.Output, "no history")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	for i, entry := range entries {
		marker := ""
		if i == index {
			marker = color.GreenString(">")
		}
		tbl.AddRow(marker, displayPath(entry))
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}
