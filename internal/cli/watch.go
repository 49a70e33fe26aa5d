package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Pirrikos/claritydesk/internal/events"
)

func addWatch(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Stream folder events until interrupted",
		Example: `
claritydesk watch            # watch the active tab
claritydesk watch ~/Desktop
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.close()

			if len(args) == 1 {
				target := resolveTarget(args[0])
				if !s.shell.AddTab(target) {
					return fmt.Errorf("cannot open %s", target)
				}
			} else if s.shell.ActiveFolder() == "" {
				return fmt.Errorf("no active tab; pass a path")
			}

			ctx, cancel := setupSignalHandler()
			defer cancel()

			ch := s.shell.Subscribe()
			defer s.shell.Unsubscribe(ch)

			_, _ = color.New(color.Bold).Fprintf(color.Output,
				"watching %s\n", displayPath(s.shell.ActiveFolder()))

			for {
				select {
				case <-ctx.Done():
					return nil
				case ev, ok := <-ch:
					if !ok {
						return nil
					}
					printEvent(ev)
				}
			}
		},
	}

	topLevel.AddCommand(cmd)
}

func setupSignalHandler() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		cancel()
	}()

	return ctx, cancel
}

func printEvent(ev events.Event) {
	stamp := color.New(color.Faint).Sprint(time.Now().Format("15:04:05"))

	switch ev.Type {
	case events.FolderCreated:
		fmt.Fprintf(color.Output, "%s %s %s\n", stamp, color.GreenString(ev.Type.String()), ev.Path)
	case events.FolderDeleted, events.FolderDisappeared:
		fmt.Fprintf(color.Output, "%s %s %s\n", stamp, color.RedString(ev.Type.String()), ev.Path)
	case events.FolderRenamed:
		fmt.Fprintf(color.Output, "%s %s %s -> %s\n", stamp, color.YellowString(ev.Type.String()), ev.OldPath, ev.NewPath)
	case events.StructuralChange:
		fmt.Fprintf(color.Output, "%s %s %s\n", stamp, color.MagentaString(ev.Type.String()), ev.Path)
	case events.FilesChanged:
		fmt.Fprintf(color.Output, "%s %s %s\n", stamp, ev.Type, ev.Path)
	default:
		fmt.Fprintf(color.Output, "%s %s\n", stamp, ev.Type)
	}
}
