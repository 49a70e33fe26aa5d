package cli

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/Pirrikos/claritydesk/internal/config"
)

func addConfig(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and change settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addConfigShow(cmd)
	addConfigInit(cmd)
	addConfigSet(cmd)

	topLevel.AddCommand(cmd)
}

func addConfigShow(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.NewManager()
			if err := cfg.Load(); err != nil {
				return err
			}
			if err := cfg.ParseError(); err != nil {
				_, _ = color.New(color.FgRed).Fprintf(color.Output,
					"config file is invalid, using defaults: %v\n", err)
			}

			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow("debounce-ms", cfg.DebounceMs())
			tbl.AddRow("history-limit", cfg.HistoryLimit())
			tbl.AddRow("restore-on-start", cfg.RestoreOnStart())
			tbl.AddRow("show-hidden", cfg.ShowHidden())
			tbl.AddRow("new-tab-location", cfg.Get().Tabs.NewTabLocation)
			tbl.AddRow("new-tab-path", cfg.NewTabPath())
			tbl.AddRow("state-file", cfg.StatePath())
			tbl.AddRow("database", cfg.DatabasePath())
			_, _ = fmt.Fprintln(color.Output, tbl)
			return nil
		},
	}

	parent.AddCommand(cmd)
}

func addConfigInit(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a fresh default config file, backing up any existing one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := config.GenerateConfig()
			if err != nil {
				return err
			}
			if backup != "" {
				fmt.Fprintf(color.Output, "previous config backed up to %s\n", backup)
			}
			fmt.Fprintf(color.Output, "wrote %s\n", config.ConfigPath())
			return nil
		},
	}

	parent.AddCommand(cmd)
}

func addConfigSet(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a setting",
		Example: `
claritydesk config set debounce-ms 500
claritydesk config set show-hidden true
claritydesk config set new-tab-location desktop
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.NewManager()
			if err := cfg.Load(); err != nil {
				return err
			}

			key, value := args[0], args[1]
			switch key {
			case "debounce-ms":
				ms, err := strconv.Atoi(value)
				if err != nil {
					return fmt.Errorf("%s needs a number: %q", key, value)
				}
				cfg.SetDebounceMs(ms)
			case "history-limit":
				limit, err := strconv.Atoi(value)
				if err != nil {
					return fmt.Errorf("%s needs a number: %q", key, value)
				}
				cfg.SetHistoryLimit(limit)
			case "restore-on-start":
				restore, err := strconv.ParseBool(value)
				if err != nil {
					return fmt.Errorf("%s needs true or false: %q", key, value)
				}
				cfg.SetRestoreOnStart(restore)
			case "show-hidden":
				show, err := strconv.ParseBool(value)
				if err != nil {
					return fmt.Errorf("%s needs true or false: %q", key, value)
				}
				cfg.SetShowHidden(show)
			case "new-tab-location":
				cfg.SetNewTabLocation(value)
			default:
				return fmt.Errorf("unknown key %q (debounce-ms, history-limit, restore-on-start, show-hidden, new-tab-location)", key)
			}
			return nil
		},
	}

	parent.AddCommand(cmd)
}
