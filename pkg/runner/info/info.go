// Package info prints where deck keeps its data and what it sees.
package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/deck/pkg/app"
	"tableflip.dev/deck/pkg/commands/options"
	"tableflip.dev/deck/pkg/host"
	"tableflip.dev/deck/pkg/store"
)

type Info struct {
	Config  store.Config
	Session *app.Session
	JSON    bool
	Out     io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	w := n.Out
	if w == nil {
		w = color.Output
	}
	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}
	if n.Session == nil {
		return fmt.Errorf("info: no session")
	}

	var summary *app.Summary
	if s, err := n.Session.Summarize(); err == nil {
		summary = &s
	}

	if n.JSON {
		names, err := n.Session.Profiles(ctx)
		if err != nil {
			return err
		}
		return options.PrintJSON(w, struct {
			Path     string       `json:"path"`
			Listen   string       `json:"listen"`
			Platform string       `json:"platform"`
			Profiles []string     `json:"profiles"`
			Summary  *app.Summary `json:"summary,omitempty"`
		}{n.Config.BasePath(), n.Config.Listen(), n.Config.Platform(), names, summary})
	}

	if override := os.Getenv("DECK_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(w, "DECK_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(w, "DECK_CONFIG_PATH env var not set")
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("Config.path:", n.Config.BasePath())
	tbl.AddRow("Config.listen:", n.Config.Listen())
	tbl.AddRow("Config.platform:", n.Config.Platform())
	tbl.AddRow("Config.volume:", fmt.Sprintf("%.0f%%", n.Config.Volume()*100))
	tbl.AddRow("Config.debounce:", n.Config.Debounce().String())
	_, _ = fmt.Fprintln(w, tbl)

	_, _ = fmt.Fprintf(w, "Profiles:\n")
	names, err := n.Session.Profiles(ctx)
	if err != nil {
		return err
	}
	for _, k := range names {
		_, _ = fmt.Fprintf(w, "  %s\n", k)
	}
	if len(names) == 0 {
		_, _ = fmt.Fprintf(w, "  %s\n", "no profiles")
	}

	if summary != nil {
		_, _ = fmt.Fprintf(w, "Open: %s, %d tiles in %d folders, %d hotkeys, %d schedule items, %d conflicts\n",
			summary.Profile, summary.Tiles, summary.Folders, len(summary.Hotkeys), summary.Schedules, len(summary.Conflicts))
		if len(summary.Duplicates) > 0 {
			warn := color.New(color.FgHiRed)
			_, _ = warn.Fprintf(w, "Duplicate tile ids: %v\n", summary.Duplicates)
		}
	}
	return nil
}

// Stats prints one system load sample.
type Stats struct {
	Sample host.Sampler
	JSON   bool
	Out    io.Writer
}

func (s *Stats) Do(ctx context.Context) error {
	sample := s.Sample
	if sample == nil {
		sample = host.SystemLoad
	}
	l, err := sample(ctx)
	if err != nil {
		return err
	}
	w := s.Out
	if w == nil {
		w = color.Output
	}
	if s.JSON {
		return options.PrintJSON(w, l)
	}
	_, _ = fmt.Fprintf(w, "cpu %d%%  mem %d%%\n", l.CPU, l.Mem)
	return nil
}
