// Package transfer exports and imports profile documents as YAML or JSON.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/deck/pkg/app"
	"tableflip.dev/deck/pkg/commands/options"
	"tableflip.dev/deck/pkg/profile"
)

// Export writes the open profile.
type Export struct {
	Session *app.Session
	Format  string
	Out     io.Writer
}

func (e *Export) Do(_ context.Context) error {
	p := e.Session.Active()
	if p == nil {
		return app.ErrNoProfile
	}
	var (
		b   []byte
		err error
	)
	switch e.Format {
	case options.FormatJSON:
		b, err = profile.Encode(p)
	case options.FormatYAML, "":
		b, err = profile.EncodeYAML(p)
	default:
		return fmt.Errorf("transfer: unknown format %q", e.Format)
	}
	if err != nil {
		return err
	}
	w := e.Out
	if w == nil {
		w = color.Output
	}
	_, err = w.Write(b)
	return err
}

// Import reads a profile document and stores it, replacing a profile of
// the same name. Name overrides the document's own name.
type Import struct {
	Session *app.Session
	Format  string
	In      io.Reader
	Name    string
	Out     io.Writer
}

func (i *Import) Do(ctx context.Context) error {
	if i.In == nil {
		return errors.New("transfer: nothing to import")
	}
	data, err := io.ReadAll(i.In)
	if err != nil {
		return err
	}
	var p *profile.Profile
	switch i.Format {
	case options.FormatJSON:
		p, err = profile.Decode(data)
	case options.FormatYAML, "":
		p, err = profile.DecodeYAML(data)
	default:
		return fmt.Errorf("transfer: unknown format %q", i.Format)
	}
	if err != nil {
		return err
	}
	if name := strings.TrimSpace(i.Name); name != "" {
		p.Name = name
	}
	if err := i.Session.Import(ctx, p); err != nil {
		return err
	}
	w := i.Out
	if w == nil {
		w = color.Output
	}
	_, _ = fmt.Fprintf(w, "imported profile %s\n", p.Name)
	return nil
}
