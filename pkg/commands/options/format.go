package options

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// FormatOptions picks the encoding of exported and imported profiles.
type FormatOptions struct {
	Format string
}

func AddFormatArg(cmd *cobra.Command, o *FormatOptions) {
	cmd.Flags().StringVarP(&o.Format, "output", "o", "",
		"Document format. One of 'yaml' or 'json'. Guessed from the file extension when empty.")
}

// Resolve returns the format to use for path.
func (o *FormatOptions) Resolve(path string) (string, error) {
	f := strings.ToLower(o.Format)
	if f == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json":
			f = FormatJSON
		default:
			f = FormatYAML
		}
	}
	switch f {
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown format %q", o.Format)
}
