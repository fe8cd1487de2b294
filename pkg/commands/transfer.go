package commands

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/deck/pkg/commands/options"
	"tableflip.dev/deck/pkg/runner/transfer"
)

func addExport(topLevel *cobra.Command) {
	fo := &options.FormatOptions{}
	file := ""

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a profile as YAML or JSON.",
		Example: `
deck export --profile work > work.yaml
deck export --profile work -o json -f work.json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := fo.Resolve(file)
			if err != nil {
				return err
			}
			return withEnv(cmd.Context(), envOptions{open: true}, func(ctx context.Context, env *deckEnv) error {
				var out io.Writer = os.Stdout
				if file != "" {
					f, err := os.Create(file)
					if err != nil {
						return err
					}
					defer f.Close()
					out = f
				}
				e := transfer.Export{Session: env.Session, Format: format, Out: out}
				return e.Do(ctx)
			})
		},
	}
	options.AddFormatArg(cmd, fo)
	cmd.Flags().StringVarP(&file, "file", "f", "", "File to write. Defaults to stdout.")

	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command) {
	fo := &options.FormatOptions{}
	name := ""

	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Store a profile from a YAML or JSON document, replacing one of the same name.",
		Example: `
deck import work.yaml
deck import shared.json --name mine
cat work.yaml | deck import -
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			format, err := fo.Resolve(path)
			if err != nil {
				return err
			}
			var in io.Reader = os.Stdin
			if path != "-" {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			return withEnv(cmd.Context(), envOptions{}, func(ctx context.Context, env *deckEnv) error {
				if po.Name != "" {
					_ = env.Session.Open(ctx, po.Name)
				}
				i := transfer.Import{Session: env.Session, Format: format, In: in, Name: name}
				return i.Do(ctx)
			})
		},
	}
	options.AddFormatArg(cmd, fo)
	cmd.Flags().StringVar(&name, "name", "", "Store under this name instead of the document's.")

	topLevel.AddCommand(cmd)
}
