package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goplus/gqlls/gql"
	"github.com/goplus/gqlls/gql/autocomplete"
	"github.com/spf13/cobra"
)

// completion is the JSON form of a suggestion.
type completion struct {
	Label             string `json:"label"`
	Kind              string `json:"kind"`
	Detail            string `json:"detail,omitempty"`
	Documentation     string `json:"documentation,omitempty"`
	Deprecated        bool   `json:"deprecated,omitempty"`
	DeprecationReason string `json:"deprecationReason,omitempty"`
}

func newCompleteCmd() *cobra.Command {
	var (
		schemaPaths []string
		line        int
		character   int
	)
	cmd := &cobra.Command{
		Use:   "complete [flags] <file|->",
		Short: "Print the completions at a position as JSON",
		Long: `Print the completions at a zero-based position of a GraphQL document as
JSON. The document is read from stdin when the file is "-". Characters are
counted in UTF-16 code units, as in LSP.

Examples:
  gqlls complete --line 0 --character 8 query.graphql
  echo '{ me { ' | gqlls complete --schema api.graphql --character 7 -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readDocument(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			var proj *gql.Project
			if len(schemaPaths) > 0 {
				files, err := gql.ReadFiles(schemaPaths)
				if err != nil {
					return err
				}
				proj = gql.NewProject(files, gql.FeatAll)
			} else if proj, err = loadProject(cfg); err != nil {
				return err
			}
			schema, err := proj.Schema()
			if err != nil {
				return fmt.Errorf("failed to load schema: %w", err)
			}

			suggestions := autocomplete.GetAutocompleteSuggestions(schema, text, autocomplete.Cursor{
				Line:      line,
				Character: character,
			})
			out := make([]completion, 0, len(suggestions))
			for _, s := range suggestions {
				out = append(out, completion{
					Label:             s.Label,
					Kind:              s.Kind.String(),
					Detail:            s.Detail,
					Documentation:     s.Documentation,
					Deprecated:        s.IsDeprecated,
					DeprecationReason: s.DeprecationReason,
				})
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&schemaPaths, "schema", nil, "schema files, overriding the configured ones")
	flags.IntVar(&line, "line", 0, "zero-based line of the cursor")
	flags.IntVar(&character, "character", 0, "zero-based UTF-16 column of the cursor")
	return cmd
}

func readDocument(stdin io.Reader, name string) (string, error) {
	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}
	return string(data), nil
}
