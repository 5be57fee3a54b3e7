package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/provcache/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newExcludesCmd() *cobra.Command {
	var provenance provenanceFlags
	var path string

	cmd := &cobra.Command{
		Use:   "excludes <coordinates>",
		Short: "Print the path excludes configured for a package snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := domain.ParseIdentifier(args[0])
			if err != nil {
				return err
			}

			prov, err := provenance.provenance()
			if err != nil {
				return err
			}
			pkg := domain.Package{ID: id, Provenance: prov}
			out := cmd.OutOrStdout()

			if path != "" {
				if exclude, ok := c.app.IsExcluded(pkg, path); ok {
					_, err = fmt.Fprintf(out, "%s: excluded by %q (%s)\n", path, exclude.Pattern, exclude.Reason)
				} else {
					_, err = fmt.Fprintf(out, "%s: not excluded\n", path)
				}
				return err
			}

			excludes, _ := c.app.PathExcludes(pkg)
			if excludes == nil {
				excludes = []domain.PathExclude{}
			}

			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(excludes); err != nil {
				return zerr.Wrap(err, "failed to write path excludes")
			}
			return nil
		},
	}

	provenance.register(cmd)
	cmd.Flags().StringVar(&path, "path", "", "Report whether this path is excluded")

	return cmd
}
