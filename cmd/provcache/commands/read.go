package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"go.trai.ch/provcache/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newReadCmd() *cobra.Command {
	var provenance provenanceFlags
	var scanner scannerFlags
	var normalize bool

	cmd := &cobra.Command{
		Use:   "read <coordinates>",
		Short: "Print stored scan results of a package",
		Long: `Print the scan results stored for the package with the given coordinates
("Type:Namespace:Name:Version"). With scanner flags only results whose
provenance matches the provenance flags and whose scanner is compatible
are printed. --normalize sorts findings and drops duplicates in the output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := domain.ParseIdentifier(args[0])
			if err != nil {
				return err
			}

			var container domain.ScanResultContainer
			if scanner.isSet() {
				prov, err := provenance.provenance()
				if err != nil {
					return err
				}
				pkg := domain.Package{ID: id, Provenance: prov}
				container, err = c.app.ReadCompatible(cmd.Context(), pkg, scanner.details())
				if err != nil {
					return err
				}
			} else {
				container, err = c.app.Read(cmd.Context(), id)
				if err != nil {
					return err
				}
			}

			if normalize {
				for i := range container.Results {
					container.Results[i].Summary = container.Results[i].Summary.Normalized()
				}
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(container); err != nil {
				return zerr.Wrap(err, "failed to write scan results")
			}
			return nil
		},
	}

	provenance.register(cmd)
	scanner.register(cmd)
	cmd.Flags().BoolVar(&normalize, "normalize", false, "sort findings and drop duplicates")

	return cmd
}
