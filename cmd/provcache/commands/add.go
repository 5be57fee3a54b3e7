package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/provcache/internal/app"
	"go.trai.ch/provcache/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <file.json>",
		Short: "Store a scan result",
		Long: `Store the scan result held by a JSON document of the form
{"id": "Type:Namespace:Name:Version", "result": {...}}.
Use "-" to read the document from standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readDocument(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			id, result, err := app.ParseAddDocument(data)
			if err != nil {
				return zerr.With(err, "file", args[0])
			}

			return c.app.Add(cmd.Context(), id, result)
		},
	}
}

func readDocument(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, zerr.Wrap(err, domain.ErrInputReadFailed.Error())
		}
		return data, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by the user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInputReadFailed.Error()), "file", path)
	}
	return data, nil
}
