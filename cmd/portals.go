/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/gnames/mycocurate/internal/ioportal"
	"github.com/gnames/mycocurate/pkg/lifecycle"
	"github.com/spf13/cobra"
)

// getPortalsCmd returns the portals command.
func getPortalsCmd() *cobra.Command {
	portalsCmd := &cobra.Command{
		Use:   "portals",
		Short: "Harvest the MycoCosm portal catalog",
		Long: `Download the MycoCosm fungi table and save it as the portals table.

The live page is tried first. If it cannot be downloaded, a locally saved
copy of the catalog (xlsx or csv) is used. Portals that are new compared
to the previous run are marked in the 'new_proteome' column, the previous
table is kept as 'mycocosm_fungi_data.prev.csv'.

Examples:
  mycocurate portals
  mycocurate portals --spreadsheet ~/Downloads/fungi.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyFlags(cmd, spreadsheetFlag)
			err := runPortals(cmd.Context())
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	portalsCmd.Flags().StringP(
		"spreadsheet", "s", "",
		"local copy of the catalog used when the page is unavailable",
	)

	return portalsCmd
}

func runPortals(ctx context.Context) error {
	var h lifecycle.Harvester = ioportal.NewHarvester(nil)
	if _, err := h.Harvest(ctx, cfg); err != nil {
		return err
	}
	gn.Info("Next step: run '<em>mycocurate fetch</em>'")
	return nil
}
