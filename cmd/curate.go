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
	"github.com/gnames/gn"
	"github.com/gnames/mycocurate/internal/iocurate"
	"github.com/spf13/cobra"
)

// getCurateCmd returns the curate command.
func getCurateCmd() *cobra.Command {
	curateCmd := &cobra.Command{
		Use:   "curate",
		Short: "Select proteome and CDS files of portals",
		Long: `Reconcile the files metadata with the portals table.

This command:
  1. Marks files of new proteomes
  2. Partitions portals by completeness of their phylogeny
  3. Selects one proteome and one CDS file per portal, flags duplicates
  4. Writes selection tables to 'mycocosm_data/curation'
  5. Creates 'proteomes_all_list.csv' unless it already exists

Examples:
  mycocurate curate`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := iocurate.New(nil).Curate(cmd.Context(), cfg)
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			gn.Info(`Next steps:
  - Download proteomes listed in '<em>%s</em>'
    into '<em>%s</em>'
  - Run '<em>mycocurate process</em>'`,
				cfg.ProteomesListPath(), cfg.CompressedDir())
			return nil
		},
	}

	return curateCmd
}
