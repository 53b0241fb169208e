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
	"github.com/gnames/mycocurate/internal/iobusco"
	"github.com/spf13/cobra"
)

// getBuscoCmd returns the busco command.
func getBuscoCmd() *cobra.Command {
	buscoCmd := &cobra.Command{
		Use:   "busco",
		Short: "Summarize BUSCO results",
		Long: `Collect BUSCO short summaries of all proteomes into one table.

Every portal of 'proteomes_all_list.csv' must have a folder
'BUSCO_results/busco_renamed/<portal>.fasta'. The newest short_summary JSON
of each folder is parsed. Field names of different BUSCO releases are
described in ~/.config/mycocurate/busco_schemas.yaml.

Examples:
  mycocurate busco`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := iobusco.Summarize(cmd.Context(), cfg)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	return buscoCmd
}
