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
	"github.com/gnames/mycocurate/internal/ioseq"
	"github.com/spf13/cobra"
)

// getTFsCmd returns the tfs command.
func getTFsCmd() *cobra.Command {
	tfsCmd := &cobra.Command{
		Use:   "tfs",
		Short: "Extract transcription factor sequences",
		Long: `Save sequences with transcription factor domain hits.

For every proteome of 'proteome_tfs/proteome_list_with_renamed_files.csv'
target ids of 'hmmscan_results/<portal>.domtblout' are collected and
matching sequences are written to 'proteome_tfs/clean/<portal>_tfs.fasta'.

Examples:
  mycocurate tfs`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := ioseq.New().ExtractTFs(cmd.Context(), cfg)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	return tfsCmd
}
