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

// getFilterCmd returns the filter command.
func getFilterCmd() *cobra.Command {
	filterCmd := &cobra.Command{
		Use:   "filter",
		Short: "Keep sequences within length limits",
		Long: `Filter proteomes of 'proteomes/final' by sequence length.

Sequences with length in [min, max] are saved to 'proteomes/clean',
counts go to 'cleaned_proteomes_log.csv'.

Examples:
  mycocurate filter
  mycocurate filter --min 100 --max 5000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyFlags(cmd, filterFlags)
			err := ioseq.New().Filter(cmd.Context(), cfg)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	filterCmd.Flags().Int("min", 0, "minimal sequence length")
	filterCmd.Flags().Int("max", 0, "maximal sequence length")

	return filterCmd
}
