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
	"github.com/gnames/mycocurate/internal/ioortho"
	"github.com/gnames/mycocurate/pkg/config"
	"github.com/spf13/cobra"
)

// getOrthogroupsCmd returns the orthogroups command.
func getOrthogroupsCmd() *cobra.Command {
	var (
		threshold float64
		withCopy  bool
	)

	orthogroupsCmd := &cobra.Command{
		Use:   "orthogroups",
		Short: "Select single-copy orthogroups",
		Long: `Find orthogroups where most genomes have exactly one gene.

An orthogroup of 'Orthogroups.GeneCount.tsv' is selected when the fraction
of species with one gene reaches the threshold. Selected orthogroups are
saved to 'single_copy_orthogroups.tsv'. With --copy their FASTA files are
copied to 'speciestree/sequences'.

Examples:
  mycocurate orthogroups
  mycocurate orthogroups --threshold 0.9 --copy`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runOrthogroups(cmd, threshold, withCopy)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	orthogroupsCmd.Flags().Float64VarP(
		&threshold, "threshold", "t", 0.75,
		"fraction of genomes required to have a single gene",
	)
	orthogroupsCmd.Flags().BoolVarP(
		&withCopy, "copy", "c", false,
		"copy FASTA files of selected orthogroups",
	)

	return orthogroupsCmd
}

func runOrthogroups(cmd *cobra.Command, threshold float64, withCopy bool) error {
	if cmd.Flags().Changed("threshold") {
		if err := ioortho.CheckThreshold(threshold); err != nil {
			return err
		}
		cfg.Update([]config.Option{config.OptOrthogroupsThreshold(threshold)})
	}
	_, err := ioortho.SelectSingleCopy(cmd.Context(), cfg, withCopy)
	return err
}
