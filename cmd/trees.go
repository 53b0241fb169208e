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
	"github.com/gnames/mycocurate/internal/iotree"
	"github.com/gnames/mycocurate/pkg/config"
	"github.com/spf13/cobra"
)

// getTreesCmd returns the trees command.
func getTreesCmd() *cobra.Command {
	treesCmd := &cobra.Command{
		Use:   "trees",
		Short: "Prepare gene trees for ASTRAL",
		Long: `Rename tips of IQ-TREE gene trees to portals.

Tip labels like 'Psost1-12345' of 'speciestree/gene_trees/*.treefile'
become 'Psost1', trees are saved to 'speciestree/astral_clean_trees'.

The number of workers is taken from --jobs, then SLURM_CPUS_PER_TASK,
then jobs_number of the configuration.

Examples:
  mycocurate trees
  mycocurate trees -j 32`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, _ := cmd.Flags().GetInt("jobs")
			jobs = iotree.Jobs(cfg, jobs)
			cfg.Update([]config.Option{config.OptJobsNumber(jobs)})

			_, err := iotree.Clean(cmd.Context(), cfg)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	jobsFlag(treesCmd, "number of concurrent workers")

	return treesCmd
}
