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
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/mycocurate/internal/ioiprscan"
	"github.com/gnames/mycocurate/pkg/config"
	"github.com/spf13/cobra"
)

// getIprscanCmd returns the iprscan command.
func getIprscanCmd() *cobra.Command {
	var (
		output  string
		toPrint bool
	)

	iprscanCmd := &cobra.Command{
		Use:   "iprscan [folder]",
		Short: "Summarize InterProScan submit logs",
		Long: `Count finished, failed and missing subjobs of InterProScan runs.

Every 'iprscan_<portal>.submit.log' of the folder is parsed. The folder
defaults to 'logs/iprscan_logs' of the data directory.

Examples:
  mycocurate iprscan
  mycocurate iprscan ~/iprscan_logs -o summary.csv --print`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runIprscan(cmd, args, output, toPrint)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	iprscanCmd.Flags().StringVarP(
		&output, "output", "o", "",
		"output CSV path (default <data_dir>/logs/iprscan_summary.csv)",
	)
	iprscanCmd.Flags().BoolVarP(
		&toPrint, "print", "p", false,
		"print the summary as a table",
	)

	return iprscanCmd
}

func runIprscan(
	cmd *cobra.Command,
	args []string,
	output string,
	toPrint bool,
) error {
	cfg.Update([]config.Option{config.OptWithPrint(toPrint)})

	dir := cfg.IprscanLogsDir()
	if len(args) > 0 {
		dir = args[0]
	}
	if output == "" {
		output = cfg.IprscanSummaryPath()
	}

	res, err := ioiprscan.Summarize(dir, output)
	if err != nil {
		return err
	}
	if cfg.WithPrint && len(res) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), ioiprscan.Table(res))
	}
	return nil
}
