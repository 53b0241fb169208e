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
	"github.com/spf13/cobra"
)

// getDumpCmd returns the dump command.
func getDumpCmd() *cobra.Command {
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Harvest portals and fetch their file listings",
		Long: `Run 'portals' and 'fetch' one after another.

Examples:
  mycocurate dump
  mycocurate dump -j 10 -s fungi.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyFlags(cmd, spreadsheetFlag, apiWorkersFlag)
			err := runPortals(cmd.Context())
			if err == nil {
				err = runFetch(cmd.Context())
			}
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	dumpCmd.Flags().StringP(
		"spreadsheet", "s", "",
		"local copy of the catalog used when the page is unavailable",
	)
	jobsFlag(dumpCmd, "number of organisms fetched concurrently")

	return dumpCmd
}
