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
	"github.com/gnames/mycocurate/internal/iofetch"
	"github.com/gnames/mycocurate/internal/iolisting"
	"github.com/gnames/mycocurate/pkg/lifecycle"
	"github.com/spf13/cobra"
)

// getFetchCmd returns the fetch command.
func getFetchCmd() *cobra.Command {
	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download file listings of published portals",
		Long: `Download file listings of every published portal from the JGI API.

Pages are cached in 'mycocosm_data/json_files', a manifest keeps the status
of every organism. Organisms fetched completely by an earlier run are not
requested again, failed ones are retried. Cached pages are flattened into
'mycocosm_fungi_files_metadata.csv'.

The API token is taken from config.yaml or MYCOCURATE_API_TOKEN.

Examples:
  mycocurate fetch
  mycocurate fetch -j 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyFlags(cmd, apiWorkersFlag)
			err := runFetch(cmd.Context())
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	jobsFlag(fetchCmd, "number of organisms fetched concurrently")

	return fetchCmd
}

func runFetch(ctx context.Context) error {
	var d lifecycle.Dumper = iolisting.NewDumper(
		iofetch.New(cfg), iolisting.New(cfg),
	)
	if _, err := d.Dump(ctx, cfg); err != nil {
		return err
	}
	gn.Info("Next step: run '<em>mycocurate curate</em>'")
	return nil
}
