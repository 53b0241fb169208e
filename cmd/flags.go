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
	"github.com/gnames/mycocurate/pkg/config"
	"github.com/spf13/cobra"
)

type funcFlag func(cmd *cobra.Command) []config.Option

// jobsFlag adds --jobs/-j, zero keeps the configured value.
func jobsFlag(cmd *cobra.Command, usage string) {
	cmd.Flags().IntP("jobs", "j", 0, usage)
}

// apiWorkersFlag turns --jobs into the number of concurrent API workers.
func apiWorkersFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("jobs") {
		return nil
	}
	jobs, _ := cmd.Flags().GetInt("jobs")
	return []config.Option{config.OptAPIWorkers(jobs)}
}

// spreadsheetFlag sets a local copy of the portal catalog.
func spreadsheetFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("spreadsheet") {
		return nil
	}
	s, _ := cmd.Flags().GetString("spreadsheet")
	return []config.Option{config.OptPortalSpreadsheet(s)}
}

// filterFlags sets length limits. When both are given the order of
// options keeps every intermediate state valid.
func filterFlags(cmd *cobra.Command) []config.Option {
	hasMin := cmd.Flags().Changed("min")
	hasMax := cmd.Flags().Changed("max")
	minLen, _ := cmd.Flags().GetInt("min")
	maxLen, _ := cmd.Flags().GetInt("max")

	var res []config.Option
	if hasMax {
		res = append(res, config.OptFilterMaxLength(maxLen))
	}
	if hasMin {
		opt := config.OptFilterMinLength(minLen)
		if hasMax && maxLen < cfg.Filter.MinLength {
			res = append([]config.Option{opt}, res...)
		} else {
			res = append(res, opt)
		}
	}
	return res
}

func applyFlags(cmd *cobra.Command, fns ...funcFlag) {
	var res []config.Option
	for _, fn := range fns {
		res = append(res, fn(cmd)...)
	}
	if len(res) > 0 {
		cfg.Update(res)
	}
}
