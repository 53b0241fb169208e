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
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gnames/gn"
	"github.com/gnames/mycocurate/internal/iofs"
	"github.com/gnames/mycocurate/internal/iologger"
	app "github.com/gnames/mycocurate/pkg"
	"github.com/gnames/mycocurate/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "mycocurate",
		Short:   "Mycocurate curates JGI MycoCosm proteomes for phylogenomics",
		Long: `Mycocurate is a batch pipeline that prepares JGI MycoCosm fungal
proteomes for comparative genomics.

Stages (every stage reads files of earlier stages from data_dir):
  portals      harvest the MycoCosm portal catalog
  fetch        download file listings of published portals
  dump         portals and fetch in one run
  curate       select proteome and CDS files, partition by phylogeny
  process      extract downloaded proteomes and normalize sequence ids
  filter       keep sequences within length limits
  busco        summarize BUSCO results
  orthogroups  select single-copy orthogroups of OrthoFinder
  iprscan      summarize InterProScan submit logs
  trees        prepare IQ-TREE gene trees for ASTRAL
  tfs          extract transcription factor sequences

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (MYCOCURATE_*)
  3. Config file (~/.config/mycocurate/config.yaml)
  4. Built-in defaults`,
		PersistentPreRunE: bootstrap,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Remove the automatic "mycocurate version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for mycocurate")

	rootCmd.AddCommand(
		getPortalsCmd(),
		getFetchCmd(),
		getDumpCmd(),
		getCurateCmd(),
		getProcessCmd(),
		getFilterCmd(),
		getBuscoCmd(),
		getOrthogroupsCmd(),
		getIprscanCmd(),
		getTreesCmd(),
		getTFsCmd(),
	)

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureBuscoSchemasFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings, keep records written so far
	if err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"data_dir", cfg.DataDir,
		"command", cmd.Name(),
	)

	return nil
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Interrupt and termination signals cancel the context of
// the running command.
func Execute() {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	err := getRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// We set them manually so we can see clearly which env variables are
	// allowed. These match the fields of config.ToOptions().
	v.SetEnvPrefix("MYCOCURATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("data_dir", "MYCOCURATE_DATA_DIR")
	v.BindEnv("jobs_number", "MYCOCURATE_JOBS_NUMBER")

	// Portal catalog
	v.BindEnv("portal.url", "MYCOCURATE_PORTAL_URL")
	v.BindEnv("portal.spreadsheet", "MYCOCURATE_PORTAL_SPREADSHEET")
	v.BindEnv("portal.user_agent", "MYCOCURATE_PORTAL_USER_AGENT")

	// File-listing API
	v.BindEnv("api.url", "MYCOCURATE_API_URL")
	v.BindEnv("api.token", "MYCOCURATE_API_TOKEN")
	v.BindEnv("api.page_size", "MYCOCURATE_API_PAGE_SIZE")
	v.BindEnv("api.delay_ms", "MYCOCURATE_API_DELAY_MS")
	v.BindEnv("api.workers", "MYCOCURATE_API_WORKERS")

	// Sequences
	v.BindEnv("filter.min_length", "MYCOCURATE_FILTER_MIN_LENGTH")
	v.BindEnv("filter.max_length", "MYCOCURATE_FILTER_MAX_LENGTH")
	v.BindEnv("orthogroups.threshold", "MYCOCURATE_ORTHOGROUPS_THRESHOLD")

	// Log configuration
	v.BindEnv("log.level", "MYCOCURATE_LOG_LEVEL")
	v.BindEnv("log.format", "MYCOCURATE_LOG_FORMAT")
	v.BindEnv("log.destination", "MYCOCURATE_LOG_DESTINATION")

	v.AutomaticEnv()
}
