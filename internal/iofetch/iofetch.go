// Package iofetch downloads pages of the JGI file-listing API for every
// organism into the local JSON cache.
package iofetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/mycocurate/internal/iofs"
	"github.com/gnames/mycocurate/internal/iomanifest"
	"github.com/gnames/mycocurate/pkg/config"
	"github.com/gnames/mycocurate/pkg/listing"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// outcome of fetching one organism.
type outcome int

const (
	fetched outcome = iota
	cached
	empty
	failed
)

type fetcher struct {
	cfg    *config.Config
	client *http.Client
}

// New creates a listing.Fetcher for the configured API.
func New(cfg *config.Config) listing.Fetcher {
	return &fetcher{
		cfg:    cfg,
		client: &http.Client{Timeout: 5 * time.Minute},
	}
}

// Fetch downloads listing pages of organisms that are not cached yet.
// Errors of a single organism are logged and recorded in the manifest,
// they do not stop other organisms. Manifest errors and cancellation stop
// the run.
func (f *fetcher) Fetch(
	ctx context.Context,
	organisms []string,
) (*listing.FetchReport, error) {
	timeStart := time.Now()
	dir := f.cfg.JSONDir()
	if err := iofs.TouchDir(dir); err != nil {
		return nil, err
	}

	m, err := iomanifest.Open(ctx, f.cfg.ManifestPath())
	if err != nil {
		return nil, err
	}
	defer m.Close()
	defer f.client.CloseIdleConnections()

	res := &listing.FetchReport{RunID: uuid.NewString()}
	if err = f.importLegacy(ctx, m, res.RunID); err != nil {
		return nil, err
	}

	slog.Info(
		"Fetching file listings",
		"organisms", len(organisms),
		"workers", f.cfg.API.Workers,
		"run_id", res.RunID,
	)

	var counts [4]atomic.Int64
	bar := pb.Full.Start(len(organisms))
	bar.Set("prefix", "Organisms: ")
	bar.Set(pb.CleanOnFinish, true)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.cfg.API.Workers)

	for _, org := range organisms {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			defer bar.Increment()
			o, err := f.fetchOrganism(gctx, m, org, res.RunID)
			if err != nil {
				return err
			}
			counts[o].Add(1)
			return nil
		})
	}
	err = g.Wait()
	bar.Finish()

	res.Fetched = int(counts[fetched].Load())
	res.Cached = int(counts[cached].Load())
	res.Empty = int(counts[empty].Load())
	res.Failed = int(counts[failed].Load())
	done := res.Fetched + res.Cached + res.Empty + res.Failed

	if err != nil {
		return res, err
	}
	if ctx.Err() != nil {
		return res, CancelledError(done, len(organisms), ctx.Err())
	}

	slog.Info(
		"Fetch finished",
		"fetched", res.Fetched,
		"cached", res.Cached,
		"empty", res.Empty,
		"failed", res.Failed,
		"duration", gnfmt.TimeString(time.Since(timeStart).Seconds()),
	)
	gn.Info(
		"Fetched <em>%s</em>, cached <em>%s</em>, empty <em>%s</em>, failed <em>%s</em>",
		humanize.Comma(int64(res.Fetched)),
		humanize.Comma(int64(res.Cached)),
		humanize.Comma(int64(res.Empty)),
		humanize.Comma(int64(res.Failed)),
	)
	return res, nil
}

// fetchOrganism downloads all pages of one organism. Returned errors come
// from the manifest only.
func (f *fetcher) fetchOrganism(
	ctx context.Context,
	m *iomanifest.Manifest,
	org, runID string,
) (outcome, error) {
	ok, err := m.Claim(ctx, org, runID)
	if err != nil {
		return failed, err
	}
	if !ok {
		slog.Debug("Organism is cached", "organism", org)
		return cached, nil
	}

	// stale pages of an earlier fetch must not mix with new ones
	f.removePages(org)

	var pages, files int
	var fetchErr error
	for page := 1; ; page++ {
		if page > 1 {
			if fetchErr = sleep(ctx, f.delay()); fetchErr != nil {
				break
			}
		}
		var n int
		n, fetchErr = f.fetchPage(ctx, org, page)
		if fetchErr != nil || n == 0 {
			break
		}
		pages++
		files += n
	}

	// the outcome is saved even if the run is cancelled
	wctx := context.WithoutCancel(ctx)
	switch {
	case fetchErr != nil:
		slog.Error("Cannot fetch organism", "organism", org, "error", fetchErr)
		f.removePages(org)
		return failed, m.Finish(wctx, org, iomanifest.StatusFailed, 0, 0)
	case files == 0:
		slog.Info("No files for organism", "organism", org)
		return empty, m.Finish(wctx, org, iomanifest.StatusEmpty, 0, 0)
	default:
		slog.Debug("Fetched organism", "organism", org, "pages", pages, "files", files)
		return fetched, m.Finish(wctx, org, iomanifest.StatusDone, pages, files)
	}
}

// fetchPage downloads one page and saves it if it has files. It returns
// the number of files on the page.
func (f *fetcher) fetchPage(ctx context.Context, org string, page int) (int, error) {
	body, err := f.get(ctx, org, page)
	if err != nil {
		return 0, HTTPError(org, page, err)
	}

	var p listing.Page
	enc := gnfmt.GNjson{}
	if err = enc.Decode(body, &p); err != nil {
		return 0, HTTPError(org, page, err)
	}
	n := len(p.Files())
	if n == 0 {
		return 0, nil
	}

	path := filepath.Join(f.cfg.JSONDir(), listing.PageFileName(org, page))
	if err = os.WriteFile(path, body, 0644); err != nil {
		return 0, iofs.WriteFileError(path, err)
	}
	return n, nil
}

func (f *fetcher) get(ctx context.Context, org string, page int) ([]byte, error) {
	q := url.Values{}
	q.Set("organism", org)
	q.Set("api_version", "2")
	q.Set("a", "false")
	q.Set("h", "false")
	q.Set("d", "asc")
	q.Set("p", strconv.Itoa(page))
	q.Set("x", strconv.Itoa(f.cfg.API.PageSize))
	q.Set("t", "simple")

	u := f.cfg.API.URL + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json")
	if f.cfg.API.Token != "" {
		req.Header.Set("Authorization", f.cfg.API.Token)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func (f *fetcher) delay() time.Duration {
	return time.Duration(f.cfg.API.DelayMs) * time.Millisecond
}

func (f *fetcher) removePages(org string) {
	pattern := listing.PageFileName(org, 0)
	pattern = pattern[:len(pattern)-len("0.json")] + "*.json"
	names, err := iofs.ListFiles(f.cfg.JSONDir(), pattern)
	if err != nil {
		return
	}
	for _, v := range names {
		// another organism can share the prefix, 'A1' and 'A1_page_x'
		if o, _, ok := listing.ParsePageFileName(v); !ok || o != org {
			continue
		}
		os.Remove(filepath.Join(f.cfg.JSONDir(), v))
	}
}

// importLegacy registers organisms with cached pages in a new manifest.
func (f *fetcher) importLegacy(
	ctx context.Context,
	m *iomanifest.Manifest,
	runID string,
) error {
	isEmpty, err := m.IsEmpty(ctx)
	if err != nil || !isEmpty {
		return err
	}

	dir := f.cfg.JSONDir()
	names, err := iofs.ListFiles(dir, "all_files_*_page_*.json")
	if err != nil {
		return err
	}

	type stat struct{ pages, files int }
	stats := make(map[string]*stat)
	var orgs []string
	enc := gnfmt.GNjson{}
	for _, v := range names {
		org, _, ok := listing.ParsePageFileName(v)
		if !ok {
			continue
		}
		body, err := os.ReadFile(filepath.Join(dir, v))
		if err != nil {
			return iofs.ReadFileError(v, err)
		}
		var p listing.Page
		if err = enc.Decode(body, &p); err != nil {
			slog.Warn("Skipping unreadable cached page", "file", v, "error", err)
			continue
		}
		st, ok := stats[org]
		if !ok {
			st = &stat{}
			stats[org] = st
			orgs = append(orgs, org)
		}
		st.pages++
		st.files += len(p.Files())
	}

	for _, org := range orgs {
		st := stats[org]
		if err = m.Import(ctx, org, runID, st.pages, st.files); err != nil {
			return err
		}
	}
	if len(orgs) > 0 {
		slog.Info("Imported cached organisms into manifest", "organisms", len(orgs))
	}
	return nil
}

// sleep waits for d or until the context is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
