package ioseq_test

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/mycocurate/internal/iocsv"
	"github.com/gnames/mycocurate/internal/ioseq"
	"github.com/gnames/mycocurate/internal/iotesting"
	"github.com/gnames/mycocurate/pkg/config"
	"github.com/gnames/mycocurate/pkg/errcode"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const proteins = `>jgi|Psost1|12345|gene_a some description
MKVLAAGIVGLLLAQ
>jgi|Psost1|12346|gene_b
MSTNPKPQRKTKRNTNRRPQDVKFPGG
>plain_id keep this
MAAA
`

func testConfig(t *testing.T) *config.Config {
	return iotesting.TempConfig(t)
}

func writeGz(t *testing.T, path, content string) {
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := pgzip.NewWriter(f)
	_, err = zw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

func writeZip(t *testing.T, path string, files map[string]string) {
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

func headers(t *testing.T, path string) []string {
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	var res []string
	for _, v := range strings.Split(string(body), "\n") {
		if strings.HasPrefix(v, ">") {
			res = append(res, v)
		}
	}
	return res
}

func code(err error) gn.ErrorCode {
	if gnErr, ok := err.(*gn.Error); ok {
		return gnErr.Code
	}
	return errcode.UnknownError
}

func TestExtract(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(out, 0755))

	t.Run("gz", func(t *testing.T) {
		src := filepath.Join(dir, "Psost1.aa.fasta.gz")
		writeGz(t, src, proteins)
		res, err := ioseq.Extract(src, out)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(out, "Psost1.aa.fasta"), res)
		body, err := os.ReadFile(res)
		require.NoError(t, err)
		assert.Equal(t, proteins, string(body))
	})

	t.Run("zip with one file", func(t *testing.T) {
		src := filepath.Join(dir, "one.zip")
		writeZip(t, src, map[string]string{"one.fasta": proteins})
		res, err := ioseq.Extract(src, out)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(out, "one.fasta"), res)
	})

	t.Run("zip with several files", func(t *testing.T) {
		src := filepath.Join(dir, "many.zip")
		writeZip(t, src, map[string]string{"a.fasta": ">a\nM\n", "sub/b.fasta": ">b\nM\n"})
		res, err := ioseq.Extract(src, out)
		require.NoError(t, err)
		assert.Equal(t, out, res)
		assert.FileExists(t, filepath.Join(out, "sub", "b.fasta"))
	})

	t.Run("zip outside of target", func(t *testing.T) {
		src := filepath.Join(dir, "evil.zip")
		writeZip(t, src, map[string]string{"../evil.fasta": ">a\nM\n"})
		_, err := ioseq.Extract(src, out)
		require.Error(t, err)
		assert.Equal(t, errcode.SeqExtractError, code(err))
		assert.NoFileExists(t, filepath.Join(dir, "evil.fasta"))
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := ioseq.Extract(filepath.Join(dir, "file.tar"), out)
		assert.Equal(t, errcode.SeqUnsupportedArchiveError, code(err))
	})

	t.Run("broken gz", func(t *testing.T) {
		src := filepath.Join(dir, "broken.fasta.gz")
		require.NoError(t, os.WriteFile(src, []byte("not gzip"), 0644))
		_, err := ioseq.Extract(src, out)
		assert.Equal(t, errcode.SeqExtractError, code(err))
		assert.NoFileExists(t, filepath.Join(out, "broken.fasta"))
	})
}

func TestRenameFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.fasta")
	out := filepath.Join(dir, "Psost1.fasta")
	require.NoError(t, os.WriteFile(in, []byte(proteins), 0644))

	res, err := ioseq.RenameFile(in, out)
	require.NoError(t, err)
	assert.Equal(t, ioseq.RenameLog{
		File:          "in.fasta",
		Total:         3,
		Renamed:       2,
		FirstIDBefore: "jgi|Psost1|12345|gene_a",
		FirstIDAfter:  "Psost1-12345",
	}, res)
	assert.Equal(t,
		[]string{">Psost1-12345", ">Psost1-12346", ">plain_id keep this"},
		headers(t, out),
	)

	res, err = ioseq.RenameFile(filepath.Join(dir, "none.fasta"), out)
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"none.fasta", "0", "0", ioseq.Missing, ioseq.Missing},
		res.Values(),
	)

	res, err = ioseq.RenameFile("", "")
	require.NoError(t, err)
	assert.Equal(t, ioseq.Missing, res.File)
}

func TestFilterFile(t *testing.T) {
	dir := t.TempDir()
	var sb strings.Builder
	for _, n := range []int{49, 50, 10_000, 10_001} {
		sb.WriteString(">s" + strconv.Itoa(n) + "\n")
		sb.WriteString(strings.Repeat("M", n) + "\n")
	}
	in := filepath.Join(dir, "in.fasta")
	out := filepath.Join(dir, "out.fasta")
	require.NoError(t, os.WriteFile(in, []byte(sb.String()), 0644))

	res, err := ioseq.FilterFile(in, out, 50, 10_000)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Total)
	assert.Equal(t, 2, res.Kept)
	assert.Equal(t, 2, res.Dropped())
	assert.Equal(t, []string{">s50", ">s10000"}, headers(t, out))

	empty := filepath.Join(dir, "empty.fasta")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	res, err = ioseq.FilterFile(empty, filepath.Join(dir, "empty_out.fasta"), 50, 100)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Total)
	assert.NoFileExists(t, filepath.Join(dir, "empty_out.fasta"))
}

func TestProcess(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	p := ioseq.New()

	err := p.Process(ctx, cfg)
	assert.Equal(t, errcode.MissingDirError, code(err))

	comp := cfg.CompressedDir()
	require.NoError(t, os.MkdirAll(comp, 0755))
	writeGz(t, filepath.Join(comp, "Psost1_GeneCatalog_proteins.aa.fasta.gz"), proteins)
	require.NoError(t, os.WriteFile(filepath.Join(comp, "Other1.tar"), nil, 0644))

	list := [][]string{
		{"Psost1", "Psost1_GeneCatalog_proteins.aa.fasta.gz"},
		{"Other1", "Other1.tar"},
		{"Gone1", "Gone1.aa.fasta.gz"},
	}
	header := []string{"portal", "compressed_file"}
	require.NoError(t, iocsv.Write(cfg.ProteomesListPath(), header, list))

	err = p.Process(ctx, cfg)
	require.Error(t, err)
	assert.Equal(t, errcode.MissingFilesError, code(err))
	assert.Contains(t, err.Error(), "Gone1.aa.fasta.gz")

	require.NoError(t, iocsv.Write(cfg.ProteomesListPath(), header, list[:2]))
	require.NoError(t, p.Process(ctx, cfg))

	renamed := filepath.Join(cfg.RenamedDir(), "Psost1.fasta")
	assert.Equal(t,
		[]string{">Psost1-12345", ">Psost1-12346", ">plain_id keep this"},
		headers(t, renamed),
	)

	tbl, err := iocsv.Read(cfg.ProcessedListPath())
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"portal", "compressed_file", "extracted_file", "renamed_file"},
		tbl.Header,
	)
	assert.Equal(t, []string{renamed, ""}, tbl.Column("renamed_file"))
	assert.Equal(t,
		[]string{filepath.Join(cfg.ExtractedDir(), "Psost1_GeneCatalog_proteins.aa.fasta"), ""},
		tbl.Column("extracted_file"),
	)

	logs, err := iocsv.Read(cfg.ProcessedLogPath())
	require.NoError(t, err)
	assert.Equal(t, ioseq.LogColumns, logs.Header)
	assert.Equal(t, []string{"Psost1-12345", ioseq.Missing}, logs.Column("first_id_after"))

	// rerun replaces added columns
	require.NoError(t, iocsv.Write(
		cfg.ProteomesListPath(), tbl.Header, tbl.Rows[:1]))
	require.NoError(t, p.Process(ctx, cfg))
	tbl, err = iocsv.Read(cfg.ProcessedListPath())
	require.NoError(t, err)
	assert.Len(t, tbl.Header, 4)
}

func TestFilter(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Update([]config.Option{
		config.OptFilterMinLength(5),
		config.OptFilterMaxLength(20),
	})
	p := ioseq.New()

	require.NoError(t, os.MkdirAll(cfg.FinalDir(), 0755))
	err := p.Filter(ctx, cfg)
	assert.Equal(t, errcode.SeqNoFastaFilesError, code(err))

	final := cfg.FinalDir()
	require.NoError(t, os.WriteFile(filepath.Join(final, "Psost1.fasta"), []byte(proteins), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(final, "Empty1.fasta"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(final, "notes.txt"), nil, 0644))

	require.NoError(t, p.Filter(ctx, cfg))

	assert.Equal(t,
		[]string{">jgi|Psost1|12345|gene_a some description"},
		headers(t, filepath.Join(cfg.CleanDir(), "Psost1.fasta")),
	)
	assert.NoFileExists(t, filepath.Join(cfg.CleanDir(), "Empty1.fasta"))

	tbl, err := iocsv.Read(cfg.CleanedLogPath())
	require.NoError(t, err)
	assert.Equal(t, ioseq.FilterColumns, tbl.Header)
	assert.Equal(t, [][]string{
		{"Empty1", "0", "0", "0"},
		{"Psost1", "3", "1", "2"},
	}, tbl.Rows)
}

func TestExtractTFs(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	ren := filepath.Join(t.TempDir(), "Psost1.fasta")
	renamed := `>Psost1-1
MKV
>Psost1-2
MST
>Psost1-3
MAA
`
	require.NoError(t, os.WriteFile(ren, []byte(renamed), 0644))
	require.NoError(t, iocsv.Write(cfg.TFListPath(),
		[]string{"portal", "renamed_file"},
		[][]string{
			{"Psost1", ren},
			{"Nohits1", ren},
			{"Nodom1", ren},
			{"Gone1", "/no/such/file.fasta"},
		},
	))

	hmm := cfg.HmmscanDir()
	require.NoError(t, os.MkdirAll(hmm, 0755))
	dom := `# target name accession tlen query name
Zn_clus PF00172.21 40 Psost1-1 - 300 1e-10
Zn_clus PF00172.21 40 Psost1-3 - 300 1e-10
bZIP_1 PF00170.24 64 Psost1-3 - 300 1e-10
short line
`
	require.NoError(t, os.WriteFile(filepath.Join(hmm, "Psost1.domtblout"), []byte(dom), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(hmm, "Nohits1.domtblout"),
		[]byte("x y z Other-1\n"), 0644))

	ids, err := ioseq.ParseDomtblout(filepath.Join(hmm, "Psost1.domtblout"))
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	require.NoError(t, ioseq.New().ExtractTFs(ctx, cfg))
	assert.Equal(t,
		[]string{">Psost1-1", ">Psost1-3"},
		headers(t, filepath.Join(cfg.TFCleanDir(), "Psost1_tfs.fasta")),
	)
	assert.NoFileExists(t, filepath.Join(cfg.TFCleanDir(), "Nohits1_tfs.fasta"))
	assert.NoFileExists(t, filepath.Join(cfg.TFCleanDir(), "Nodom1_tfs.fasta"))
}
