package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "mycocurate"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/mycocurate by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/mycocurate by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/mycocurate/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/mycocurate/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// BuscoSchemasFilePath returns the path to the user copy of BUSCO
// field schemas.
func BuscoSchemasFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "busco_schemas.yaml")
}

// PrevPath returns the path of the previous snapshot of a CSV table,
// 'table.csv' becomes 'table.prev.csv'.
func PrevPath(path string) string {
	ext := filepath.Ext(path)
	return path[:len(path)-len(ext)] + ".prev" + ext
}

// MycocosmDir keeps portal and file listing metadata.
func (c *Config) MycocosmDir() string {
	return filepath.Join(c.DataDir, "mycocosm_data")
}

// JSONDir keeps verbatim pages of the file-listing API.
func (c *Config) JSONDir() string {
	return filepath.Join(c.MycocosmDir(), "json_files")
}

// ManifestPath is the SQLite database that tracks fetch status of
// every organism.
func (c *Config) ManifestPath() string {
	return filepath.Join(c.JSONDir(), "manifest.sqlite")
}

// PortalsTablePath is the CSV with the portal catalog.
func (c *Config) PortalsTablePath() string {
	return filepath.Join(c.MycocosmDir(), "mycocosm_fungi_data.csv")
}

// FilesMetadataPath is the CSV with one row per organism file.
func (c *Config) FilesMetadataPath() string {
	return filepath.Join(c.MycocosmDir(), "mycocosm_fungi_files_metadata.csv")
}

// CurationDir keeps all selection tables.
func (c *Config) CurationDir() string {
	return filepath.Join(c.MycocosmDir(), "curation")
}

// ProteomesListPath is the list of proteome files for download and
// processing.
func (c *Config) ProteomesListPath() string {
	return filepath.Join(c.DataDir, "proteomes_all_list.csv")
}

// ProteomesDir is the root of proteome sequence files.
func (c *Config) ProteomesDir() string {
	return filepath.Join(c.DataDir, "proteomes")
}

// CompressedDir keeps downloaded proteome archives.
func (c *Config) CompressedDir() string {
	return filepath.Join(c.ProteomesDir(), "compressed")
}

// ExtractedDir keeps decompressed proteomes.
func (c *Config) ExtractedDir() string {
	return filepath.Join(c.ProteomesDir(), "extracted")
}

// RenamedDir keeps proteomes with normalized identifiers.
func (c *Config) RenamedDir() string {
	return filepath.Join(c.ProteomesDir(), "renamed")
}

// FinalDir keeps proteomes selected for the length filter.
func (c *Config) FinalDir() string {
	return filepath.Join(c.ProteomesDir(), "final")
}

// CleanDir receives proteomes after the length filter.
func (c *Config) CleanDir() string {
	return filepath.Join(c.ProteomesDir(), "clean")
}

// ProcessedListPath is the proteome list with extracted and renamed
// file paths.
func (c *Config) ProcessedListPath() string {
	return filepath.Join(c.ProteomesDir(), "processed_proteomes_list.csv")
}

// ProcessedLogPath is the per-file renaming log.
func (c *Config) ProcessedLogPath() string {
	return filepath.Join(c.ProteomesDir(), "processed_proteomes_log.csv")
}

// CleanedLogPath is the per-file length filter log.
func (c *Config) CleanedLogPath() string {
	return filepath.Join(c.ProteomesDir(), "cleaned_proteomes_log.csv")
}

// BuscoDir keeps BUSCO runs, one folder per renamed proteome.
func (c *Config) BuscoDir() string {
	return filepath.Join(c.DataDir, "BUSCO_results", "busco_renamed")
}

// BuscoSummaryPath is the BUSCO summary table.
func (c *Config) BuscoSummaryPath() string {
	return filepath.Join(c.DataDir, "BUSCO_results", "busco_summary.csv")
}

// OrthofinderDir is the OrthoFinder results folder.
func (c *Config) OrthofinderDir() string {
	return filepath.Join(c.DataDir, "orthofinder", "Results")
}

// GeneCountPath is the OrthoFinder gene count table.
func (c *Config) GeneCountPath() string {
	return filepath.Join(
		c.OrthofinderDir(), "Orthogroups", "Orthogroups.GeneCount.tsv",
	)
}

// OrthogroupSequencesDir keeps one FASTA file per orthogroup.
func (c *Config) OrthogroupSequencesDir() string {
	return filepath.Join(c.OrthofinderDir(), "Orthogroup_Sequences")
}

// SingleCopyPath is the table of selected single-copy orthogroups.
func (c *Config) SingleCopyPath() string {
	return filepath.Join(c.OrthofinderDir(), "single_copy_orthogroups.tsv")
}

// SpeciesTreeDir is the root of species tree inference.
func (c *Config) SpeciesTreeDir() string {
	return filepath.Join(c.DataDir, "speciestree")
}

// SpeciesTreeSeqDir receives single-copy orthogroup sequences.
func (c *Config) SpeciesTreeSeqDir() string {
	return filepath.Join(c.SpeciesTreeDir(), "sequences")
}

// GeneTreesDir keeps IQ-TREE gene trees.
func (c *Config) GeneTreesDir() string {
	return filepath.Join(c.SpeciesTreeDir(), "gene_trees")
}

// CleanTreesDir receives gene trees with tips renamed to portals.
func (c *Config) CleanTreesDir() string {
	return filepath.Join(c.SpeciesTreeDir(), "astral_clean_trees")
}

// TFDir is the root of transcription factor extraction.
func (c *Config) TFDir() string {
	return filepath.Join(c.DataDir, "proteome_tfs")
}

// TFListPath lists renamed proteomes for transcription factor search.
func (c *Config) TFListPath() string {
	return filepath.Join(c.TFDir(), "proteome_list_with_renamed_files.csv")
}

// HmmscanDir keeps hmmscan domain tables, one per portal.
func (c *Config) HmmscanDir() string {
	return filepath.Join(c.TFDir(), "hmmscan_results")
}

// TFCleanDir receives transcription factor sequences.
func (c *Config) TFCleanDir() string {
	return filepath.Join(c.TFDir(), "clean")
}

// IprscanLogsDir keeps InterProScan cluster submit logs.
func (c *Config) IprscanLogsDir() string {
	return filepath.Join(c.DataDir, "logs", "iprscan_logs")
}

// IprscanSummaryPath is the summary of InterProScan submit logs.
func (c *Config) IprscanSummaryPath() string {
	return filepath.Join(c.DataDir, "logs", "iprscan_summary.csv")
}
