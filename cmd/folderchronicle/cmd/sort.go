package cmd

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/bianoble/folderchronicle/internal/config"
	"github.com/bianoble/folderchronicle/pkg/folderchronicle"
)

var (
	sortRecursive    bool
	sortCreationTime bool
	sortCopy         bool
	sortTimezone     string
	sortNoProgress   bool
)

var sortCmd = &cobra.Command{
	Use:   "sort [DIR]",
	Short: "Sort a folder's files into YYYY/MM subfolders",
	Long: `Moves every regular file of DIR into DIR/YYYY/MM, using the file's
modification time (or creation time with --creation-time). A backup copy of
every candidate is taken first in "DIR/FolderChronicle Backup <timestamp>".

With --copy the originals stay where they are and no backup is taken.
With --recursive files in subfolders are included, except those already in a
YYYY/MM folder and those inside backup folders.

DIR defaults to base_dir from the config file, then the current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		opts, loc, err := resolveSortOptions(cmd, cfg, args)
		if err != nil {
			return err
		}

		logger, closeLog, err := newLogger(cfg, os.Stderr)
		if err != nil {
			return err
		}
		defer closeLog()

		client, err := folderchronicle.New(folderchronicle.Options{Logger: logger, Location: loc})
		if err != nil {
			return err
		}

		bars := &progress{w: os.Stderr, enabled: !sortNoProgress && !quiet && isTerminal(os.Stderr)}
		res, err := client.SortWithProgress(cmd.Context(), opts, bars.observe)
		bars.finish()
		if res == nil {
			return err
		}

		return reportRun(os.Stdout, res, err, useColor(os.Stdout))
	},
}

// resolveSortOptions layers command-line flags over the config file. DIR
// falls back to base_dir, then the current directory.
func resolveSortOptions(cmd *cobra.Command, cfg *config.Config, args []string) (folderchronicle.SortOptions, *time.Location, error) {
	opts := folderchronicle.SortOptions{
		BaseDir:         ".",
		IncludeSubdirs:  config.Bool(cfg.IncludeSubdirs),
		UseCreationTime: config.Bool(cfg.UseCreationTime),
		CopyNoBackup:    config.Bool(cfg.CopyNoBackup),
	}
	if cfg.BaseDir != "" {
		opts.BaseDir = cfg.BaseDir
	}
	if len(args) > 0 {
		opts.BaseDir = args[0]
	}
	dir, err := expandHome(opts.BaseDir)
	if err != nil {
		return opts, nil, err
	}
	opts.BaseDir = dir

	flags := cmd.Flags()
	if flags.Changed("recursive") {
		opts.IncludeSubdirs = sortRecursive
	}
	if flags.Changed("creation-time") {
		opts.UseCreationTime = sortCreationTime
	}
	if flags.Changed("copy") {
		opts.CopyNoBackup = sortCopy
	}

	tz := cfg.Timezone
	if flags.Changed("timezone") {
		tz = sortTimezone
	}
	loc, err := (&config.Config{Timezone: tz}).Location()
	if err != nil {
		return opts, nil, err
	}
	return opts, loc, nil
}

// reportRun prints the run log, the summary and a per-month table. It returns
// an error when the scan failed or any file failed.
func reportRun(w io.Writer, res *folderchronicle.RunResult, runErr error, color bool) error {
	if res.Status == folderchronicle.StatusNothingToDo {
		info("No files found in the selected folder.")
		return nil
	}

	for _, line := range res.Log {
		if !quiet {
			fmt.Fprintln(w, line)
		}
	}
	if runErr != nil {
		return runErr
	}

	for _, s := range res.Skipped {
		detail("skipped %s: %v", s.Path, s.Err)
	}
	if res.BackupDir != "" {
		detail("backup: %s", res.BackupDir)
	}

	if !quiet {
		fmt.Fprintln(w)
		if res.Status == folderchronicle.StatusCanceled {
			fmt.Fprintln(w, "Canceled.")
		}
		fmt.Fprintf(w, "Done. %s %d file(s). Errors: %d.\n", res.Action, res.Succeeded, res.Failed)
		if table := monthTable(res, color); table != "" {
			fmt.Fprintln(w, table)
		}
	}

	if res.Failed > 0 {
		return fmt.Errorf("%d file(s) failed", res.Failed)
	}
	return nil
}

// monthTable renders how many files landed in each YYYY/MM folder.
func monthTable(res *folderchronicle.RunResult, color bool) string {
	counts := make(map[string]int)
	for _, f := range res.Files {
		if f.Err == nil {
			counts[f.Year+"/"+f.Month]++
		}
	}
	if len(counts) == 0 {
		return ""
	}

	var rows [][]string
	for _, month := range slices.Sorted(maps.Keys(counts)) {
		rows = append(rows, []string{month, strconv.Itoa(counts[month])})
	}
	return renderTable([]string{"Folder", "Files"}, rows, []columnAlignment{alignLeft, alignRight}, color)
}

// progress shows one bar per run phase.
type progress struct {
	w       io.Writer
	enabled bool
	phase   folderchronicle.Phase
	bar     *progressbar.ProgressBar
}

func (p *progress) observe(ev folderchronicle.Event) {
	if !p.enabled {
		return
	}
	if p.bar == nil || p.phase != ev.Phase {
		p.finish()
		label := "Sorting"
		if ev.Phase == folderchronicle.PhaseBackup {
			label = "Backing up"
		}
		p.phase = ev.Phase
		p.bar = progressbar.NewOptions(ev.Total,
			progressbar.OptionSetWriter(p.w),
			progressbar.OptionSetDescription(label),
			progressbar.OptionShowCount(),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionClearOnFinish(),
		)
	}
	_ = p.bar.Add(1)
}

func (p *progress) finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
		p.bar = nil
	}
}

func init() {
	sortCmd.Flags().BoolVarP(&sortRecursive, "recursive", "r", false, "include files in subfolders")
	sortCmd.Flags().BoolVar(&sortCreationTime, "creation-time", false, "sort by creation time instead of modification time")
	sortCmd.Flags().BoolVar(&sortCopy, "copy", false, "copy files instead of moving them (no backup is taken)")
	sortCmd.Flags().StringVar(&sortTimezone, "timezone", "", "IANA timezone for YYYY/MM folders (default: local)")
	sortCmd.Flags().BoolVar(&sortNoProgress, "no-progress", false, "disable the progress bar")
	rootCmd.AddCommand(sortCmd)
}
