package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bianoble/folderchronicle/pkg/folderchronicle"
)

var planCmd = &cobra.Command{
	Use:   "plan [DIR]",
	Short: "Show where each file would go without changing anything",
	Long: `Scans DIR exactly like 'sort' and prints the destination every file would
get, including the " (N)" suffix used to avoid name collisions. Nothing is
created, copied or moved.

Accepts the same flags as 'sort'.`,
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

		client, err := folderchronicle.New(folderchronicle.Options{Location: loc, DisableLock: true})
		if err != nil {
			return err
		}

		plan, err := client.Plan(cmd.Context(), opts)
		if err != nil {
			return err
		}
		return printPlan(os.Stdout, plan, useColor(os.Stdout))
	},
}

func printPlan(w io.Writer, plan *folderchronicle.Plan, color bool) error {
	if len(plan.Files) == 0 {
		fmt.Fprintln(w, "No files found in the selected folder.")
		return nil
	}

	base := plan.Options.BaseDir
	rel := func(p string) string {
		if r, err := filepath.Rel(base, p); err == nil {
			return r
		}
		return p
	}

	var (
		rows  [][]string
		total int64
		bad   int
	)
	for _, f := range plan.Files {
		dst := rel(f.Destination)
		if f.Err != nil {
			dst = "error: " + folderchronicle.Describe(f.Err)
			bad++
		}
		total += f.Size
		rows = append(rows, []string{rel(f.Source), dst, humanSize(f.Size)})
	}

	fmt.Fprintln(w, renderTable([]string{"Source", "Destination", "Size"}, rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight}, color))

	verb := "move"
	if plan.Options.CopyNoBackup {
		verb = "copy"
	}
	fmt.Fprintf(w, "Would %s %d file(s), %s.\n", verb, len(plan.Files)-bad, humanSize(total))
	if plan.BackupDir != "" {
		fmt.Fprintf(w, "Backup folder: %s\n", rel(plan.BackupDir))
	}
	for _, s := range plan.Skipped {
		fmt.Fprintf(w, "Skipped unreadable folder %s: %s\n", rel(s.Path), folderchronicle.Describe(s.Err))
	}
	return nil
}

func init() {
	planCmd.Flags().BoolVarP(&sortRecursive, "recursive", "r", false, "include files in subfolders")
	planCmd.Flags().BoolVar(&sortCreationTime, "creation-time", false, "sort by creation time instead of modification time")
	planCmd.Flags().BoolVar(&sortCopy, "copy", false, "copy files instead of moving them (no backup is taken)")
	planCmd.Flags().StringVar(&sortTimezone, "timezone", "", "IANA timezone for YYYY/MM folders (default: local)")
	rootCmd.AddCommand(planCmd)
}
