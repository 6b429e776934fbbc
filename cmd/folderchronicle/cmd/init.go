package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initForce bool

// initTemplate is the default folderchronicle.yaml scaffold. Every option is
// commented out so the file changes nothing until edited.
const initTemplate = `# folderchronicle configuration
version: 1

# Folder sorted when 'folderchronicle sort' is run without an argument.
# base_dir: ~/Pictures/Inbox

# Include files in subfolders. Files already inside YYYY/MM folders and
# "FolderChronicle Backup ..." folders are always left alone.
# include_subdirs: false

# Use the file's creation time instead of its modification time.
# use_creation_time: false

# Copy files instead of moving them. No backup is taken in copy mode.
# copy_no_backup: false

# IANA timezone used for YYYY/MM folders and backup folder names.
# timezone: Europe/Berlin

# log:
#   level: warn        # debug, info, warn, error
#   format: console    # console, json
#   file: /var/log/folderchronicle.log
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter folderchronicle.yaml configuration",
	Long: `Creates a folderchronicle.yaml file in the current directory (or at --config)
with every option documented and commented out.

Use --force to overwrite an existing configuration file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath := configPath
		if !filepath.IsAbs(outPath) {
			abs, err := filepath.Abs(outPath)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			outPath = abs
		}

		if !initForce {
			if _, err := os.Stat(outPath); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", outPath)
			}
		}

		if err := os.WriteFile(outPath, []byte(initTemplate), 0644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		info("Created %s", outPath)
		info("")
		info("Next steps:")
		info("  1. Set base_dir or pass a folder on the command line")
		info("  2. Run 'folderchronicle plan' to preview the result")
		info("  3. Run 'folderchronicle sort' to sort the folder")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config file")
	rootCmd.AddCommand(initCmd)
}
