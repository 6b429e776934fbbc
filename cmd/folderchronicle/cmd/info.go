package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bianoble/folderchronicle/internal/config"
	"github.com/bianoble/folderchronicle/internal/lock"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show information about the folderchronicle configuration",
	Long: `Displays the folderchronicle version, the configuration chain (system, user
and project layers and whether each was loaded), the effective options and the
run lock directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		hr, err := loadConfigHierarchical()
		if err != nil {
			errorf("%v", err)
		}

		fmt.Printf("folderchronicle %s\n", version)
		if hr != nil {
			fmt.Println("  config chain:")
			for _, layer := range hr.Layers {
				status := "not found"
				switch {
				case layer.Err != nil:
					status = "error"
				case layer.Loaded:
					status = "loaded"
				}
				fmt.Printf("    %-10s %s (%s)\n", string(layer.Level)+":", layer.Path, status)
			}
		}

		if hr != nil && hr.Config != nil {
			cfg := hr.Config
			baseDir := cfg.BaseDir
			if baseDir == "" {
				baseDir = "(current directory)"
			}
			tz := cfg.Timezone
			if tz == "" {
				tz = "(local)"
			}
			fmt.Printf("  base dir:      %s\n", baseDir)
			fmt.Printf("  recursive:     %t\n", config.Bool(cfg.IncludeSubdirs))
			fmt.Printf("  creation time: %t\n", config.Bool(cfg.UseCreationTime))
			fmt.Printf("  copy mode:     %t\n", config.Bool(cfg.CopyNoBackup))
			fmt.Printf("  timezone:      %s\n", tz)
		}

		fmt.Printf("  lock dir:      %s\n", lock.DefaultDir())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
