package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/thruflo/playground/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize .playground/ configuration",
	Long: `Creates .playground/config.yaml under --config-dir with the default stage
size, timings and sprite palette, each documented inline.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path := config.Path(configDir)

	exists := fileExists(path)
	if exists && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(config.Template()), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if exists {
		fmt.Fprintf(cmd.OutOrStdout(), "Overwrote %s\n", path)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s\n", path)
	}
	return nil
}

// fileExists reports whether path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
