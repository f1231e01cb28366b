package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thruflo/playground/internal/sprite"
	"github.com/thruflo/playground/internal/tui"
)

var blocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "List the available blocks",
	Long: `Lists every block in toolbox order with its shortcut key, its name for
--block and the default value of each parameter.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printBlocks(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(blocksCmd)
}

func printBlocks(out io.Writer) {
	fmt.Fprintf(out, "%-4s %-7s %-7s %-20s %s\n", "KEY", "NAME", "GROUP", "BLOCK", "DEFAULTS")
	for i, kind := range sprite.Kinds() {
		fields := sprite.Fields(kind)
		defaults := make([]string, len(fields))
		for j, f := range fields {
			defaults[j] = fmt.Sprintf("%s=%s", f.Name, f.Default)
		}
		fmt.Fprintf(out, "%-4d %-7s %-7s %-20s %s\n",
			i+1, kind, kind.Category(), tui.ToolboxLabel(kind), strings.Join(defaults, " "))
	}
}
