package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/dealboard/internal/config"
	"github.com/zjrosen/dealboard/internal/pipeline"
)

var (
	colorClear  bool
	colorDryRun bool
)

var colorCmd = &cobra.Command{
	Use:   "color <stage> [#RRGGBB]",
	Short: "Set or clear the button color of a stage",
	Long: `Set or clear the button color of a stage in the config file.
Other settings and comments in the file are kept.

Examples:
  dealboard color quoting "#FF9F43"
  dealboard color quoting --clear
  dealboard color quoting "#FF9F43" --dry-run`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		stage, err := pipeline.ParseStage(args[0])
		if err != nil {
			return err
		}
		path := configFilePath()
		if colorClear {
			if err := config.ClearStageColor(path, stage); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "cleared %s color in %s\n", stage, path)
			return err
		}
		if len(args) != 2 {
			return fmt.Errorf("a color is required unless --clear is set")
		}
		if colorDryRun {
			diff, err := config.PreviewStageColor(path, stage, args[1])
			if err != nil {
				return err
			}
			if diff == "" {
				diff = "no change\n"
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), diff)
			return err
		}
		if err := config.SaveStageColor(path, stage, args[1]); err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "set %s color to %s in %s\n", stage, args[1], path)
		return err
	},
}

func init() {
	colorCmd.Flags().BoolVar(&colorClear, "clear", false, "remove the override and use the theme color")
	colorCmd.Flags().BoolVar(&colorDryRun, "dry-run", false, "print the config change without writing it")
	rootCmd.AddCommand(colorCmd)
}
