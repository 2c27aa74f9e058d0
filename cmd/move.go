package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/dealboard/internal/pipeline"
)

var moveCmd = &cobra.Command{
	Use:   "move <deal-id> <stage>",
	Short: "Move a deal to another stage",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		stage, err := pipeline.ParseStage(args[1])
		if err != nil {
			return err
		}
		env, err := openEnv(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = env.Close(context.Background()) }()

		if err := env.svc.Move(cmd.Context(), args[0], stage); err != nil {
			return fmt.Errorf("moving deal %s: %w", args[0], err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(moveCmd)
}
