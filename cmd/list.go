package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zjrosen/dealboard/internal/pipeline"
	"github.com/zjrosen/dealboard/internal/presentation"
)

var listStage string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print deals as JSON",
	Long: `Print deals as JSON, most recently updated first.

Examples:
  dealboard list
  dealboard list --stage negotiation | jq '.[].title'`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		sel, err := pipeline.ParseSelection(listStage)
		if err != nil {
			return fmt.Errorf("--stage: %w", err)
		}
		env, err := openEnv(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = env.Close(context.Background()) }()

		return printDeals(cmd.Context(), cmd.OutOrStdout(), env.svc, sel)
	},
}

func init() {
	listCmd.Flags().StringVarP(&listStage, "stage", "s", "", "only deals in this stage")
	rootCmd.AddCommand(listCmd)
}

type dealsReader interface {
	Deals(ctx context.Context, sel pipeline.Selection) ([]pipeline.Deal, error)
}

func printDeals(ctx context.Context, w io.Writer, svc dealsReader, sel pipeline.Selection) error {
	deals, err := svc.Deals(ctx, sel)
	if err != nil {
		return err
	}
	return presentation.NewFormatter(w).FormatJSON(presentation.FromDeals(deals))
}
