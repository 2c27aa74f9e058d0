package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zjrosen/dealboard/internal/pipeline"
	"github.com/zjrosen/dealboard/internal/presentation"
)

var (
	countsStage string
	countsJSON  bool
)

var countsCmd = &cobra.Command{
	Use:   "counts",
	Short: "Print the number of deals in each stage",
	Long: `Print the number of deals in each pipeline stage, in pipeline order.

Examples:
  # Aligned table, the selected stage marked with *
  dealboard counts --stage quoting

  # JSON for scripting
  dealboard counts --json | jq '.stages[] | select(.count > 0)'`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		sel, err := pipeline.ParseSelection(countsStage)
		if err != nil {
			return fmt.Errorf("--stage: %w", err)
		}
		env, err := openEnv(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = env.Close(context.Background()) }()

		return printCounts(cmd.Context(), cmd.OutOrStdout(), env.svc, sel, countsJSON)
	},
}

func init() {
	countsCmd.Flags().StringVarP(&countsStage, "stage", "s", "", "mark this stage as selected")
	countsCmd.Flags().BoolVar(&countsJSON, "json", false, "print JSON instead of a table")
	rootCmd.AddCommand(countsCmd)
}

type countsReader interface {
	Counts(ctx context.Context) (pipeline.DealCounts, error)
}

func printCounts(ctx context.Context, w io.Writer, svc countsReader, sel pipeline.Selection, asJSON bool) error {
	counts, err := svc.Counts(ctx)
	if err != nil {
		return err
	}
	dto := presentation.FromCounts(counts, sel)
	f := presentation.NewFormatter(w)
	if asJSON {
		return f.FormatJSON(dto)
	}
	return f.FormatCounts(dto)
}
