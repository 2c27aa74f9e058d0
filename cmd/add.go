package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/dealboard/internal/pipeline"
)

var (
	addCompany string
	addAmount  int64
	addStage   string
	addNotes   string
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a deal",
	Long: `Add a deal to the pipeline. Amounts are whole dollars.

Examples:
  dealboard add "Acme renewal" --company Acme --amount 12000 --stage quoting`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stage, err := pipeline.ParseStage(addStage)
		if err != nil {
			return fmt.Errorf("--stage: %w", err)
		}
		env, err := openEnv(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = env.Close(context.Background()) }()

		d := pipeline.Deal{
			Title:   args[0],
			Company: addCompany,
			Amount:  addAmount * 100,
			Stage:   stage,
			Notes:   addNotes,
		}
		if err := env.svc.Add(cmd.Context(), &d); err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), d.ID)
		return err
	},
}

func init() {
	addCmd.Flags().StringVar(&addCompany, "company", "", "company name")
	addCmd.Flags().Int64Var(&addAmount, "amount", 0, "deal value in dollars")
	addCmd.Flags().StringVarP(&addStage, "stage", "s", pipeline.Prospecting.String(), "pipeline stage")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "markdown notes")
	rootCmd.AddCommand(addCmd)
}
