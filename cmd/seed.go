package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/dealboard/internal/pipeline"
)

var seedCmd = &cobra.Command{
	Use:   "seed <file.yaml>",
	Short: "Load deals from a YAML fixture",
	Long: `Load deals from a YAML fixture into the database.

The file holds a list of deals; amounts are whole dollars:

  deals:
    - title: Acme renewal
      company: Acme
      amount: 12000
      stage: quoting
      notes: |
        Procurement wants a **3 year** term.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening seed file: %w", err)
		}
		defer func() { _ = f.Close() }()

		deals, err := parseSeed(f)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", args[0], err)
		}

		env, err := openEnv(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = env.Close(context.Background()) }()

		n, err := seedDeals(cmd.Context(), env.svc, deals)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "seeded %d deals\n", n)
		return err
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

type seedFile struct {
	Deals []seedDeal `yaml:"deals"`
}

type seedDeal struct {
	Title   string         `yaml:"title"`
	Company string         `yaml:"company"`
	Amount  int64          `yaml:"amount"`
	Stage   pipeline.Stage `yaml:"stage"`
	Notes   string         `yaml:"notes"`
}

// parseSeed decodes a fixture and validates every deal in it, reporting all
// invalid entries at once.
func parseSeed(r io.Reader) ([]pipeline.Deal, error) {
	var doc seedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	deals := make([]pipeline.Deal, 0, len(doc.Deals))
	var errs []error
	for i, sd := range doc.Deals {
		d := pipeline.Deal{
			Title:   sd.Title,
			Company: sd.Company,
			Amount:  sd.Amount * 100,
			Stage:   sd.Stage,
			Notes:   sd.Notes,
		}
		if err := d.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("deal %d: %w", i+1, err))
			continue
		}
		deals = append(deals, d)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return deals, nil
}

type dealAdder interface {
	Add(ctx context.Context, d *pipeline.Deal) error
}

func seedDeals(ctx context.Context, svc dealAdder, deals []pipeline.Deal) (int, error) {
	for i := range deals {
		if err := svc.Add(ctx, &deals[i]); err != nil {
			return i, fmt.Errorf("adding %q: %w", deals[i].Title, err)
		}
	}
	return len(deals), nil
}
