package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/dealboard/internal/log"
	"github.com/zjrosen/dealboard/internal/pipeline"
	"github.com/zjrosen/dealboard/internal/tracing"
)

const dealColumns = `id, title, company, amount, stage, notes, created_at, updated_at`

// dealRepository implements pipeline.DealRepository using SQLite.
type dealRepository struct {
	db     *sql.DB
	tracer trace.Tracer
	now    func() time.Time
}

var _ pipeline.DealRepository = (*dealRepository)(nil)

func newDealRepository(db *sql.DB, tracer trace.Tracer) *dealRepository {
	return &dealRepository{db: db, tracer: tracer, now: time.Now}
}

func nooptracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer("")
}

func scanDeal(scanner interface{ Scan(...any) error }) (*DealModel, error) {
	var m DealModel
	err := scanner.Scan(&m.ID, &m.Title, &m.Company, &m.Amount, &m.Stage, &m.Notes, &m.CreatedAt, &m.UpdatedAt)
	return &m, err
}

// SaveDeal inserts a new deal (empty ID) or updates an existing one.
func (r *dealRepository) SaveDeal(ctx context.Context, d *pipeline.Deal) (err error) {
	ctx, span := tracing.Start(ctx, r.tracer, tracing.SpanSaveDeal, tracing.AttrStage.String(d.Stage.String()))
	defer func() { tracing.End(span, err) }()

	if err := d.Validate(); err != nil {
		return fmt.Errorf("invalid deal: %w", err)
	}

	now := r.now()
	d.UpdatedAt = now
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	span.SetAttributes(tracing.AttrDealID.String(d.ID))
	model := toDealModel(d, now)

	// created_at is kept on conflict so an update never rewrites it.
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO deals (`+dealColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			company = excluded.company,
			amount = excluded.amount,
			stage = excluded.stage,
			notes = excluded.notes,
			updated_at = excluded.updated_at`,
		model.ID, model.Title, model.Company, model.Amount, model.Stage, model.Notes, model.CreatedAt, model.UpdatedAt,
	)
	if err != nil {
		log.ErrorErr(log.CatDB, "save deal failed", err, "id", d.ID)
		return fmt.Errorf("failed to save deal: %w", err)
	}
	log.Debug(log.CatDB, "deal saved", "id", d.ID, "stage", d.Stage)
	return nil
}

// FindDeal returns one deal by ID.
func (r *dealRepository) FindDeal(ctx context.Context, id string) (_ pipeline.Deal, err error) {
	ctx, span := tracing.Start(ctx, r.tracer, tracing.SpanFindDeal, tracing.AttrDealID.String(id))
	defer func() { tracing.End(span, err) }()

	row := r.db.QueryRowContext(ctx, `SELECT `+dealColumns+` FROM deals WHERE id = ?`, id)
	model, err := scanDeal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return pipeline.Deal{}, fmt.Errorf("%w: %s", pipeline.ErrDealNotFound, id)
	}
	if err != nil {
		return pipeline.Deal{}, fmt.Errorf("failed to find deal: %w", err)
	}
	return model.toDomain()
}

// ListDeals returns deals for the selection, newest update first.
func (r *dealRepository) ListDeals(ctx context.Context, sel pipeline.Selection) (deals []pipeline.Deal, err error) {
	ctx, span := tracing.Start(ctx, r.tracer, tracing.SpanListDeals, tracing.AttrSelection.String(sel.String()))
	defer func() { tracing.End(span, err) }()

	query := `SELECT ` + dealColumns + ` FROM deals`
	var args []any
	if stage, ok := sel.Stage(); ok {
		query += ` WHERE stage = ?`
		args = append(args, stage.String())
	}
	query += ` ORDER BY updated_at DESC, title ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list deals: %w", err)
	}
	defer rows.Close()

	deals = []pipeline.Deal{}
	for rows.Next() {
		model, err := scanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deal: %w", err)
		}
		d, err := model.toDomain()
		if err != nil {
			return nil, err
		}
		deals = append(deals, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list deals: %w", err)
	}
	span.SetAttributes(tracing.AttrRows.Int(len(deals)))
	return deals, nil
}

// CountByStage returns a count for every stage; stages without deals are 0.
func (r *dealRepository) CountByStage(ctx context.Context) (counts pipeline.DealCounts, err error) {
	ctx, span := tracing.Start(ctx, r.tracer, tracing.SpanCountByStage)
	defer func() { tracing.End(span, err) }()

	rows, err := r.db.QueryContext(ctx, `SELECT stage, COUNT(*) FROM deals GROUP BY stage`)
	if err != nil {
		return nil, fmt.Errorf("failed to count deals: %w", err)
	}
	defer rows.Close()

	counts = pipeline.NewDealCounts()
	for rows.Next() {
		var (
			name string
			n    int
		)
		if err := rows.Scan(&name, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		stage, err := pipeline.ParseStage(name)
		if err != nil {
			log.Warn(log.CatDB, "skipping unknown stage", "stage", name)
			continue
		}
		counts[stage] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to count deals: %w", err)
	}
	return counts, nil
}

// MoveDeal sets the stage of deal id.
func (r *dealRepository) MoveDeal(ctx context.Context, id string, to pipeline.Stage) (err error) {
	ctx, span := tracing.Start(ctx, r.tracer, tracing.SpanMoveDeal,
		tracing.AttrDealID.String(id), tracing.AttrStage.String(to.String()))
	defer func() { tracing.End(span, err) }()

	if !to.Valid() {
		return fmt.Errorf("%w: %d", pipeline.ErrUnknownStage, int(to))
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE deals SET stage = ?, updated_at = ? WHERE id = ?`,
		to.String(), r.now().Unix(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to move deal: %w", err)
	}
	return requireAffected(res, id)
}

// DeleteDeal removes deal id.
func (r *dealRepository) DeleteDeal(ctx context.Context, id string) (err error) {
	ctx, span := tracing.Start(ctx, r.tracer, tracing.SpanDeleteDeal, tracing.AttrDealID.String(id))
	defer func() { tracing.End(span, err) }()

	res, err := r.db.ExecContext(ctx, `DELETE FROM deals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete deal: %w", err)
	}
	return requireAffected(res, id)
}

func requireAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", pipeline.ErrDealNotFound, id)
	}
	return nil
}
