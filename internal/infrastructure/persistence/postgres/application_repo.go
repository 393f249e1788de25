package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bibbank/loan-origination/internal/domain/model"
	"github.com/bibbank/loan-origination/internal/domain/port"
	"github.com/bibbank/loan-origination/pkg/events"
	pkgpostgres "github.com/bibbank/loan-origination/pkg/postgres"
)

const (
	applicationsTable = "loan_applications"
	outboxTable       = "outbox"
)

var _ port.ApplicationRepository = (*ApplicationRepo)(nil)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ApplicationRepo implements port.ApplicationRepository on PostgreSQL. The
// aggregate is stored as a JSONB snapshot next to the columns it is queried
// by. Pending domain events go to the outbox table in the same transaction.
type ApplicationRepo struct {
	pool *pgxpool.Pool
}

// NewApplicationRepo creates a new repository backed by PostgreSQL.
func NewApplicationRepo(pool *pgxpool.Pool) *ApplicationRepo {
	return &ApplicationRepo{pool: pool}
}

// Save inserts a new application or updates a loaded one under optimistic
// locking.
func (r *ApplicationRepo) Save(ctx context.Context, app model.LoanApplication) error {
	snapshot := app.Snapshot()
	snapshot.Version = app.Version() + 1
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal application %s: %w", app.ID(), err)
	}

	write := upsertStatement(app, snapshot, payload)

	return pkgpostgres.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query, args, err := write.ToSql()
		if err != nil {
			return fmt.Errorf("build save query: %w", err)
		}
		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("save application %s: %w", app.ID(), err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("application %s at version %d: %w", app.ID(), app.Version(), model.ErrConcurrentModification)
		}
		return writeOutbox(ctx, tx, app.DomainEvents())
	})
}

func upsertStatement(app model.LoanApplication, snapshot model.ApplicationSnapshot, payload []byte) sq.Sqlizer {
	if app.Version() == 0 {
		return psql.Insert(applicationsTable).
			Columns("id", "customer_id", "status", "snapshot", "version", "created_at", "updated_at").
			Values(app.ID(), app.CustomerID(), app.Status().String(), payload, snapshot.Version, app.CreatedAt(), app.UpdatedAt()).
			Suffix("ON CONFLICT (id) DO NOTHING")
	}
	return psql.Update(applicationsTable).
		Set("status", app.Status().String()).
		Set("snapshot", payload).
		Set("version", snapshot.Version).
		Set("updated_at", app.UpdatedAt()).
		Where(sq.Eq{"id": app.ID(), "version": app.Version()})
}

func writeOutbox(ctx context.Context, tx pgx.Tx, evts []events.DomainEvent) error {
	if len(evts) == 0 {
		return nil
	}
	insert := psql.Insert(outboxTable).
		Columns("id", "aggregate_id", "aggregate_type", "event_type", "payload", "created_at")
	for _, evt := range evts {
		entry, err := events.NewOutboxEntry(evt)
		if err != nil {
			return fmt.Errorf("outbox: %w", err)
		}
		insert = insert.Values(entry.ID, entry.AggregateID, entry.AggregateType, entry.EventType, entry.Payload, entry.CreatedAt)
	}
	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("build outbox query: %w", err)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert outbox events: %w", err)
	}
	return nil
}

// FindByID retrieves a single application.
func (r *ApplicationRepo) FindByID(ctx context.Context, id string) (model.LoanApplication, error) {
	query, args, err := psql.Select("snapshot", "version").
		From(applicationsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.LoanApplication{}, fmt.Errorf("build find query: %w", err)
	}

	app, err := scanApplication(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.LoanApplication{}, fmt.Errorf("application %s: %w", id, model.ErrApplicationNotFound)
	}
	return app, err
}

// FindByCustomerID retrieves every application of a customer, newest first.
func (r *ApplicationRepo) FindByCustomerID(ctx context.Context, customerID string) ([]model.LoanApplication, error) {
	query, args, err := psql.Select("snapshot", "version").
		From(applicationsTable).
		Where(sq.Eq{"customer_id": customerID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query loan applications: %w", err)
	}
	defer rows.Close()

	var result []model.LoanApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, app)
	}
	return result, rows.Err()
}

// Ping checks the connection pool.
func (r *ApplicationRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// ---------------------------------------------------------------------------
// scan helpers
// ---------------------------------------------------------------------------

type scannable interface {
	Scan(dest ...any) error
}

func scanApplication(s scannable) (model.LoanApplication, error) {
	var (
		raw     []byte
		version int
	)
	if err := s.Scan(&raw, &version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.LoanApplication{}, err
		}
		return model.LoanApplication{}, fmt.Errorf("scan loan application: %w", err)
	}

	var snapshot model.ApplicationSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return model.LoanApplication{}, fmt.Errorf("decode loan application: %w", err)
	}
	snapshot.Version = version
	return model.RestoreLoanApplication(snapshot)
}
