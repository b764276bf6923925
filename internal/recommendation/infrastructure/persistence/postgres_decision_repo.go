package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	recommendationDomain "github.com/temporahq/tempora/internal/recommendation/domain"
	sharedPersistence "github.com/temporahq/tempora/internal/shared/infrastructure/persistence"
)

// PostgresDecisionRepository implements domain.Repository using PostgreSQL.
type PostgresDecisionRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresDecisionRepository creates a new PostgreSQL decision repository.
func NewPostgresDecisionRepository(pool *pgxpool.Pool) *PostgresDecisionRepository {
	return &PostgresDecisionRepository{pool: pool}
}

// Save upserts a decision keyed by slot id, last write wins.
func (r *PostgresDecisionRepository) Save(ctx context.Context, d *recommendationDomain.Decision) error {
	exec := sharedPersistence.Executor(ctx, r.pool)

	query := `
		INSERT INTO recommendation_decisions (id, slot_id, user_id, accepted, decided_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (slot_id) DO UPDATE SET
			accepted = EXCLUDED.accepted,
			decided_at = EXCLUDED.decided_at,
			updated_at = EXCLUDED.updated_at
	`
	_, err := exec.Exec(ctx, query,
		d.ID(), d.SlotID(), d.UserID(), d.Accepted(), d.DecidedAt(), d.CreatedAt(), d.UpdatedAt(),
	)
	return err
}

const pgSelectDecision = `
	SELECT id, slot_id, user_id, accepted, decided_at, created_at, updated_at
	FROM recommendation_decisions
`

// FindBySlotID retrieves the decision recorded for a slot.
func (r *PostgresDecisionRepository) FindBySlotID(ctx context.Context, slotID uuid.UUID) (*recommendationDomain.Decision, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)

	row := exec.QueryRow(ctx, pgSelectDecision+` WHERE slot_id = $1`, slotID)
	d, err := scanPgDecisionRow(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, recommendationDomain.ErrDecisionNotFound
		}
		return nil, err
	}
	return d, nil
}

// FindByUserID retrieves all of a user's decisions, newest first.
func (r *PostgresDecisionRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*recommendationDomain.Decision, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)

	rows, err := exec.Query(ctx, pgSelectDecision+` WHERE user_id = $1 ORDER BY decided_at DESC, id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var decisions []*recommendationDomain.Decision
	for rows.Next() {
		d, err := scanPgDecisionRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		decisions = append(decisions, d)
	}
	return decisions, rows.Err()
}

// Delete removes the decision for a slot. Missing decisions are not an error.
func (r *PostgresDecisionRepository) Delete(ctx context.Context, slotID uuid.UUID) error {
	exec := sharedPersistence.Executor(ctx, r.pool)
	_, err := exec.Exec(ctx, `DELETE FROM recommendation_decisions WHERE slot_id = $1`, slotID)
	return err
}

func scanPgDecisionRow(scan func(dest ...any) error) (*recommendationDomain.Decision, error) {
	var (
		id, slotID, userID              uuid.UUID
		accepted                        bool
		decidedAt, createdAt, updatedAt time.Time
	)
	if err := scan(&id, &slotID, &userID, &accepted, &decidedAt, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return recommendationDomain.RehydrateDecision(id, slotID, userID, accepted, decidedAt, createdAt, updatedAt), nil
}
