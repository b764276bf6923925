package persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	recommendationDomain "github.com/temporahq/tempora/internal/recommendation/domain"
	sharedPersistence "github.com/temporahq/tempora/internal/shared/infrastructure/persistence"
)

// SQLiteDecisionRepository implements domain.Repository using SQLite.
type SQLiteDecisionRepository struct {
	db *sql.DB
}

// NewSQLiteDecisionRepository creates a new SQLite decision repository.
func NewSQLiteDecisionRepository(db *sql.DB) *SQLiteDecisionRepository {
	return &SQLiteDecisionRepository{db: db}
}

func (r *SQLiteDecisionRepository) querier(ctx context.Context) sharedPersistence.SQLQuerier {
	return sharedPersistence.SQLiteExecutor(ctx, r.db)
}

// Save upserts a decision keyed by slot id, last write wins.
func (r *SQLiteDecisionRepository) Save(ctx context.Context, d *recommendationDomain.Decision) error {
	q := r.querier(ctx)

	query := `
		INSERT INTO recommendation_decisions (id, slot_id, user_id, accepted, decided_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (slot_id) DO UPDATE SET
			accepted = excluded.accepted,
			decided_at = excluded.decided_at,
			updated_at = excluded.updated_at
	`
	accepted := 0
	if d.Accepted() {
		accepted = 1
	}
	_, err := q.ExecContext(ctx, query,
		d.ID().String(),
		d.SlotID().String(),
		d.UserID().String(),
		accepted,
		sharedPersistence.FormatTime(d.DecidedAt()),
		sharedPersistence.FormatTime(d.CreatedAt()),
		sharedPersistence.FormatTime(d.UpdatedAt()),
	)
	return err
}

const sqliteSelectDecision = `
	SELECT id, slot_id, user_id, accepted, decided_at, created_at, updated_at
	FROM recommendation_decisions
`

// FindBySlotID retrieves the decision recorded for a slot.
func (r *SQLiteDecisionRepository) FindBySlotID(ctx context.Context, slotID uuid.UUID) (*recommendationDomain.Decision, error) {
	q := r.querier(ctx)

	row := q.QueryRowContext(ctx, sqliteSelectDecision+` WHERE slot_id = ?`, slotID.String())
	d, err := scanDecisionRow(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, recommendationDomain.ErrDecisionNotFound
		}
		return nil, err
	}
	return d, nil
}

// FindByUserID retrieves all of a user's decisions, newest first.
func (r *SQLiteDecisionRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*recommendationDomain.Decision, error) {
	q := r.querier(ctx)

	rows, err := q.QueryContext(ctx, sqliteSelectDecision+` WHERE user_id = ? ORDER BY decided_at DESC, id`, userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var decisions []*recommendationDomain.Decision
	for rows.Next() {
		d, err := scanDecisionRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		decisions = append(decisions, d)
	}
	return decisions, rows.Err()
}

// Delete removes the decision for a slot. Missing decisions are not an error.
func (r *SQLiteDecisionRepository) Delete(ctx context.Context, slotID uuid.UUID) error {
	q := r.querier(ctx)
	_, err := q.ExecContext(ctx, `DELETE FROM recommendation_decisions WHERE slot_id = ?`, slotID.String())
	return err
}

func scanDecisionRow(scan func(dest ...any) error) (*recommendationDomain.Decision, error) {
	var (
		id, slotID, userID              string
		accepted                        int
		decidedAt, createdAt, updatedAt string
	)
	if err := scan(&id, &slotID, &userID, &accepted, &decidedAt, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	decisionID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	slot, err := uuid.Parse(slotID)
	if err != nil {
		return nil, err
	}
	user, err := uuid.Parse(userID)
	if err != nil {
		return nil, err
	}
	decided, err := sharedPersistence.ParseTime(decidedAt)
	if err != nil {
		return nil, err
	}
	created, err := sharedPersistence.ParseTime(createdAt)
	if err != nil {
		return nil, err
	}
	updated, err := sharedPersistence.ParseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return recommendationDomain.RehydrateDecision(decisionID, slot, user, accepted != 0, decided, created, updated), nil
}
