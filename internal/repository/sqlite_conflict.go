package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/mangala/internal/db"
	"github.com/alexanderramin/mangala/internal/domain"
)

// conflictDetail is the JSON shape of the detail column.
type conflictDetail struct {
	Timing   *domain.TimingDetail   `json:"timing,omitempty"`
	Vendor   *domain.VendorDetail   `json:"vendor,omitempty"`
	Cultural *domain.CulturalDetail `json:"cultural,omitempty"`
}

const conflictColumns = `id, wedding_id, type, severity, title, description,
	affected_events, affected_vendors, detail, status, resolution_id, dismiss_reason, created_at`

// SQLiteConflictRepo implements ConflictRepo using a SQLite database.
type SQLiteConflictRepo struct {
	db db.DBTX
}

// NewSQLiteConflictRepo creates a repository over a *sql.DB or *sql.Tx.
func NewSQLiteConflictRepo(conn db.DBTX) *SQLiteConflictRepo {
	return &SQLiteConflictRepo{db: conn}
}

// Create inserts c and its resolution options. Run it inside a unit of
// work when the two writes must be atomic.
func (r *SQLiteConflictRepo) Create(ctx context.Context, c *domain.Conflict) error {
	events, err := encodeStrings(c.AffectedEvents)
	if err != nil {
		return err
	}
	vendors, err := encodeStrings(c.AffectedVendors)
	if err != nil {
		return err
	}
	detail, err := json.Marshal(conflictDetail{Timing: c.Timing, Vendor: c.Vendor, Cultural: c.Cultural})
	if err != nil {
		return fmt.Errorf("encoding conflict detail: %w", err)
	}
	created := formatTime(c.CreatedAt)

	query := `INSERT INTO conflicts (` + conflictColumns + `, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		c.ID,
		c.WeddingID,
		string(c.Type),
		string(c.Severity),
		c.Title,
		c.Description,
		events,
		vendors,
		string(detail),
		string(c.Status),
		nullableString(c.ResolutionID),
		nullableString(c.DismissReason),
		created,
		created,
	)
	if err != nil {
		return fmt.Errorf("inserting conflict: %w", err)
	}

	optQuery := `INSERT INTO resolution_options
		(id, conflict_id, position, type, title, description, effort, required_action, auto_resolvable)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i, o := range c.ResolutionOptions {
		_, err := r.db.ExecContext(ctx, optQuery,
			o.ID,
			c.ID,
			i,
			string(o.Type),
			o.Title,
			o.Description,
			string(o.EstimatedEffort),
			o.RequiredAction,
			boolToInt(o.AutoResolvable),
		)
		if err != nil {
			return fmt.Errorf("inserting resolution option %d: %w", i, err)
		}
	}
	return nil
}

func (r *SQLiteConflictRepo) GetByID(ctx context.Context, id string) (*domain.Conflict, error) {
	query := `SELECT ` + conflictColumns + ` FROM conflicts WHERE id = ?`
	c, err := scanConflict(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("conflict %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	if err := r.loadOptions(ctx, []*domain.Conflict{c}); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *SQLiteConflictRepo) ListByWedding(ctx context.Context, weddingID string, status domain.ConflictStatus) ([]*domain.Conflict, error) {
	query := `SELECT ` + conflictColumns + ` FROM conflicts
		WHERE wedding_id = ? AND (? = '' OR status = ?)
		ORDER BY created_at, rowid`
	rows, err := r.db.QueryContext(ctx, query, weddingID, string(status), string(status))
	if err != nil {
		return nil, fmt.Errorf("listing conflicts by wedding: %w", err)
	}

	var conflicts []*domain.Conflict
	for rows.Next() {
		c, err := scanConflict(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		conflicts = append(conflicts, c)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating conflicts: %w", err)
	}
	// Close before loading options; the connection may be the only one.
	rows.Close()

	if err := r.loadOptions(ctx, conflicts); err != nil {
		return nil, err
	}
	return conflicts, nil
}

func (r *SQLiteConflictRepo) UpdateStatus(ctx context.Context, id string, u StatusUpdate) error {
	query := `UPDATE conflicts SET status = ?, resolution_id = ?, dismiss_reason = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		string(u.Status),
		nullableString(u.ResolutionID),
		nullableString(u.DismissReason),
		formatTime(u.At),
		id,
	)
	if err != nil {
		return fmt.Errorf("updating conflict status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking updated conflict: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("conflict %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteActiveByWedding removes the wedding's active conflicts, keeping the
// resolved and dismissed history. Options go with them via the cascade.
func (r *SQLiteConflictRepo) DeleteActiveByWedding(ctx context.Context, weddingID string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM conflicts WHERE wedding_id = ? AND status = 'active'`, weddingID)
	if err != nil {
		return 0, fmt.Errorf("deleting active conflicts: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted conflicts: %w", err)
	}
	return n, nil
}

func (r *SQLiteConflictRepo) loadOptions(ctx context.Context, conflicts []*domain.Conflict) error {
	query := `SELECT id, type, title, description, effort, required_action, auto_resolvable
		FROM resolution_options WHERE conflict_id = ? ORDER BY position`
	for _, c := range conflicts {
		rows, err := r.db.QueryContext(ctx, query, c.ID)
		if err != nil {
			return fmt.Errorf("listing resolution options: %w", err)
		}
		c.ResolutionOptions, err = scanOptions(rows)
		rows.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func scanOptions(rows *sql.Rows) ([]domain.ResolutionOption, error) {
	options := []domain.ResolutionOption{}
	for rows.Next() {
		var o domain.ResolutionOption
		var typ, effort string
		var auto int
		if err := rows.Scan(&o.ID, &typ, &o.Title, &o.Description, &effort, &o.RequiredAction, &auto); err != nil {
			return nil, fmt.Errorf("scanning resolution option: %w", err)
		}
		o.Type = domain.ResolutionType(typ)
		o.EstimatedEffort = domain.Effort(effort)
		o.AutoResolvable = intToBool(auto)
		options = append(options, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating resolution options: %w", err)
	}
	return options, nil
}

// scanConflict reads one conflicts row. sql.ErrNoRows is returned
// unwrapped so callers can map it to ErrNotFound.
func scanConflict(row rowScanner) (*domain.Conflict, error) {
	var c domain.Conflict
	var typ, severity, status, events, vendors, detail, created string
	var resolutionID, dismissReason sql.NullString

	err := row.Scan(
		&c.ID, &c.WeddingID, &typ, &severity, &c.Title, &c.Description,
		&events, &vendors, &detail, &status, &resolutionID, &dismissReason, &created,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning conflict: %w", err)
	}

	c.Type = domain.ConflictType(typ)
	c.Severity = domain.Severity(severity)
	c.Status = domain.ConflictStatus(status)
	c.ResolutionID = scanNullString(resolutionID)
	c.DismissReason = scanNullString(dismissReason)

	if c.AffectedEvents, err = decodeStrings(events); err != nil {
		return nil, fmt.Errorf("conflict %s affected events: %w", c.ID, err)
	}
	if c.AffectedVendors, err = decodeStrings(vendors); err != nil {
		return nil, fmt.Errorf("conflict %s affected vendors: %w", c.ID, err)
	}
	var d conflictDetail
	if err := json.Unmarshal([]byte(detail), &d); err != nil {
		return nil, fmt.Errorf("conflict %s detail: %w", c.ID, err)
	}
	c.Timing, c.Vendor, c.Cultural = d.Timing, d.Vendor, d.Cultural

	if c.CreatedAt, err = parseTime(created); err != nil {
		return nil, fmt.Errorf("conflict %s: %w", c.ID, err)
	}
	return &c, nil
}

var _ ConflictRepo = (*SQLiteConflictRepo)(nil)
