package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"ixcbridge/internal/inventory/models"
	"ixcbridge/internal/platform/postgres"
	"ixcbridge/pkg/platform/sentinel"
)

// PostgresStore persists equipment and its history. Writes go through the
// transaction carried by ctx when there is one.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const equipmentColumns = `id, category, model, serial_number, mac_address, status,
	linked_customer_id, linked_customer_name, monthly_fee, cost_price, external_upstream_id, notes`

func (s *PostgresStore) List(ctx context.Context, f models.Filter) ([]*models.Equipment, error) {
	var (
		conds []string
		args  []any
	)
	if f.Status != "" {
		args = append(args, string(f.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		args = append(args, postgres.ContainsPattern(search))
		n := len(args)
		conds = append(conds, fmt.Sprintf("(model ILIKE $%d OR serial_number ILIKE $%d OR mac_address ILIKE $%d OR linked_customer_name ILIKE $%d)", n, n, n, n))
	}
	query := `SELECT ` + equipmentColumns + ` FROM equipment`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY id ASC`

	rows, err := postgres.Executor(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Equipment, 0)
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan equipment: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate equipment: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Get(ctx context.Context, equipmentID int64) (*models.Equipment, error) {
	row := postgres.Executor(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+equipmentColumns+` FROM equipment WHERE id = $1`, equipmentID)
	e, err := scanEquipment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find equipment: %w", err)
	}
	return e, nil
}

func (s *PostgresStore) Create(ctx context.Context, e *models.Equipment) error {
	err := postgres.Executor(ctx, s.db).QueryRowContext(ctx, `
		INSERT INTO equipment (category, model, serial_number, mac_address, status,
			linked_customer_id, linked_customer_name, monthly_fee, cost_price, external_upstream_id, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`,
		e.Category, e.Model, e.SerialNumber, e.MACAddress, string(e.Status),
		e.LinkedCustomerID, e.LinkedCustomerName, e.MonthlyFee, e.CostPrice, e.ExternalUpstreamID, e.Notes,
	).Scan(&e.ID)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert equipment: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, e *models.Equipment) error {
	res, err := postgres.Executor(ctx, s.db).ExecContext(ctx, `
		UPDATE equipment SET
			category = $2,
			model = $3,
			serial_number = $4,
			mac_address = $5,
			status = $6,
			linked_customer_id = $7,
			linked_customer_name = $8,
			monthly_fee = $9,
			cost_price = $10,
			external_upstream_id = $11,
			notes = $12
		WHERE id = $1
	`,
		e.ID, e.Category, e.Model, e.SerialNumber, e.MACAddress, string(e.Status),
		e.LinkedCustomerID, e.LinkedCustomerName, e.MonthlyFee, e.CostPrice, e.ExternalUpstreamID, e.Notes,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("update equipment: %w", err)
	}
	return requireAffected(res)
}

func (s *PostgresStore) Delete(ctx context.Context, equipmentID int64) error {
	res, err := postgres.Executor(ctx, s.db).ExecContext(ctx, `DELETE FROM equipment WHERE id = $1`, equipmentID)
	if err != nil {
		return fmt.Errorf("delete equipment: %w", err)
	}
	return requireAffected(res)
}

func (s *PostgresStore) AppendHistory(ctx context.Context, h *models.HistoryEntry) error {
	err := postgres.Executor(ctx, s.db).QueryRowContext(ctx, `
		INSERT INTO equipment_history (equipment_id, recorded_at, action, customer_id, customer_name, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, h.EquipmentID, h.RecordedAt, string(h.Action), h.CustomerID, h.CustomerName, h.Notes).Scan(&h.ID)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return sentinel.ErrNotFound
		}
		return fmt.Errorf("insert equipment history: %w", err)
	}
	return nil
}

// History returns entries newest first.
func (s *PostgresStore) History(ctx context.Context, equipmentID int64) ([]*models.HistoryEntry, error) {
	rows, err := postgres.Executor(ctx, s.db).QueryContext(ctx, `
		SELECT id, equipment_id, recorded_at, action, customer_id, customer_name, notes
		FROM equipment_history
		WHERE equipment_id = $1
		ORDER BY recorded_at DESC, id DESC
	`, equipmentID)
	if err != nil {
		return nil, fmt.Errorf("list equipment history: %w", err)
	}
	defer rows.Close()

	out := make([]*models.HistoryEntry, 0)
	for rows.Next() {
		var (
			h      models.HistoryEntry
			action string
		)
		if err := rows.Scan(&h.ID, &h.EquipmentID, &h.RecordedAt, &action, &h.CustomerID, &h.CustomerName, &h.Notes); err != nil {
			return nil, fmt.Errorf("scan equipment history: %w", err)
		}
		h.Action = models.Action(action)
		out = append(out, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate equipment history: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEquipment(row scanner) (*models.Equipment, error) {
	var (
		e          models.Equipment
		status     string
		customerID sql.NullString
		name       sql.NullString
	)
	err := row.Scan(
		&e.ID,
		&e.Category,
		&e.Model,
		&e.SerialNumber,
		&e.MACAddress,
		&status,
		&customerID,
		&name,
		&e.MonthlyFee,
		&e.CostPrice,
		&e.ExternalUpstreamID,
		&e.Notes,
	)
	if err != nil {
		return nil, err
	}
	e.Status = models.Status(status)
	if customerID.Valid {
		e.LinkedCustomerID = &customerID.String
	}
	if name.Valid {
		e.LinkedCustomerName = &name.String
	}
	return &e, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
