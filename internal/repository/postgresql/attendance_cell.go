package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/attendance"
	"github.com/moundir-nedjm/ponpro-backend/internal/pkg/database"
)

type cellRepository struct {
	db *database.DB
}

func NewCellRepository(db *database.DB) attendance.CellRepository {
	return &cellRepository{db: db}
}

// GetByEmployeeAndDate implements attendance.CellRepository.
func (r *cellRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Cell, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, check_in, check_out,
		       assigned_symbol, premium_amount, last_modified, modified_by
		FROM attendance_cells
		WHERE employee_id = $1
		  AND date = $2
	`

	var cell attendance.Cell
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&cell.ID, &cell.EmployeeID, &cell.Date, &cell.CheckIn, &cell.CheckOut,
		&cell.AssignedSymbol, &cell.PremiumAmount, &cell.LastModified, &cell.ModifiedBy,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // no cell recorded yet
		}
		return nil, fmt.Errorf("failed to get cell by employee and date: %w", err)
	}

	return &cell, nil
}

// Upsert implements attendance.CellRepository. The unique constraint
// on (employee_id, date) guarantees one live cell per pair; the whole
// row is replaced so readers never see a partially written cell.
func (r *cellRepository) Upsert(ctx context.Context, cell attendance.Cell) (attendance.Cell, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_cells (
			id, employee_id, date, check_in, check_out,
			assigned_symbol, premium_amount, last_modified, modified_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			check_in = EXCLUDED.check_in,
			check_out = EXCLUDED.check_out,
			assigned_symbol = EXCLUDED.assigned_symbol,
			premium_amount = EXCLUDED.premium_amount,
			last_modified = EXCLUDED.last_modified,
			modified_by = EXCLUDED.modified_by
		RETURNING id
	`

	err := q.QueryRow(ctx, query,
		cell.ID,
		cell.EmployeeID,
		cell.Date,
		cell.CheckIn,
		cell.CheckOut,
		cell.AssignedSymbol,
		cell.PremiumAmount,
		cell.LastModified,
		cell.ModifiedBy,
	).Scan(&cell.ID)
	if err != nil {
		return attendance.Cell{}, fmt.Errorf("failed to upsert cell: %w", err)
	}

	return cell, nil
}

// ListByDateRange implements attendance.CellRepository.
func (r *cellRepository) ListByDateRange(ctx context.Context, employeeIDs []string, from, to time.Time) ([]attendance.Cell, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, check_in, check_out,
		       assigned_symbol, premium_amount, last_modified, modified_by
		FROM attendance_cells
		WHERE employee_id = ANY($1)
		  AND date >= $2
		  AND date <= $3
		ORDER BY employee_id, date
	`

	rows, err := q.Query(ctx, query, employeeIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query cells: %w", err)
	}
	defer rows.Close()

	var cells []attendance.Cell
	for rows.Next() {
		var cell attendance.Cell
		err := rows.Scan(
			&cell.ID, &cell.EmployeeID, &cell.Date, &cell.CheckIn, &cell.CheckOut,
			&cell.AssignedSymbol, &cell.PremiumAmount, &cell.LastModified, &cell.ModifiedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cell: %w", err)
		}
		cells = append(cells, cell)
	}

	return cells, nil
}

// CountBySymbol implements attendance.CellRepository.
func (r *cellRepository) CountBySymbol(ctx context.Context, symbol string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM attendance_cells
		WHERE assigned_symbol = $1
	`

	var count int64
	if err := q.QueryRow(ctx, query, symbol).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cells by symbol: %w", err)
	}

	return count, nil
}
