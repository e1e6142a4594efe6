package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/code"
	"github.com/moundir-nedjm/ponpro-backend/internal/pkg/database"
)

type codeRepository struct {
	db *database.DB
}

func NewCodeRepository(db *database.DB) code.Repository {
	return &codeRepository{db: db}
}

// List implements code.Repository.
func (r *codeRepository) List(ctx context.Context) ([]code.AttendanceCode, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT symbol, description, color_hint, category, payment_impact,
		       default_premium_amount, is_influencer, created_at, updated_at
		FROM attendance_codes
		ORDER BY symbol
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query codes: %w", err)
	}
	defer rows.Close()

	var codes []code.AttendanceCode
	for rows.Next() {
		var c code.AttendanceCode
		err := rows.Scan(
			&c.Symbol, &c.Description, &c.ColorHint, &c.Category, &c.PaymentImpact,
			&c.DefaultPremiumAmount, &c.IsInfluencer, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan code: %w", err)
		}
		codes = append(codes, c)
	}

	return codes, nil
}

// GetBySymbol implements code.Repository.
func (r *codeRepository) GetBySymbol(ctx context.Context, symbol string) (code.AttendanceCode, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT symbol, description, color_hint, category, payment_impact,
		       default_premium_amount, is_influencer, created_at, updated_at
		FROM attendance_codes
		WHERE symbol = $1
	`

	var c code.AttendanceCode
	err := q.QueryRow(ctx, query, symbol).Scan(
		&c.Symbol, &c.Description, &c.ColorHint, &c.Category, &c.PaymentImpact,
		&c.DefaultPremiumAmount, &c.IsInfluencer, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return code.AttendanceCode{}, code.ErrCodeNotFound
		}
		return code.AttendanceCode{}, fmt.Errorf("failed to get code by symbol: %w", err)
	}

	return c, nil
}

// Upsert implements code.Repository.
func (r *codeRepository) Upsert(ctx context.Context, c code.AttendanceCode) (code.AttendanceCode, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_codes (
			symbol, description, color_hint, category, payment_impact,
			default_premium_amount, is_influencer, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		ON CONFLICT (symbol) DO UPDATE SET
			description = EXCLUDED.description,
			color_hint = EXCLUDED.color_hint,
			category = EXCLUDED.category,
			payment_impact = EXCLUDED.payment_impact,
			default_premium_amount = EXCLUDED.default_premium_amount,
			is_influencer = EXCLUDED.is_influencer,
			updated_at = EXCLUDED.updated_at
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		c.Symbol,
		c.Description,
		c.ColorHint,
		c.Category,
		c.PaymentImpact,
		c.DefaultPremiumAmount,
		c.IsInfluencer,
		c.CreatedAt,
		c.UpdatedAt,
	).Scan(&c.CreatedAt)
	if err != nil {
		return code.AttendanceCode{}, fmt.Errorf("failed to upsert code: %w", err)
	}

	return c, nil
}

// Delete implements code.Repository.
func (r *codeRepository) Delete(ctx context.Context, symbol string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM attendance_codes WHERE symbol = $1`

	tag, err := q.Exec(ctx, query, symbol)
	if err != nil {
		return fmt.Errorf("failed to delete code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return code.ErrCodeNotFound
	}

	return nil
}

// Count implements code.Repository.
func (r *codeRepository) Count(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM attendance_codes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count codes: %w", err)
	}

	return count, nil
}
