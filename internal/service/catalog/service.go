package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/moundir-nedjm/ponpro-backend/internal/domain/attendance"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/code"
)

// Transactor runs a function as one atomic storage operation. The
// postgres driver opens a real transaction; the memory driver
// serializes callers instead.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type CatalogServiceImpl struct {
	codes code.Repository
	cells attendance.CellRepository
	tx    Transactor
	guard *code.ReferenceGuard
}

func NewCatalogService(codes code.Repository, cells attendance.CellRepository, tx Transactor, guard *code.ReferenceGuard) *CatalogServiceImpl {
	return &CatalogServiceImpl{codes: codes, cells: cells, tx: tx, guard: guard}
}

// ListCodes implements code.Service.
func (s *CatalogServiceImpl) ListCodes(ctx context.Context) ([]code.AttendanceCode, error) {
	codes, err := s.codes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list codes: %w", err)
	}
	return codes, nil
}

// GetCode implements code.Service.
func (s *CatalogServiceImpl) GetCode(ctx context.Context, symbol string) (code.AttendanceCode, error) {
	c, err := s.codes.GetBySymbol(ctx, symbol)
	if err != nil {
		return code.AttendanceCode{}, err
	}
	return c, nil
}

// UpsertCode implements code.Service.
func (s *CatalogServiceImpl) UpsertCode(ctx context.Context, req code.UpsertCodeRequest) (code.AttendanceCode, error) {
	if err := req.Validate(); err != nil {
		return code.AttendanceCode{}, err
	}

	// Repositories keep the original CreatedAt when the symbol already
	// exists.
	now := time.Now().UTC()
	entry := code.AttendanceCode{
		Symbol:               req.Symbol,
		Description:          req.Description,
		ColorHint:            req.ColorHint,
		Category:             req.Category,
		PaymentImpact:        req.PaymentImpact,
		DefaultPremiumAmount: req.DefaultPremiumAmount,
		IsInfluencer:         req.IsInfluencer,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	saved, err := s.codes.Upsert(ctx, entry)
	if err != nil {
		return code.AttendanceCode{}, fmt.Errorf("failed to upsert code: %w", err)
	}
	return saved, nil
}

// DeleteCode implements code.Service. Deletion is blocked while any
// cell still references the symbol so it can never dangle. The guard
// holds off writers that add references for the whole check-and-delete
// window; counting alone would race an in-flight assignment.
func (s *CatalogServiceImpl) DeleteCode(ctx context.Context, symbol string) error {
	release := s.guard.BeginDeletion()
	defer release()

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		refs, err := s.cells.CountBySymbol(ctx, symbol)
		if err != nil {
			return fmt.Errorf("failed to count code references: %w", err)
		}
		if refs > 0 {
			return fmt.Errorf("%d cells still reference %q: %w", refs, symbol, code.ErrCodeInUse)
		}

		return s.codes.Delete(ctx, symbol)
	})
}

// Seed loads defaults into an empty catalog. Startup calls this so a
// fresh install has a working code table without an admin round-trip.
func (s *CatalogServiceImpl) Seed(ctx context.Context, defaults []code.AttendanceCode) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		count, err := s.codes.Count(ctx)
		if err != nil {
			return fmt.Errorf("failed to count codes: %w", err)
		}
		if count > 0 {
			return nil
		}

		for _, c := range defaults {
			c.CreatedAt = time.Now().UTC()
			c.UpdatedAt = c.CreatedAt
			if _, err := s.codes.Upsert(ctx, c); err != nil {
				return fmt.Errorf("failed to seed code %q: %w", c.Symbol, err)
			}
		}
		slog.Info("seeded default attendance code catalog", "codes", len(defaults))
		return nil
	})
}
