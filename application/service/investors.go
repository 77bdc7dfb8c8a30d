package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/adavadkardhruv13/Polaris-backend/domain/investor"
	"github.com/adavadkardhruv13/Polaris-backend/internal/log"
)

// InvestorRecord is the plain input for creating a catalog entry.
type InvestorRecord struct {
	Name              string
	Type              string
	GlobalHQ          string
	StageOfInvestment string
	Website           string
}

// Investors is the application service for the investor catalog.
type Investors struct {
	store  investor.Store
	logger *log.Logger
}

// NewInvestors creates an Investors service.
func NewInvestors(store investor.Store, logger *log.Logger) *Investors {
	return &Investors{store: store, logger: logger}
}

// Create validates and inserts a single investor, returning its ID.
func (s *Investors) Create(ctx context.Context, rec InvestorRecord) (string, error) {
	inv, err := newInvestor(rec)
	if err != nil {
		return "", err
	}

	id, err := s.store.Create(ctx, inv)
	if err != nil {
		return "", fmt.Errorf("create investor: %w", err)
	}

	s.logger.InfoContext(ctx, "investor created", "investor_id", id)
	return id, nil
}

// BulkCreate inserts many investors in one batch. Invalid records are skipped
// and logged rather than failing the whole batch. Returns the number inserted.
func (s *Investors) BulkCreate(ctx context.Context, recs []InvestorRecord) (int, error) {
	invs := make([]investor.Investor, 0, len(recs))
	for i, rec := range recs {
		inv, err := newInvestor(rec)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping invalid investor record",
				"index", i,
				"error", err,
			)
			continue
		}
		invs = append(invs, inv)
	}

	if len(invs) == 0 {
		return 0, nil
	}

	count, err := s.store.BulkCreate(ctx, invs)
	if err != nil {
		return 0, fmt.Errorf("bulk create investors: %w", err)
	}

	s.logger.InfoContext(ctx, "investors created",
		"inserted", count,
		"skipped", len(recs)-len(invs),
	)
	return count, nil
}

// List returns one page of investors matching the request.
func (s *Investors) List(ctx context.Context, req investor.ListRequest) (investor.Page, error) {
	page, err := s.store.List(ctx, req)
	if err != nil {
		return investor.Page{}, fmt.Errorf("list investors: %w", err)
	}
	return page, nil
}

// GetByID returns a single investor or investor.ErrNotFound.
func (s *Investors) GetByID(ctx context.Context, id string) (investor.Investor, error) {
	return s.store.GetByID(ctx, id)
}

// Update applies a partial update and reports whether anything changed.
func (s *Investors) Update(ctx context.Context, id string, update investor.Update) (bool, error) {
	if update.IsEmpty() {
		return false, nil
	}
	changed, err := s.store.Update(ctx, id, update)
	if err != nil {
		return false, fmt.Errorf("update investor: %w", err)
	}
	if changed {
		s.logger.InfoContext(ctx, "investor updated", "investor_id", id)
	}
	return changed, nil
}

// Delete removes an investor and reports whether a row was removed.
func (s *Investors) Delete(ctx context.Context, id string) (bool, error) {
	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete investor: %w", err)
	}
	if removed {
		s.logger.InfoContext(ctx, "investor deleted", "investor_id", id)
	}
	return removed, nil
}

func newInvestor(rec InvestorRecord) (investor.Investor, error) {
	var opts []investor.Option
	if strings.TrimSpace(rec.Type) != "" {
		opts = append(opts, investor.WithType(rec.Type))
	}
	if strings.TrimSpace(rec.GlobalHQ) != "" {
		opts = append(opts, investor.WithGlobalHQ(rec.GlobalHQ))
	}
	if strings.TrimSpace(rec.StageOfInvestment) != "" {
		opts = append(opts, investor.WithStageOfInvestment(rec.StageOfInvestment))
	}
	if strings.TrimSpace(rec.Website) != "" {
		opts = append(opts, investor.WithWebsite(rec.Website))
	}
	return investor.New(rec.Name, opts...)
}
