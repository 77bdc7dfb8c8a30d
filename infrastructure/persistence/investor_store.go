package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/adavadkardhruv13/Polaris-backend/domain/investor"
	"github.com/adavadkardhruv13/Polaris-backend/internal/database"
	"github.com/adavadkardhruv13/Polaris-backend/internal/log"
)

// sortColumns maps the list operation's sort field names to table columns.
// Only mapped fields are ever interpolated into ORDER BY.
var sortColumns = map[string]string{
	investor.SortByName:  "investor_name",
	investor.SortByType:  "investor_type",
	investor.SortByHQ:    "global_hq",
	investor.SortByStage: "stage_of_investment",
}

// searchColumns are OR-matched by the free-text search filter.
var searchColumns = []string{
	"investor_name",
	"investor_type",
	"global_hq",
	"stage_of_investment",
}

// InvestorStore implements investor.Store using GORM.
type InvestorStore struct {
	db     database.Database
	mapper InvestorMapper
	logger *log.Logger
}

// NewInvestorStore creates a new InvestorStore.
func NewInvestorStore(db database.Database, logger *log.Logger) InvestorStore {
	if logger == nil {
		logger = log.Default()
	}
	return InvestorStore{db: db, logger: logger}
}

// Create inserts a new investor and returns its ID.
func (s InvestorStore) Create(ctx context.Context, inv investor.Investor) (string, error) {
	model := s.mapper.ToModel(inv)
	if result := s.db.Session(ctx).Create(&model); result.Error != nil {
		return "", fmt.Errorf("create investor: %w", result.Error)
	}
	return model.ID, nil
}

// BulkCreate inserts many investors in a single transactional batch and
// returns the number inserted.
func (s InvestorStore) BulkCreate(ctx context.Context, invs []investor.Investor) (int, error) {
	if len(invs) == 0 {
		return 0, nil
	}

	models := make([]InvestorModel, len(invs))
	for i, inv := range invs {
		models[i] = s.mapper.ToModel(inv)
	}

	return database.WithTransactionResult(ctx, s.db, func(tx *gorm.DB) (int, error) {
		if result := tx.Create(&models); result.Error != nil {
			return 0, fmt.Errorf("bulk create investors: %w", result.Error)
		}
		return len(models), nil
	})
}

// List returns one page of investors matching the request. Rows that fail to
// decode are skipped with a warning rather than failing the whole page.
func (s InvestorStore) List(ctx context.Context, req investor.ListRequest) (investor.Page, error) {
	req = req.Normalize()
	query := s.buildQuery(req)

	var total int64
	countDB := query.ApplyConditions(s.db.Session(ctx).Model(&InvestorModel{}))
	if result := countDB.Count(&total); result.Error != nil {
		return investor.Page{}, fmt.Errorf("count investors: %w", result.Error)
	}

	var models []InvestorModel
	listDB := query.Apply(s.db.Session(ctx).Model(&InvestorModel{}))
	if result := listDB.Find(&models); result.Error != nil {
		return investor.Page{}, fmt.Errorf("list investors: %w", result.Error)
	}

	investors := make([]investor.Investor, 0, len(models))
	for _, m := range models {
		if m.ID == "" || m.Name == "" {
			s.logger.WarnContext(ctx, "skipping malformed investor row", "id", m.ID)
			continue
		}
		investors = append(investors, s.mapper.ToDomain(m))
	}

	return investor.NewPage(investors, total, req.Page, req.PageSize), nil
}

// GetByID returns the investor with the given ID, or ErrNotFound. An invalid
// ID is reported as not found, matching lookup semantics for unknown IDs.
func (s InvestorStore) GetByID(ctx context.Context, id string) (investor.Investor, error) {
	if !investor.ValidID(id) {
		return investor.Investor{}, fmt.Errorf("%w: %s", investor.ErrNotFound, id)
	}

	var model InvestorModel
	result := s.db.Session(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return investor.Investor{}, fmt.Errorf("%w: %s", investor.ErrNotFound, id)
		}
		return investor.Investor{}, fmt.Errorf("get investor: %w", result.Error)
	}

	return s.mapper.ToDomain(model), nil
}

// Update applies a partial update, refreshing updated_at, and reports whether
// a row changed. Invalid or unknown IDs report false without error.
func (s InvestorStore) Update(ctx context.Context, id string, update investor.Update) (bool, error) {
	if !investor.ValidID(id) {
		s.logger.WarnContext(ctx, "invalid investor id on update", "id", id)
		return false, nil
	}

	fields := map[string]any{
		"updated_at": time.Now().UTC(),
	}
	if update.Name != nil {
		fields["investor_name"] = *update.Name
	}
	if update.Type != nil {
		fields["investor_type"] = *update.Type
	}
	if update.GlobalHQ != nil {
		fields["global_hq"] = *update.GlobalHQ
	}
	if update.StageOfInvestment != nil {
		fields["stage_of_investment"] = *update.StageOfInvestment
	}
	if update.Website != nil {
		fields["website"] = *update.Website
	}

	result := s.db.Session(ctx).Model(&InvestorModel{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return false, fmt.Errorf("update investor: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Delete removes an investor and reports whether a row was removed. Invalid
// or unknown IDs report false without error.
func (s InvestorStore) Delete(ctx context.Context, id string) (bool, error) {
	if !investor.ValidID(id) {
		s.logger.WarnContext(ctx, "invalid investor id on delete", "id", id)
		return false, nil
	}

	result := s.db.Session(ctx).Delete(&InvestorModel{}, "id = ?", id)
	if result.Error != nil {
		return false, fmt.Errorf("delete investor: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// buildQuery translates a normalized list request into a database query.
func (s InvestorStore) buildQuery(req investor.ListRequest) database.Query {
	q := database.NewQuery()

	f := req.Filters
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		clause := ""
		args := make([]any, 0, len(searchColumns))
		for i, col := range searchColumns {
			if i > 0 {
				clause += " OR "
			}
			clause += fmt.Sprintf("LOWER(%s) LIKE LOWER(?)", col)
			args = append(args, pattern)
		}
		q = q.Where("("+clause+")", args...)
	}
	if f.Type != "" {
		q = q.ILike("investor_type", "%"+f.Type+"%")
	}
	if f.Location != "" {
		q = q.ILike("global_hq", "%"+f.Location+"%")
	}
	if f.InvestmentStage != "" {
		q = q.ILike("stage_of_investment", "%"+f.InvestmentStage+"%")
	}

	direction := database.SortAsc
	if req.SortOrder == investor.SortOrderDesc {
		direction = database.SortDesc
	}
	q = q.Order(sortColumns[req.SortBy], direction)

	return q.Paginate(req.Page, req.PageSize)
}

// Ensure InvestorStore implements the store contract.
var _ investor.Store = InvestorStore{}
