package persistence

import "github.com/adavadkardhruv13/Polaris-backend/domain/investor"

// InvestorMapper converts between domain investors and database models.
type InvestorMapper struct{}

// ToModel converts a domain investor to its database model.
func (InvestorMapper) ToModel(inv investor.Investor) InvestorModel {
	return InvestorModel{
		ID:                inv.ID(),
		Name:              inv.Name(),
		InvestorType:      inv.Type(),
		GlobalHQ:          inv.GlobalHQ(),
		StageOfInvestment: inv.StageOfInvestment(),
		Website:           inv.Website(),
		CreatedAt:         inv.CreatedAt(),
		UpdatedAt:         inv.UpdatedAt(),
	}
}

// ToDomain converts a database model to a domain investor.
func (InvestorMapper) ToDomain(m InvestorModel) investor.Investor {
	return investor.Hydrate(
		m.ID,
		m.Name,
		m.InvestorType,
		m.GlobalHQ,
		m.StageOfInvestment,
		m.Website,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
