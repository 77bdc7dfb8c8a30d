// Package investor holds the investor catalog domain: the investor record,
// list filtering and pagination, and the storage contract.
package investor

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound indicates the requested investor does not exist. A syntactically
// invalid ID is reported the same way, never as a separate error.
var ErrNotFound = errors.New("investor not found")

// ErrInvalidRecord indicates a record failed validation before storage.
var ErrInvalidRecord = errors.New("invalid investor record")

// Investor is an investor catalog record.
type Investor struct {
	id                string
	name              string
	investorType      string
	globalHQ          string
	stageOfInvestment string
	website           string
	createdAt         time.Time
	updatedAt         time.Time
}

// New creates a new Investor with a fresh ID and creation timestamps.
// The name is required.
func New(name string, opts ...Option) (Investor, error) {
	if strings.TrimSpace(name) == "" {
		return Investor{}, fmt.Errorf("%w: name is required", ErrInvalidRecord)
	}

	now := time.Now().UTC()
	inv := Investor{
		id:        uuid.NewString(),
		name:      name,
		createdAt: now,
		updatedAt: now,
	}
	for _, opt := range opts {
		opt(&inv)
	}
	return inv, nil
}

// Hydrate reconstructs an Investor from stored values.
func Hydrate(id, name, investorType, globalHQ, stageOfInvestment, website string, createdAt, updatedAt time.Time) Investor {
	return Investor{
		id:                id,
		name:              name,
		investorType:      investorType,
		globalHQ:          globalHQ,
		stageOfInvestment: stageOfInvestment,
		website:           website,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// Option is a functional option for constructing an Investor.
type Option func(*Investor)

// WithType sets the investor type.
func WithType(t string) Option {
	return func(i *Investor) { i.investorType = t }
}

// WithGlobalHQ sets the headquarters location.
func WithGlobalHQ(hq string) Option {
	return func(i *Investor) { i.globalHQ = hq }
}

// WithStageOfInvestment sets the investment stage.
func WithStageOfInvestment(stage string) Option {
	return func(i *Investor) { i.stageOfInvestment = stage }
}

// WithWebsite sets the website URL.
func WithWebsite(url string) Option {
	return func(i *Investor) { i.website = url }
}

// ID returns the investor's unique identifier.
func (i Investor) ID() string { return i.id }

// Name returns the investor's name.
func (i Investor) Name() string { return i.name }

// Type returns the investor type (e.g. VC, angel).
func (i Investor) Type() string { return i.investorType }

// GlobalHQ returns the headquarters location.
func (i Investor) GlobalHQ() string { return i.globalHQ }

// StageOfInvestment returns the investment stage.
func (i Investor) StageOfInvestment() string { return i.stageOfInvestment }

// Website returns the website URL.
func (i Investor) Website() string { return i.website }

// CreatedAt returns the creation timestamp.
func (i Investor) CreatedAt() time.Time { return i.createdAt }

// UpdatedAt returns the last modification timestamp.
func (i Investor) UpdatedAt() time.Time { return i.updatedAt }

// ValidID reports whether id is a syntactically valid investor ID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Update carries a partial update. Nil fields are left unchanged.
type Update struct {
	Name              *string
	Type              *string
	GlobalHQ          *string
	StageOfInvestment *string
	Website           *string
}

// IsEmpty reports whether the update changes nothing.
func (u Update) IsEmpty() bool {
	return u.Name == nil && u.Type == nil && u.GlobalHQ == nil &&
		u.StageOfInvestment == nil && u.Website == nil
}
