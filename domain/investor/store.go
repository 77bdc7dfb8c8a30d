package investor

import "context"

// Store is the persistence contract for the investor catalog.
type Store interface {
	// Create inserts a new investor and returns its ID.
	Create(ctx context.Context, inv Investor) (string, error)

	// BulkCreate inserts many investors in a single batch and returns the
	// number inserted.
	BulkCreate(ctx context.Context, invs []Investor) (int, error)

	// List returns one page of investors matching the request.
	List(ctx context.Context, req ListRequest) (Page, error)

	// GetByID returns the investor with the given ID, or ErrNotFound.
	GetByID(ctx context.Context, id string) (Investor, error)

	// Update applies a partial update and reports whether a row changed.
	// Unknown or invalid IDs report false without error.
	Update(ctx context.Context, id string, update Update) (bool, error)

	// Delete removes an investor and reports whether a row was removed.
	// Unknown or invalid IDs report false without error.
	Delete(ctx context.Context, id string) (bool, error)
}
