package repository

import "context"

// UnitOfWorkManager runs a function inside a single all-or-nothing unit of
// work. Every read and write performed through the repositories with the
// context passed to fn commits together or not at all; any error returned
// by fn rolls the whole unit back.
//
// The manager is the seam for per-tenant connection routing: an
// implementation receives the tenant already resolved in the context and
// opens the unit of work against that tenant's store. The core never
// chooses a data store itself.
type UnitOfWorkManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
