package ports

import (
	"context"

	"oncosense/domain/screening"
)

// Confirmer lets a user confirm which cell lines to analyze and how
// compounds split into controls and treatments. Implementations never
// return an empty selection: a cancelled or empty confirmation yields the
// defaults they were given.
type Confirmer interface {
	ConfirmCellLines(ctx context.Context, names []string) ([]string, error)
	ConfirmCompoundRoles(ctx context.Context, names []string, cellLine string) (screening.Roles, error)
}
