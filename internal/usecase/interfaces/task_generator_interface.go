package interfaces

import (
	"context"

	"project_billing/internal/domain/entities"
)

// ITaskGenerator creates the initial tasks of a project when it starts.
// It runs inside the start transaction and writes through tx.
type ITaskGenerator interface {
	Generate(ctx context.Context, tx IRepositories, project entities.Project) (int, error)
}
