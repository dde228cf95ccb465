package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase/interfaces"

	"github.com/google/uuid"
)

// TaskGenerator creates one task per project service whose catalog service carries a
// task template. Tasks are ordered by phase, then by service position.
type TaskGenerator struct {
	now   func() time.Time
	newID func() string
}

var _ interfaces.ITaskGenerator = (*TaskGenerator)(nil)

func NewTaskGenerator() *TaskGenerator {
	return &TaskGenerator{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

func (g *TaskGenerator) Generate(ctx context.Context, tx interfaces.IRepositories, project entities.Project) (int, error) {
	services, err := tx.ProjectServices().ListByProject(ctx, project.BusinessID, project.ID)
	if err != nil {
		return 0, err
	}
	if len(services) == 0 {
		return 0, nil
	}
	ids := make([]string, 0, len(services))
	for _, s := range services {
		ids = append(ids, s.ServiceID)
	}
	catalog, err := tx.Catalog().GetServices(ctx, project.BusinessID, ids)
	if err != nil {
		return 0, err
	}

	type pending struct {
		service  entities.ProjectService
		template entities.TaskTemplate
	}
	var todo []pending
	for _, s := range services {
		svc, ok := catalog[s.ServiceID]
		if !ok || svc.TaskTemplate == nil {
			continue
		}
		tpl := *svc.TaskTemplate
		if strings.TrimSpace(tpl.Title) == "" {
			tpl.Title = svc.Name
		}
		todo = append(todo, pending{service: s, template: tpl})
	}
	if len(todo) == 0 {
		return 0, nil
	}
	sort.SliceStable(todo, func(i, j int) bool {
		ri, rj := todo[i].template.Phase.Rank(), todo[j].template.Phase.Rank()
		if ri != rj {
			return ri < rj
		}
		return todo[i].service.Position < todo[j].service.Position
	})

	now := g.now()
	tasks := make([]entities.Task, 0, len(todo))
	for i, t := range todo {
		tasks = append(tasks, entities.Task{
			ID:               g.newID(),
			BusinessID:       project.BusinessID,
			ProjectID:        project.ID,
			ProjectServiceID: t.service.ID,
			Title:            t.template.Title,
			Description:      t.template.Description,
			Phase:            t.template.Phase,
			Status:           entities.TaskStatusTodo,
			Position:         i,
			CreatedAt:        now,
		})
	}
	if err := tx.Tasks().CreateBatch(ctx, tasks); err != nil {
		return 0, err
	}
	return len(tasks), nil
}
