package entities

import "project_billing/internal/domain/money"

// TaskPhase groups generated tasks; phases run in the fixed order of TaskPhaseOrder.
type TaskPhase string

const (
	PhaseCadrage  TaskPhase = "CADRAGE"
	PhaseUX       TaskPhase = "UX"
	PhaseDesign   TaskPhase = "DESIGN"
	PhaseDev      TaskPhase = "DEV"
	PhaseSEO      TaskPhase = "SEO"
	PhaseLaunch   TaskPhase = "LAUNCH"
	PhaseFollowUp TaskPhase = "FOLLOW_UP"
)

// TaskPhaseOrder is the fixed phase ordering used when generating tasks.
var TaskPhaseOrder = []TaskPhase{PhaseCadrage, PhaseUX, PhaseDesign, PhaseDev, PhaseSEO, PhaseLaunch, PhaseFollowUp}

// Rank returns the index of p in TaskPhaseOrder; unknown phases sort last.
func (p TaskPhase) Rank() int {
	for i, phase := range TaskPhaseOrder {
		if phase == p {
			return i
		}
	}
	return len(TaskPhaseOrder)
}

// TaskTemplate describes the task created for a service when a project starts.
type TaskTemplate struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Phase       TaskPhase `json:"phase"`
}

// CatalogService is a business's sellable service. The catalog is owned by an external
// collaborator; the engine only reads default prices and task templates from it.
type CatalogService struct {
	ID                string        `json:"id"`
	BusinessID        string        `json:"business_id"`
	Name              string        `json:"name"`
	DefaultPriceCents *money.Cents  `json:"default_price_cents,omitempty"`
	TaskTemplate      *TaskTemplate `json:"task_template,omitempty"`
}
