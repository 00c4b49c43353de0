package repository

import (
	"context"

	"dronemap/internal/model"
)

// GroupingRepository defines persistence for the organization/project
// hierarchy. Referential checks (dependents, unknown parents) are
// enforced by the grouping service, not here.
type GroupingRepository interface {
	CreateOrganization(ctx context.Context, org *model.Organization) (*model.Organization, error)
	FindOrganization(ctx context.Context, id string) (*model.Organization, error)
	ListOrganizations(ctx context.Context) ([]model.Organization, error)
	// DeleteOrganization removes an organization by id, or ErrNotFound.
	DeleteOrganization(ctx context.Context, id string) error

	CreateProject(ctx context.Context, p *model.Project) (*model.Project, error)
	FindProject(ctx context.Context, id string) (*model.Project, error)
	// ListProjects returns projects under one organization, or all of
	// them when orgID is empty.
	ListProjects(ctx context.Context, orgID string) ([]model.Project, error)
	// DeleteProject removes a project by id, or ErrNotFound.
	DeleteProject(ctx context.Context, id string) error

	// CountProjects returns how many projects reference the organization.
	CountProjects(ctx context.Context, orgID string) (int, error)
}
