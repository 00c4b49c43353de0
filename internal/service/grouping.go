package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"dronemap/internal/logger"
	"dronemap/internal/model"
	"dronemap/internal/repository"
)

// GroupingService manages the organization/project hierarchy that
// partitions media records.
type GroupingService interface {
	// EnsureDefaults seeds the default organization and project so
	// ungrouped uploads always resolve. Called once at startup;
	// idempotent.
	EnsureDefaults(ctx context.Context) error

	CreateOrganization(ctx context.Context, name, description string) (*model.Organization, error)
	// CreateProject fails with ErrUnknownOrganization when the parent
	// does not exist. An empty organizationID means the default one.
	CreateProject(ctx context.Context, name, description, organizationID string) (*model.Project, error)

	ListOrganizations(ctx context.Context) ([]model.Organization, error)
	ListProjects(ctx context.Context, organizationID string) ([]model.Project, error)

	// DeleteOrganization fails with ErrHasDependents while projects
	// still reference the organization.
	DeleteOrganization(ctx context.Context, id string) error
	// DeleteProject fails with ErrHasDependents while media records
	// still reference the project.
	DeleteProject(ctx context.Context, id string) error
}

type groupingService struct {
	repo  repository.GroupingRepository
	media repository.MediaRepository
	log   *logger.Logger
}

// NewGroupingService constructs a GroupingService. The media repository
// is consulted for project dependency checks.
func NewGroupingService(repo repository.GroupingRepository, media repository.MediaRepository, log *logger.Logger) GroupingService {
	return &groupingService{repo: repo, media: media, log: log}
}

func (s *groupingService) EnsureDefaults(ctx context.Context) error {
	if _, err := s.repo.FindOrganization(ctx, model.DefaultOrganizationID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		org := &model.Organization{
			ID:          model.DefaultOrganizationID,
			Name:        "Default",
			Description: "Auto-created organization for ungrouped media",
			CreatedAt:   time.Now().UTC(),
		}
		if _, err := s.repo.CreateOrganization(ctx, org); err != nil {
			return fmt.Errorf("seed default organization: %w", err)
		}
		s.log.Info("default organization created", "id", org.ID)
	}

	if _, err := s.repo.FindProject(ctx, model.DefaultProjectID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		p := &model.Project{
			ID:             model.DefaultProjectID,
			Name:           "Default",
			Description:    "Auto-created project for ungrouped media",
			OrganizationID: model.DefaultOrganizationID,
			CreatedAt:      time.Now().UTC(),
		}
		if _, err := s.repo.CreateProject(ctx, p); err != nil {
			return fmt.Errorf("seed default project: %w", err)
		}
		s.log.Info("default project created", "id", p.ID)
	}
	return nil
}

func (s *groupingService) CreateOrganization(ctx context.Context, name, description string) (*model.Organization, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	org := &model.Organization{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.repo.CreateOrganization(ctx, org)
	if err != nil {
		return nil, err
	}
	s.log.Info("organization created", "id", stored.ID, "name", stored.Name)
	return stored, nil
}

func (s *groupingService) CreateProject(ctx context.Context, name, description, organizationID string) (*model.Project, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if organizationID == "" {
		organizationID = model.DefaultOrganizationID
	}
	if _, err := s.repo.FindOrganization(ctx, organizationID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownOrganization, organizationID)
		}
		return nil, err
	}

	p := &model.Project{
		ID:             uuid.New().String(),
		Name:           name,
		Description:    description,
		OrganizationID: organizationID,
		CreatedAt:      time.Now().UTC(),
	}
	stored, err := s.repo.CreateProject(ctx, p)
	if err != nil {
		return nil, err
	}
	s.log.Info("project created", "id", stored.ID, "name", stored.Name, "organization", organizationID)
	return stored, nil
}

func (s *groupingService) ListOrganizations(ctx context.Context) ([]model.Organization, error) {
	return s.repo.ListOrganizations(ctx)
}

func (s *groupingService) ListProjects(ctx context.Context, organizationID string) ([]model.Project, error) {
	return s.repo.ListProjects(ctx, organizationID)
}

func (s *groupingService) DeleteOrganization(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if id == model.DefaultOrganizationID {
		return ErrDefaultImmutable
	}
	if _, err := s.repo.FindOrganization(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	n, err := s.repo.CountProjects(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: %d projects", ErrHasDependents, n)
	}
	if err := s.repo.DeleteOrganization(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.log.Info("organization deleted", "id", id)
	return nil
}

func (s *groupingService) DeleteProject(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if id == model.DefaultProjectID {
		return ErrDefaultImmutable
	}
	if _, err := s.repo.FindProject(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	n, err := s.media.CountByProject(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: %d media records", ErrHasDependents, n)
	}
	if err := s.repo.DeleteProject(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.log.Info("project deleted", "id", id)
	return nil
}
