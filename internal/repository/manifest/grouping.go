package manifest

import (
	"context"
	"sort"

	"dronemap/internal/model"
	"dronemap/internal/repository"
)

// Grouping half of the manifest store. Same document, same mutex.

func (s *Store) CreateOrganization(ctx context.Context, org *model.Organization) (*model.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orgs[org.ID] = *org
	if err := s.flushLocked(); err != nil {
		delete(s.orgs, org.ID)
		return nil, err
	}
	stored := s.orgs[org.ID]
	return &stored, nil
}

func (s *Store) FindOrganization(ctx context.Context, id string) (*model.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	org, ok := s.orgs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &org, nil
}

func (s *Store) ListOrganizations(ctx context.Context) ([]model.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Organization, 0, len(s.orgs))
	for _, org := range s.orgs {
		out = append(out, org)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) DeleteOrganization(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	org, ok := s.orgs[id]
	if !ok {
		return repository.ErrNotFound
	}
	delete(s.orgs, id)
	if err := s.flushLocked(); err != nil {
		s.orgs[id] = org
		return err
	}
	return nil
}

func (s *Store) CreateProject(ctx context.Context, p *model.Project) (*model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.projects[p.ID] = *p
	if err := s.flushLocked(); err != nil {
		delete(s.projects, p.ID)
		return nil, err
	}
	stored := s.projects[p.ID]
	return &stored, nil
}

func (s *Store) FindProject(ctx context.Context, id string) (*model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (s *Store) ListProjects(ctx context.Context, orgID string) ([]model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Project, 0, len(s.projects))
	for _, p := range s.projects {
		if orgID != "" && p.OrganizationID != orgID {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return repository.ErrNotFound
	}
	delete(s.projects, id)
	if err := s.flushLocked(); err != nil {
		s.projects[id] = p
		return err
	}
	return nil
}

func (s *Store) CountProjects(ctx context.Context, orgID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, p := range s.projects {
		if p.OrganizationID == orgID {
			n++
		}
	}
	return n, nil
}
