package model

import "time"

// Well-known ids for the auto-created grouping entities. Ungrouped
// uploads always land in the default project so marker and gallery
// queries never dangle.
const (
	DefaultOrganizationID = "org-default"
	DefaultProjectID      = "project-default"
)

// Organization is a named container for projects.
type Organization struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Project groups media records under an organization. Media records
// reference a project by id; the project never owns record structs
// directly.
type Project struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	OrganizationID string    `json:"organization_id"`
	CreatedAt      time.Time `json:"created_at"`
}
