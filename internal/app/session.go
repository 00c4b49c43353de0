package app

import (
	"context"
	"errors"

	"dronemap/internal/logger"
	"dronemap/internal/model"
	"dronemap/internal/repository"
	"dronemap/internal/service"
	"dronemap/internal/spatial"
	"dronemap/internal/story"
)

// Marker is what the external map widget consumes, one per record.
type Marker struct {
	ID       string  `json:"id"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	IconKind string  `json:"iconKind"`
	Tooltip  string  `json:"tooltip"`
}

// Marker icon names handed to the map widget.
const (
	IconCamera = "camera"
	IconPlay   = "play"
)

// Center positions the map widget.
type Center struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Zoom int     `json:"zoom"`
}

// Fallback view when no media exists yet.
const (
	defaultCenterLat = 37.7749
	defaultCenterLon = -122.4194
	zoomEmpty        = 4
	zoomPopulated    = 10
)

// Session is the explicit application-state object the widgets drive:
// it holds the services, the click resolver and the story navigator,
// replacing the ambient globals of the original application. One
// session serves one viewer at a time.
type Session struct {
	media    service.MediaService
	grouping service.GroupingService
	resolver *spatial.Resolver
	nav      story.Navigator
	log      *logger.Logger
}

// NewSession wires a session over the given services. wrap selects the
// navigator's wrap-around mode.
func NewSession(media service.MediaService, grouping service.GroupingService, resolver *spatial.Resolver, wrap bool, log *logger.Logger) *Session {
	s := &Session{
		media:    media,
		grouping: grouping,
		resolver: resolver,
		log:      log,
	}
	s.nav.Wrap = wrap
	return s
}

// Navigator exposes the story cursor for the viewer widget.
func (s *Session) Navigator() *story.Navigator {
	return &s.nav
}

// Markers returns one map marker per record, in store order.
func (s *Session) Markers(ctx context.Context) ([]Marker, error) {
	records, err := s.media.List(ctx, repository.ListQuery{})
	if err != nil {
		return nil, err
	}
	markers := make([]Marker, 0, len(records))
	for _, rec := range records {
		icon := IconCamera
		if rec.Kind == model.KindVideo {
			icon = IconPlay
		}
		markers = append(markers, Marker{
			ID:       rec.ID,
			Lat:      rec.Latitude,
			Lon:      rec.Longitude,
			IconKind: icon,
			Tooltip:  rec.Name,
		})
	}
	return markers, nil
}

// MapCenter returns the mean of all record coordinates, or the default
// view when the collection is empty.
func (s *Session) MapCenter(ctx context.Context) (Center, error) {
	records, err := s.media.List(ctx, repository.ListQuery{})
	if err != nil {
		return Center{}, err
	}
	if len(records) == 0 {
		return Center{Lat: defaultCenterLat, Lon: defaultCenterLon, Zoom: zoomEmpty}, nil
	}
	var sumLat, sumLon float64
	for i := range records {
		sumLat += records[i].Latitude
		sumLon += records[i].Longitude
	}
	n := float64(len(records))
	return Center{Lat: sumLat / n, Lon: sumLon / n, Zoom: zoomPopulated}, nil
}

// HandleMapClick resolves a click coordinate against the collection and
// opens the viewer on a hit. A miss returns false and changes nothing —
// clicking empty map is a normal outcome.
func (s *Session) HandleMapClick(ctx context.Context, lat, lon float64) (bool, error) {
	records, err := s.media.List(ctx, repository.ListQuery{})
	if err != nil {
		return false, err
	}
	idx, ok := s.resolver.Resolve(lat, lon, records)
	if !ok {
		return false, nil
	}
	if err := s.nav.Open(records, idx); err != nil {
		return false, err
	}
	s.log.Debug("story opened from map click", "index", idx, "id", records[idx].ID)
	return true, nil
}

// OpenStories opens the viewer over a filtered/sorted active set,
// starting at the first item. Returns story.ErrEmptySet when the filter
// matches nothing.
func (s *Session) OpenStories(ctx context.Context, q repository.ListQuery) error {
	records, err := s.media.List(ctx, q)
	if err != nil {
		return err
	}
	return s.nav.Open(records, 0)
}

// CloseStories ends the viewing session.
func (s *Session) CloseStories() {
	s.nav.Close()
}

// Organizations lists the grouping hierarchy for the sidebar pickers.
func (s *Session) Organizations(ctx context.Context) ([]model.Organization, error) {
	return s.grouping.ListOrganizations(ctx)
}

// Projects lists the projects under an organization (all of them when
// organizationID is empty).
func (s *Session) Projects(ctx context.Context, organizationID string) ([]model.Project, error) {
	return s.grouping.ListProjects(ctx, organizationID)
}

// Stats returns the side-panel counters.
func (s *Session) Stats(ctx context.Context) (service.Stats, error) {
	return s.media.Stats(ctx)
}

// ClearAll deletes every record and its payload and closes any open
// viewer session.
func (s *Session) ClearAll(ctx context.Context) error {
	records, err := s.media.List(ctx, repository.ListQuery{})
	if err != nil {
		return err
	}
	for i := range records {
		if err := s.media.Delete(ctx, records[i].ID); err != nil && !errors.Is(err, service.ErrNotFound) {
			return err
		}
	}
	s.nav.Close()
	s.log.Info("collection cleared", "removed", len(records))
	return nil
}
