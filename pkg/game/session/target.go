package session

import (
	"mapscope/pkg/minimap/exploration"
	"mapscope/pkg/minimap/marker"
)

// MapID returns the active map id, 0 before the first map
func (s *Session) MapID() int {
	if s.current == nil {
		return 0
	}
	return s.current.ID
}

// Resolve finds the live entity a marker subject refers to on the active map
func (s *Session) Resolve(sub marker.Subject) marker.Trackable {
	switch sub.Kind {
	case marker.SubjectPlayer:
		return s.player
	case marker.SubjectVehicle:
		if v := s.Vehicle(sub.Vehicle); v != nil && v.MapID() == s.MapID() {
			return v
		}
	case marker.SubjectEvent:
		if s.current == nil || sub.MapID != s.current.ID {
			return nil
		}
		for _, e := range s.current.Events {
			if e.ID() == sub.EventID {
				return e
			}
		}
	}
	return nil
}

// IsExplored reports whether a tile of the active map is explored. Without
// exploration every tile counts as explored.
func (s *Session) IsExplored(x, y int) bool {
	if s.explorer == nil {
		return true
	}
	return s.explorer.IsExplored(x, y)
}

// ShowMinimapAt selects a display profile, 0 hides the minimap
func (s *Session) ShowMinimapAt(index int) {
	s.view.ShowProfile(index)
}

// SetZoom changes the zoom at once or over the smooth zoom duration
func (s *Session) SetZoom(zoom float64, smooth bool) {
	if smooth {
		s.view.SmoothZoomTo(zoom)
	} else {
		s.view.ZoomTo(zoom)
	}
}

// AddMarker places a fixed marker on the active map
func (s *Session) AddMarker(x, y float64, spec string, tag int) bool {
	return s.markers.Add(s.MapID(), x, y, spec, tag) != nil
}

// RemoveMarkersByTag removes the placed markers carrying a tag
func (s *Session) RemoveMarkersByTag(tag int) int {
	return s.markers.RemoveByTag(tag)
}

// RemoveMarkerAt removes the placed markers at a coordinate of the active map
func (s *Session) RemoveMarkerAt(x, y float64) int {
	return s.markers.RemoveAt(s.MapID(), x, y)
}

// SetExplorationRadius changes the reveal radius and explores around the player at once
func (s *Session) SetExplorationRadius(radius int) {
	s.radius = radius
	if s.explorer != nil {
		s.explorer.SetRadius(radius)
		s.explorer.Reveal(s.player.X(), s.player.Y())
	}
}

// ExploreAt reveals a circle of the active map
func (s *Session) ExploreAt(x, y, radius int) {
	if s.explorer != nil {
		s.explorer.FillRadius(x, y, radius)
	}
}

// FillExploration marks a whole map explored; 0 means the active map
func (s *Session) FillExploration(mapID int) {
	s.fillTable(mapID, exploration.MaxLevel)
}

// ClearExploration forgets a map's exploration; 0 means the active map
func (s *Session) ClearExploration(mapID int) {
	s.fillTable(mapID, 0)
}

// fillTable only touches maps that already have a table. The active map is
// re-explored around the player and fully repainted.
func (s *Session) fillTable(mapID, level int) {
	if mapID == 0 {
		mapID = s.MapID()
	}
	t, ok := s.archive.Table(mapID)
	if !ok {
		s.log.Debug().Int("map", mapID).Msg("No exploration table to fill")
		return
	}
	t.Fill(level)
	if mapID != s.MapID() || s.explorer == nil {
		return
	}
	s.explorer.ClearDirty()
	s.explorer.Reveal(s.player.X(), s.player.Y())
	if s.image != nil {
		s.image.Refresh()
	}
	if s.browseImage != nil {
		s.browseImage.Refresh()
	}
}

// OpenBrowseMode enters the full screen map. It does nothing on maps without a minimap.
func (s *Session) OpenBrowseMode() {
	if !s.ready || s.browse.IsActive() {
		return
	}
	if s.browseImage != nil {
		s.view.SetRaster(s.browseImage)
	}
	s.renderer.SetMarkerSize(s.browse.Options().MarkerSize)
	s.browse.Open(s.view, s.current.Grid, s, s.Markers)
}

// CloseBrowseMode leaves the full screen map
func (s *Session) CloseBrowseMode() {
	if !s.browse.IsActive() {
		return
	}
	s.browse.Close()
	s.leaveBrowse()
}

// leaveBrowse restores the minimap after browse mode has closed
func (s *Session) leaveBrowse() {
	s.renderer.SetMarkerSize(s.cfg.Minimap.MarkerSize)
	if s.image != nil {
		s.view.SetRaster(s.image)
	}
}
