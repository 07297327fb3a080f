package entities

import (
	"strings"

	"github.com/rs/zerolog"

	"mapscope/pkg/minimap/marker"
)

// commentCommands introduce a marker string in a page's leading comments
var commentCommands = []string{"MinimapMarker", "マーカー"}

// Page is one state of an event
type Page struct {
	// Comments are the comment lines at the top of the page's command list
	Comments    []string
	Transparent bool
}

// Event is a designer-placed character on one map
type Event struct {
	Character
	mapID int
	id    int
	name  string
	note  string
	pages []Page
	page  int
	log   zerolog.Logger
}

// NewEvent creates an event on its first page. note is the event's own marker
// string, used when the active page names none.
func NewEvent(mapID, id int, name, note string, pages []Page, log zerolog.Logger) *Event {
	e := &Event{
		Character: newCharacter(),
		mapID:     mapID,
		id:        id,
		name:      name,
		note:      note,
		pages:     pages,
		page:      -1,
		log:       log,
	}
	e.SetPage(0)
	return e
}

// ID returns the event id
func (e *Event) ID() int {
	return e.id
}

// MapID returns the map the event belongs to
func (e *Event) MapID() int {
	return e.mapID
}

// Page returns the active page index, -1 when no page is active
func (e *Event) Page() int {
	return e.page
}

// SetPage switches the active page and rebuilds the marker. An index outside
// the page list deactivates the event and drops its marker.
func (e *Event) SetPage(i int) {
	if i < 0 || i >= len(e.pages) {
		i = -1
	}
	e.page = i
	e.transparent = i >= 0 && e.pages[i].Transparent
	mapID, id := e.mapID, e.id
	e.setupMarker(e.markerSpec(), e.log, func(m *marker.Marker) { m.SetEvent(mapID, id) })
}

func (e *Event) markerSpec() string {
	if e.page < 0 {
		return ""
	}
	if s := commentMarker(e.pages[e.page].Comments); s != "" {
		return s
	}
	return e.note
}

func commentMarker(comments []string) string {
	for _, c := range comments {
		for _, name := range commentCommands {
			if strings.HasPrefix(c, name) {
				fields := strings.Fields(c)
				if len(fields) > 1 {
					return fields[1]
				}
				return ""
			}
		}
	}
	return ""
}

// MinimapName returns the event name unless it is an editor placeholder
func (e *Event) MinimapName() string {
	return marker.DisplayName(e.name)
}

// MinimapVisible hides the event while transparent
func (e *Event) MinimapVisible() bool {
	return !e.transparent
}
