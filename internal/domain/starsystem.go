package domain

import "fmt"

// Coordinates is a galactic position in light years.
type Coordinates struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Landmark describes the nearest known point of interest to a system.
type Landmark struct {
	Name     string  `json:"name"`
	Distance float64 `json:"distance"`
}

// StarSystem is a reported star system attached to a rescue. The raw name a
// client typed is preserved; Name holds the current (possibly corrected)
// value.
type StarSystem struct {
	Name           string
	RawName        string
	Confirmed      bool
	Coordinates    *Coordinates
	PermitRequired bool
	PermitName     string
	Landmark       *Landmark

	// Corrections holds ranked candidate names when the reported name
	// failed the catalog check. InvalidWarned suppresses repeat warnings
	// about an unconfirmed name on the same rescue.
	Corrections   []string
	InvalidWarned bool
}

// NewStarSystem builds a system from a reported name.
func NewStarSystem(name string) *StarSystem {
	return &StarSystem{Name: name, RawName: name}
}

// SystemLookup is catalog metadata returned by the star catalog service.
type SystemLookup struct {
	Name           string       `json:"name"`
	Confirmed      bool         `json:"confirmed"`
	Coordinates    *Coordinates `json:"coordinates,omitempty"`
	PermitRequired bool         `json:"permitRequired"`
	PermitName     string       `json:"permitName,omitempty"`
	Landmark       *Landmark    `json:"landmark,omitempty"`
}

// Merge applies catalog metadata onto the system.
func (s *StarSystem) Merge(lookup SystemLookup) {
	if lookup.Name != "" {
		s.Name = lookup.Name
	}
	s.Confirmed = lookup.Confirmed
	s.Coordinates = lookup.Coordinates
	s.PermitRequired = lookup.PermitRequired
	s.PermitName = lookup.PermitName
	s.Landmark = lookup.Landmark
	if lookup.Confirmed {
		s.Corrections = nil
	}
}

// Description renders the system for chat output.
func (s *StarSystem) Description() string {
	if s == nil {
		return "unknown system"
	}
	out := s.Name
	if s.PermitRequired {
		if s.PermitName != "" {
			out += fmt.Sprintf(" (%s permit required)", s.PermitName)
		} else {
			out += " (permit required)"
		}
	}
	if s.Landmark != nil {
		out += fmt.Sprintf(" (%.1f LY from %s)", s.Landmark.Distance, s.Landmark.Name)
	} else if !s.Confirmed {
		out += " (not found in galaxy database)"
	}
	return out
}
