package seatmap

import (
	"errors"
	"fmt"

	"fryegg/api/internal/models"
)

// The hall is a fixed 5x6 grid. Seat 4 is the burnt egg: it is rendered
// as "Error" and can never be assigned or selected.
const (
	Rows         = 5
	Cols         = 6
	Total        = Rows * Cols
	ReservedSeat = 4
)

type State string

const (
	StateEmpty    State = "empty"
	StateOccupied State = "occupied"
	StateSelected State = "selected"
	StateReserved State = "reserved"
)

var (
	ErrSeatOutOfRange = errors.New("seat out of range")
	ErrSeatReserved   = errors.New("seat reserved")
	ErrSeatOccupied   = errors.New("seat already occupied")
)

// Validate reports whether seat is an assignable slot number.
func Validate(seat int) error {
	if seat < 1 || seat > Total {
		return fmt.Errorf("%w: %d", ErrSeatOutOfRange, seat)
	}
	if seat == ReservedSeat {
		return ErrSeatReserved
	}
	return nil
}

// Slot is the render state of one seat.
type Slot struct {
	Seat     int
	Row      int
	Col      int
	State    State
	Occupant *models.Occupant
}

// Grid tracks which occupant holds which seat.
type Grid struct {
	seats map[int]models.Occupant
}

func New() *Grid {
	return &Grid{seats: make(map[int]models.Occupant, Total)}
}

// FromOccupants builds a grid from stored occupant rows. Rows with an
// invalid or duplicate seat are rejected.
func FromOccupants(occupants []models.Occupant) (*Grid, error) {
	g := New()
	for _, o := range occupants {
		if err := g.Assign(o); err != nil {
			return nil, fmt.Errorf("seat %d: %w", o.Seat, err)
		}
	}
	return g, nil
}

// Assign places an occupant on their seat. The reserved seat and seats
// already held by someone else are rejected.
func (g *Grid) Assign(o models.Occupant) error {
	if err := Validate(o.Seat); err != nil {
		return err
	}
	if held, ok := g.seats[o.Seat]; ok && held.ID != o.ID {
		return ErrSeatOccupied
	}
	g.seats[o.Seat] = o
	return nil
}

// Occupant returns the holder of a seat, if any.
func (g *Grid) Occupant(seat int) (models.Occupant, bool) {
	o, ok := g.seats[seat]
	return o, ok
}

// CanSelect reports whether a seat may become the current selection.
// Only empty, non-reserved seats are selectable.
func (g *Grid) CanSelect(seat int) bool {
	if Validate(seat) != nil {
		return false
	}
	_, occupied := g.seats[seat]
	return !occupied
}

// Render produces the state of all 30 slots in seat order. A selected
// value that is not selectable is ignored, matching the click-is-a-noop
// behavior on occupied and reserved slots.
func (g *Grid) Render(selected int) []Slot {
	slots := make([]Slot, 0, Total)
	for seat := 1; seat <= Total; seat++ {
		slot := Slot{
			Seat: seat,
			Row:  (seat - 1) / Cols,
			Col:  (seat - 1) % Cols,
		}
		switch {
		case seat == ReservedSeat:
			slot.State = StateReserved
		case g.hasOccupant(seat):
			o := g.seats[seat]
			slot.State = StateOccupied
			slot.Occupant = &o
		case seat == selected:
			slot.State = StateSelected
		default:
			slot.State = StateEmpty
		}
		slots = append(slots, slot)
	}
	return slots
}

func (g *Grid) hasOccupant(seat int) bool {
	_, ok := g.seats[seat]
	return ok
}

// Navigation routes for viewing-mode seat clicks.
const (
	RouteSignUp      = "/sign-up"
	RouteProfileEdit = "/profile/edit"
	RouteResult      = "/result"
)

// Target is where a viewing-mode click on a seat should navigate.
type Target struct {
	Route string `json:"route"`
	URL   string `json:"url,omitempty"`
}

// ResolveTarget decides the navigation for a seat click: an empty seat
// leads to registration (or profile edit for a signed-in user) with the
// seat pre-filled, an occupied seat leads to the occupant's declared
// link when present, otherwise to the results view keyed by seat.
func (g *Grid) ResolveTarget(seat int, authenticated bool) (Target, error) {
	if err := Validate(seat); err != nil {
		return Target{}, err
	}

	o, occupied := g.seats[seat]
	if !occupied {
		route := RouteSignUp
		if authenticated {
			route = RouteProfileEdit
		}
		return Target{Route: fmt.Sprintf("%s?seat=%d", route, seat)}, nil
	}

	if o.URL != nil && *o.URL != "" {
		return Target{Route: RouteResult, URL: *o.URL}, nil
	}
	return Target{Route: fmt.Sprintf("%s/%d", RouteResult, seat)}, nil
}

// FallbackTarget is used when the occupant lookup itself failed; the UI
// degrades to the default results route instead of erroring.
func FallbackTarget() Target {
	return Target{Route: RouteResult}
}
