package seatmap

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fryegg/api/internal/models"
)

func occupant(id string, seat int) models.Occupant {
	return models.Occupant{ID: id, Seat: seat, UserName: "user-" + id}
}

func TestAssignMarksOnlyThatSeatOccupied(t *testing.T) {
	for seat := 1; seat <= Total; seat++ {
		if seat == ReservedSeat {
			continue
		}

		g := New()
		require.NoError(t, g.Assign(occupant("u1", seat)), "seat %d should accept an occupant", seat)

		for _, slot := range g.Render(0) {
			switch slot.Seat {
			case seat:
				assert.Equal(t, StateOccupied, slot.State, "assigned seat %d should render occupied", seat)
			case ReservedSeat:
				assert.Equal(t, StateReserved, slot.State)
			default:
				assert.Equalf(t, StateEmpty, slot.State, "seat %d should be unaffected by assigning seat %d", slot.Seat, seat)
			}
		}
	}
}

func TestReservedSeatRejectsAssignment(t *testing.T) {
	g := New()
	err := g.Assign(occupant("u1", ReservedSeat))
	assert.ErrorIs(t, err, ErrSeatReserved)

	slots := g.Render(ReservedSeat)
	assert.Equal(t, StateReserved, slots[ReservedSeat-1].State, "reserved seat must render its error state even when selected")
}

func TestAssignOutOfRangeAndCollision(t *testing.T) {
	g := New()
	assert.ErrorIs(t, g.Assign(occupant("u1", 0)), ErrSeatOutOfRange)
	assert.ErrorIs(t, g.Assign(occupant("u1", Total+1)), ErrSeatOutOfRange)

	require.NoError(t, g.Assign(occupant("u1", 7)))
	assert.ErrorIs(t, g.Assign(occupant("u2", 7)), ErrSeatOccupied)

	// re-assigning the same occupant to their own seat is fine
	assert.NoError(t, g.Assign(occupant("u1", 7)))
}

func TestRenderWithOccupantsAtFirstThreeSeats(t *testing.T) {
	g, err := FromOccupants([]models.Occupant{
		occupant("a", 1), occupant("b", 2), occupant("c", 3),
	})
	require.NoError(t, err)

	slots := g.Render(0)
	require.Len(t, slots, Total)

	for _, slot := range slots {
		switch {
		case slot.Seat <= 3:
			assert.Equalf(t, StateOccupied, slot.State, "seat %d", slot.Seat)
			require.NotNil(t, slot.Occupant)
		case slot.Seat == ReservedSeat:
			assert.Equal(t, StateReserved, slot.State)
		default:
			assert.Equalf(t, StateEmpty, slot.State, "seat %d", slot.Seat)
			assert.Nil(t, slot.Occupant)
		}
	}
}

func TestSelectionOnlyOnEmptySeats(t *testing.T) {
	g, err := FromOccupants([]models.Occupant{occupant("a", 1)})
	require.NoError(t, err)

	assert.False(t, g.CanSelect(1), "occupied seat is not selectable")
	assert.False(t, g.CanSelect(ReservedSeat), "reserved seat is not selectable")
	assert.True(t, g.CanSelect(5))

	slots := g.Render(5)
	assert.Equal(t, StateSelected, slots[4].State)

	// selecting an occupied seat is a no-op
	slots = g.Render(1)
	assert.Equal(t, StateOccupied, slots[0].State)
}

func TestFromOccupantsRejectsDuplicateSeat(t *testing.T) {
	_, err := FromOccupants([]models.Occupant{occupant("a", 2), occupant("b", 2)})
	assert.ErrorIs(t, err, ErrSeatOccupied)
}

func TestResolveTarget(t *testing.T) {
	url := "https://blog.example.com"
	linked := occupant("a", 1)
	linked.URL = &url

	g, err := FromOccupants([]models.Occupant{linked, occupant("b", 2)})
	require.NoError(t, err)

	target, err := g.ResolveTarget(1, false)
	require.NoError(t, err)
	assert.Equal(t, url, target.URL, "occupied seat with a link navigates to the link")

	target, err = g.ResolveTarget(2, false)
	require.NoError(t, err)
	assert.Equal(t, "/result/2", target.Route, "occupied seat without a link navigates to its results")

	target, err = g.ResolveTarget(10, false)
	require.NoError(t, err)
	assert.Equal(t, "/sign-up?seat=10", target.Route, "empty seat pre-fills registration")

	target, err = g.ResolveTarget(10, true)
	require.NoError(t, err)
	assert.Equal(t, "/profile/edit?seat=10", target.Route)

	_, err = g.ResolveTarget(ReservedSeat, false)
	assert.ErrorIs(t, err, ErrSeatReserved, "reserved seat rejects all interaction")

	assert.Equal(t, RouteResult, FallbackTarget().Route)
}

func TestRandomTitleDrawsFromPool(t *testing.T) {
	title := RandomTitle()
	assert.Contains(t, SeatTitles, title)
}

func TestSeatTitlesFitTheCard(t *testing.T) {
	for _, title := range SeatTitles {
		assert.LessOrEqualf(t, utf8.RuneCountInString(title), MaxTitleRunes, "title %q", title)
	}
}
