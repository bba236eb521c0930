package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"fryegg/api/internal/seatmap"
)

type slotResponse struct {
	Seat     int     `json:"seat"`
	Row      int     `json:"row"`
	Col      int     `json:"col"`
	State    string  `json:"state"`
	UserName string  `json:"userName,omitempty"`
	Title    string  `json:"title,omitempty"`
	Image    *string `json:"image,omitempty"`
}

// ListSeats returns the full 30-slot grid. An optional ?selected=N marks
// the caller's candidate seat so the picker can highlight it.
func (h HandlerSet) ListSeats(c *gin.Context) {
	selected := 0
	if raw := c.Query("selected"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_seat"})
			return
		}
		selected = n
	}

	slots, err := h.seatService.SeatMap(c.Request.Context(), selected)
	if err != nil {
		h.respondError(c, err)
		return
	}

	out := make([]slotResponse, 0, len(slots))
	for _, s := range slots {
		r := slotResponse{Seat: s.Seat, Row: s.Row, Col: s.Col, State: string(s.State)}
		if s.Occupant != nil {
			r.UserName = s.Occupant.UserName
			r.Title = s.Occupant.Title
			r.Image = s.Occupant.ProfileImage
		}
		out = append(out, r)
	}
	c.JSON(http.StatusOK, gin.H{"seats": out})
}

// SeatTarget resolves where a click on a seat should navigate. The seat
// grid itself is public, but an authenticated caller is routed to
// profile editing instead of sign-up for empty seats, so the bearer
// token is honored when present without being required.
func (h HandlerSet) SeatTarget(c *gin.Context) {
	seat, ok := h.seatParam(c)
	if !ok {
		return
	}

	target, err := h.seatService.Target(c.Request.Context(), seat, h.softAuthenticated(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, target)
}

func (h HandlerSet) SeatResults(c *gin.Context) {
	seat, ok := h.seatParam(c)
	if !ok {
		return
	}

	results, err := h.seatService.Results(c.Request.Context(), seat)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (h HandlerSet) seatParam(c *gin.Context) (int, bool) {
	seat, err := strconv.Atoi(c.Param("seat"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_seat"})
		return 0, false
	}
	if seat < 1 || seat > seatmap.Total {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_seat"})
		return 0, false
	}
	return seat, true
}

func (h HandlerSet) softAuthenticated(c *gin.Context) bool {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return false
	}
	token := strings.TrimPrefix(header, "Bearer ")
	_, _, err := h.authService.Authenticate(c.Request.Context(), token)
	return err == nil
}
