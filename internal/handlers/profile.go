package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fryegg/api/internal/models"
	"fryegg/api/internal/service"
)

// Avatar uploads beyond this are rejected before touching storage.
const maxAvatarBytes = 5 << 20

func (h HandlerSet) Profile(c *gin.Context) {
	user := c.MustGet("current_user").(models.User)

	occupant, err := h.profileService.Profile(c.Request.Context(), user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, occupant)
}

// UpdateProfile edits the caller's occupant row. The body is multipart
// so the avatar travels with the field changes in one request.
func (h HandlerSet) UpdateProfile(c *gin.Context) {
	user := c.MustGet("current_user").(models.User)

	userName := c.PostForm("userName")
	if userName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	seat, err := strconv.Atoi(c.PostForm("seat"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_seat"})
		return
	}

	input := service.UpdateProfileInput{
		UserID:   user.ID,
		UserName: userName,
		Title:    c.PostForm("title"),
		Seat:     seat,
		URL:      c.PostForm("url"),
	}

	if file, err := c.FormFile("profileImage"); err == nil {
		if file.Size > maxAvatarBytes {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image_too_large"})
			return
		}
		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
			return
		}
		data, err := io.ReadAll(io.LimitReader(src, maxAvatarBytes+1))
		src.Close()
		if err != nil || int64(len(data)) > maxAvatarBytes {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image_too_large"})
			return
		}
		input.Image = data
	}

	occupant, err := h.profileService.UpdateProfile(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.seatService.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, occupant)
}

type signedURLRequest struct {
	Key string `json:"key" binding:"required"`
}

// SignedPictureURL hands out a short-lived download link for an object
// in the private picture bucket.
func (h HandlerSet) SignedPictureURL(c *gin.Context) {
	var req signedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	url, err := h.store.SignedPictureURL(c.Request.Context(), req.Key)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
