package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/Domenick1991/guesthouse/internal/auth"
	"github.com/Domenick1991/guesthouse/internal/domain"
	"github.com/Domenick1991/guesthouse/internal/service/booking"
	"github.com/Domenick1991/guesthouse/internal/service/hosts"
	"github.com/gin-gonic/gin"
)

type HostHandler struct {
	hosts    hosts.HostUseCase
	bookings booking.BookingUseCase
}

type registerHostRequest struct {
	Name         string `json:"name"`
	BusinessName string `json:"business_name"`
	Passcode     string `json:"passcode"`
}

type profileRequest struct {
	Name         string `json:"name"`
	BusinessName string `json:"business_name"`
}

type loginRequest struct {
	Passcode string `json:"passcode"`
}

type hostResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	BusinessName string `json:"business_name,omitempty"`
}

type sessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expires_at"`
	Host      hostResponse `json:"host"`
}

// takenDates is how a conflicting booking is shown to guests.
type takenDates struct {
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
}

type availabilityResponse struct {
	Available   bool         `json:"available"`
	Conflicts   []takenDates `json:"conflicts"`
	Suggestions []string     `json:"suggestions"`
}

type guestConflictResponse struct {
	Error       string       `json:"error"`
	Conflicts   []takenDates `json:"conflicts"`
	Suggestions []string     `json:"suggestions"`
}

func toTakenDates(bookings []domain.Booking) []takenDates {
	out := make([]takenDates, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, takenDates{CheckInDate: b.CheckInDate, CheckOutDate: b.CheckOutDate})
	}
	return out
}

func toHostResponse(h *domain.Host) hostResponse {
	return hostResponse{ID: h.ID, Name: h.Name, BusinessName: h.BusinessName}
}

func NewHostHandler(hostService hosts.HostUseCase, bookingService booking.BookingUseCase) *HostHandler {
	return &HostHandler{hosts: hostService, bookings: bookingService}
}

// RegisterPublic mounts the routes guests and logging-in hosts reach without a session.
func (h *HostHandler) RegisterPublic(router *gin.RouterGroup) {
	router.POST("/hosts", h.registerHost)
	router.POST("/sessions", h.login)
	router.GET("/hosts/:hostId/availability", h.availability)
	router.POST("/hosts/:hostId/registrations", h.registerGuest)
}

func (h *HostHandler) Register(router *gin.RouterGroup) {
	router.GET("/guest-form-url", h.guestFormURL)
	router.GET("/profile", h.profile)
	router.PUT("/profile", h.updateProfile)
}

func (h *HostHandler) registerHost(c *gin.Context) {
	var req registerHostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	host, err := h.hosts.Register(c.Request.Context(), hosts.RegisterInput{
		Name:         req.Name,
		BusinessName: req.BusinessName,
		Passcode:     req.Passcode,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toHostResponse(host))
}

func (h *HostHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.hosts.Login(c.Request.Context(), req.Passcode)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.Format(time.RFC3339),
		Host:      toHostResponse(session.Host),
	})
}

// availability lets the guest form warn about taken dates before submitting.
func (h *HostHandler) availability(c *gin.Context) {
	hostID := c.Param("hostId")
	if _, err := h.hosts.Get(c.Request.Context(), hostID); err != nil {
		writeError(c, err)
		return
	}

	result, err := h.bookings.CheckAvailability(c.Request.Context(), hostID, booking.AvailabilityInput{
		CheckInDate:  c.Query("check_in_date"),
		CheckOutDate: c.Query("check_out_date"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, availabilityResponse{
		Available:   result.Available,
		Conflicts:   toTakenDates(result.Conflicts),
		Suggestions: formatDates(result.Suggestions),
	})
}

func (h *HostHandler) registerGuest(c *gin.Context) {
	hostID := c.Param("hostId")
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.hosts.Get(c.Request.Context(), hostID); err != nil {
		writeError(c, err)
		return
	}

	created, err := h.bookings.Create(c.Request.Context(), hostID, req.input())
	if err != nil {
		// Guests are anonymous: other stays are shown by their dates only.
		var conflict *booking.ConflictError
		if errors.As(err, &conflict) {
			c.JSON(http.StatusConflict, guestConflictResponse{
				Error:       conflict.Error(),
				Conflicts:   toTakenDates(conflict.Conflicts),
				Suggestions: formatDates(conflict.Suggestions),
			})
			return
		}
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBookingResponse(created))
}

func (h *HostHandler) guestFormURL(c *gin.Context) {
	link, err := h.hosts.GuestFormURL(auth.HostID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": link})
}

func (h *HostHandler) profile(c *gin.Context) {
	host, err := h.hosts.Get(c.Request.Context(), auth.HostID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toHostResponse(host))
}

func (h *HostHandler) updateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	host, err := h.hosts.Update(c.Request.Context(), auth.HostID(c), hosts.ProfileInput{
		Name:         req.Name,
		BusinessName: req.BusinessName,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toHostResponse(host))
}
