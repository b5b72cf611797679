package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/guesthouse/internal/auth"
	"github.com/Domenick1991/guesthouse/internal/availability"
	"github.com/Domenick1991/guesthouse/internal/calendar"
	"github.com/Domenick1991/guesthouse/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type CalendarHandler struct {
	service booking.BookingUseCase
}

type calendarDay struct {
	Date      string `json:"date"`
	InMonth   bool   `json:"in_month"`
	IsWeekend bool   `json:"is_weekend"`
}

type calendarResponse struct {
	Year   int                  `json:"year"`
	Month  int                  `json:"month"`
	Lanes  int                  `json:"lanes"`
	Days   []calendarDay        `json:"days"`
	Events []calendar.LaneEvent `json:"events"`
}

func toCalendarResponse(layout *calendar.Layout) calendarResponse {
	resp := calendarResponse{
		Year:   layout.Year,
		Month:  int(layout.Month),
		Lanes:  layout.Lanes,
		Days:   make([]calendarDay, 0, len(layout.Days)),
		Events: layout.Events,
	}
	if resp.Events == nil {
		resp.Events = []calendar.LaneEvent{}
	}
	for _, d := range layout.Days {
		resp.Days = append(resp.Days, calendarDay{
			Date:      availability.FormatDate(d),
			InMonth:   d.Month() == layout.Month,
			IsWeekend: d.Weekday() == time.Saturday || d.Weekday() == time.Sunday,
		})
	}
	return resp
}

func NewCalendarHandler(service booking.BookingUseCase) *CalendarHandler {
	return &CalendarHandler{service: service}
}

func (h *CalendarHandler) Register(router *gin.RouterGroup) {
	router.GET("/calendar/months/:year/:month", h.month)
	router.GET("/calendar/days/:date", h.day)
}

func (h *CalendarHandler) month(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return
	}

	layout, err := h.service.Calendar(c.Request.Context(), auth.HostID(c), year, time.Month(month))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCalendarResponse(layout))
}

// day resolves a click on one grid cell. More than one booking means the
// client has to let the host pick.
func (h *CalendarHandler) day(c *gin.Context) {
	bookings, err := h.service.BookingsOnDay(c.Request.Context(), auth.HostID(c), c.Param("date"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":      c.Param("date"),
		"bookings":  toBookingResponses(bookings),
		"ambiguous": len(bookings) > 1,
	})
}
