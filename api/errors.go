package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/Domenick1991/guesthouse/internal/availability"
	"github.com/Domenick1991/guesthouse/internal/service/booking"
	"github.com/Domenick1991/guesthouse/internal/service/hosts"
	"github.com/gin-gonic/gin"
)

type conflictResponse struct {
	Error       string            `json:"error"`
	Conflicts   []bookingResponse `json:"conflicts"`
	Suggestions []string          `json:"suggestions"`
}

func writeError(c *gin.Context, err error) {
	var verr *availability.ValidationError
	var conflict *booking.ConflictError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, conflictResponse{
			Error:       conflict.Error(),
			Conflicts:   toBookingResponses(conflict.Conflicts),
			Suggestions: formatDates(conflict.Suggestions),
		})
	case errors.Is(err, booking.ErrBookingNotFound), errors.Is(err, hosts.ErrHostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrBusy), errors.Is(err, hosts.ErrPasscodeTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, hosts.ErrInvalidPasscode), errors.Is(err, hosts.ErrNameRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, hosts.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
