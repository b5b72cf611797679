package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Domenick1991/guesthouse/api"
	"github.com/Domenick1991/guesthouse/config"
	"github.com/Domenick1991/guesthouse/internal/auth"
	"github.com/Domenick1991/guesthouse/internal/service/booking"
	"github.com/Domenick1991/guesthouse/internal/service/hosts"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

const shutdownTimeout = 5 * time.Second

// Check reports whether a backing service is reachable.
type Check func(ctx context.Context) error

type Services struct {
	Bookings booking.BookingUseCase
	Hosts    hosts.HostUseCase
	Issuer   *auth.Issuer
	// Checks are run by /readyz, keyed by the name reported on failure.
	Checks map[string]Check
}

// Run serves the HTTP API and blocks until ctx is canceled or the server fails.
func Run(ctx context.Context, cfg *config.Config, svc Services) error {
	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: NewRouter(cfg, svc),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("http server listening on %s", cfg.HTTP.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func NewRouter(cfg *config.Config, svc Services) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/readyz", readiness(svc.Checks))

	if cfg.HTTP.SwaggerDir != "" {
		router.Static("/swagger", cfg.HTTP.SwaggerDir)
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/bookings.swagger.json"))))
	}

	bookingHandler := api.NewBookingHandler(svc.Bookings)
	calendarHandler := api.NewCalendarHandler(svc.Bookings)
	hostHandler := api.NewHostHandler(svc.Hosts, svc.Bookings)

	v1 := router.Group("/api/v1")
	hostHandler.RegisterPublic(v1)

	private := v1.Group("")
	private.Use(auth.Middleware(svc.Issuer))
	bookingHandler.Register(private)
	calendarHandler.Register(private)
	hostHandler.Register(private)

	return router
}

func readiness(checks map[string]Check) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		failed := gin.H{}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				failed[name] = err.Error()
			}
		}
		if len(failed) > 0 {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "failed": failed})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
