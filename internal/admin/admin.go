// Package admin serves the optional HTTP surface next to the UDP server:
// health, readiness, socket bindings and prometheus metrics.
package admin

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/danmuck/dtproto/internal/observability"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const version = "0.1.0"

// Status is the view of the UDP server exposed over HTTP.
type Status interface {
	Ready() bool
	Ports() map[string]int
}

// Stater is optionally implemented by Status to expose the dispatcher state.
type Stater interface {
	StateName() string
}

type Admin struct {
	ID       string
	Appeared time.Time

	status Status
	router *gin.Engine
}

func New(id string, corsOrigins []string, status Status) *Admin {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.AdminAccessLog(log.Logger))
	r.Use(observability.AdminMetrics(id))
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(corsOrigins),
		AllowMethods: []string{"GET"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	a := &Admin{
		ID:       id,
		Appeared: time.Now(),
		status:   status,
		router:   r,
	}
	a.registerRoutes()
	return a
}

func (a *Admin) Router() *gin.Engine {
	return a.router
}

func (a *Admin) registerRoutes() {
	a.router.GET("/health", func(c *gin.Context) {
		body := gin.H{
			"status":  "ok",
			"uptime":  time.Since(a.Appeared).String(),
			"service": a.ID,
			"version": version,
		}
		if st, ok := a.status.(Stater); ok {
			body["state"] = st.StateName()
		}
		c.JSON(http.StatusOK, body)
	})

	a.router.GET("/ready", func(c *gin.Context) {
		ready := a.status.Ready()
		code := http.StatusOK
		if !ready {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"ready":   ready,
			"service": a.ID,
		})
	})

	a.router.GET("/bindings", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"bindings": a.status.Ports(),
		})
	})

	a.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (a *Admin) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("admin listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, origin := range origins {
		if v := strings.TrimSpace(origin); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return []string{"http://localhost:3000"}
	}
	return out
}
