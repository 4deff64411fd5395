// Package web serves the REST API and dashboard over HTTP.
package web

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dsgnrg/looptrack/internal/config"
	"github.com/dsgnrg/looptrack/internal/logger"
	"github.com/dsgnrg/looptrack/internal/store"
)

// NewRouter builds the gin engine with all API routes mounted.
func NewRouter(s *store.Store, cfg *config.Config, log *logger.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(log))

	// The dashboard may be opened from a file:// page or another local
	// port, so the API answers any origin. It binds to loopback by
	// default, which is the real boundary.
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-Requested-With"},
		AllowCredentials: false,
	}))

	h := &Handlers{store: s, cfg: cfg, log: log, now: time.Now}

	router.GET("/", h.Dashboard)

	api := router.Group("/api")
	{
		api.GET("/status/daily", h.DailyStatus)
		api.GET("/status/weekly", h.WeeklyProgress)
		api.GET("/status/monthly", h.MonthlyProgress)
		api.GET("/stats", h.Stats)
		api.GET("/report", h.Report)
		api.GET("/data/all", h.AllData)

		api.GET("/input/today", h.TodayInput)
		api.POST("/input/sketch", h.LogSketch)
		api.POST("/input/visual", h.LogMoodboard)
		api.POST("/input/lore", h.LogLore)

		api.POST("/process", h.LogProcess)

		api.POST("/output/micro", h.logOutput("micro"))
		api.POST("/output/major", h.logOutput("major"))
		api.POST("/output/vst3", h.logOutput("vst3"))
		api.GET("/output/vst3", h.ListPlugins)
		api.PUT("/output/vst3/:id", h.UpdatePlugin)

		api.GET("/calendar/:year/:month", h.MonthCalendar)
		api.GET("/calendar/day/:date", h.DayCalendar)

		api.GET("/tasks/:type", h.GetTasks)
		api.POST("/tasks/:type", h.AddTask)
		api.PUT("/tasks/:type/:id", h.UpdateTask)
		api.DELETE("/tasks/:type/:id", h.DeleteTask)

		api.GET("/payments", h.ListPayments)
		api.POST("/payments", h.AddPayment)
		api.PUT("/payments/:id", h.UpdatePayment)
		api.DELETE("/payments/:id", h.DeletePayment)

		api.POST("/upload/audio", h.uploadMedia("audio"))
		api.POST("/upload/image", h.uploadMedia("image"))
	}

	router.GET("/files/*path", h.ServeFile)

	return router
}

// requestLogger logs one line per request after it completes.
func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if log == nil {
			return
		}
		log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}

// NewServer wraps the router in an http.Server bound per config.
func NewServer(s *store.Store, cfg *config.Config, log *logger.Logger) *http.Server {
	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Bind, cfg.Port),
		Handler: NewRouter(s, cfg, log),
	}
}

// Run starts the HTTP server and handles graceful shutdown on
// SIGINT/SIGTERM.
func Run(srv *http.Server, log *logger.Logger) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Info("creative loop server running", "addr", "http://"+srv.Addr)
	if strings.Contains(srv.Addr, "0.0.0.0") || strings.Contains(srv.Addr, "::") {
		log.Warn("server is binding to all interfaces and may be accessible from the network")
	}

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		log.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
