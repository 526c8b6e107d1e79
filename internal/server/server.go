package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/Vizlook/youtube-search/internal/apperr"
	"github.com/Vizlook/youtube-search/internal/config"
	"github.com/Vizlook/youtube-search/internal/core/model"
	"github.com/Vizlook/youtube-search/internal/logger"
)

// Searcher runs one query through the pipeline.
type Searcher interface {
	Run(ctx context.Context, req model.Request) (model.SearchResponse, error)
}

type Server struct {
	Pipeline Searcher
	Config   config.ServerConfig
	Logger   *logrus.Logger

	limiter *rate.Limiter
}

func NewServer(pipeline Searcher, cfg config.ServerConfig, log *logrus.Logger) *Server {
	s := &Server{
		Pipeline: pipeline,
		Config:   cfg,
		Logger:   log,
	}
	if cfg.RateLimitRPS > 0 {
		burst := cfg.RateLimitBurst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), burst)
	}
	return s
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog(s.Logger))

	r.GET("/healthz", s.Health)

	api := r.Group("/api")
	if s.limiter != nil {
		api.Use(rateLimit(s.limiter))
	}
	api.POST("/search-video", s.SearchVideo)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Config.Addr,
		Handler:           s.SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.WithField("addr", s.Config.Addr).Info("Starting server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.Logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) SearchVideo(c *gin.Context) {
	log := requestLogger(c, s.Logger)

	var req model.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		log.WithError(err).Info("rejecting malformed request body")
		c.String(http.StatusBadRequest, http.StatusText(http.StatusBadRequest))
		return
	}

	resp, err := s.Pipeline.Run(c.Request.Context(), req)
	if err != nil {
		status := apperr.HTTPStatus(err)
		entry := log.WithError(err).WithField("status", status)
		switch {
		case errors.Is(err, context.Canceled):
			entry.Info("client went away")
		case status == http.StatusInternalServerError:
			entry.Error("Failed to search video")
		default:
			entry.Warn("search request rejected")
		}
		c.String(status, http.StatusText(status))
		return
	}

	c.JSON(http.StatusOK, resp)
}

func requestLogger(c *gin.Context, fallback logrus.FieldLogger) logrus.FieldLogger {
	return logger.FromContext(c.Request.Context(), fallback)
}
