// Package server exposes the gopoly tool interface over HTTP.
//
//	POST /tool    execute a tool call
//	GET  /schema  tool schema for agent registration
//	GET  /health  liveness check
//	GET  /metrics Prometheus metrics
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/njchilds90/gopoly"
	"github.com/njchilds90/gopoly/internal/config"
)

const requestIDHeader = "X-Request-ID"

var (
	toolCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gopoly_tool_calls_total",
		Help: "Tool calls by tool and result",
	}, []string{"tool", "result"})

	toolDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gopoly_tool_call_duration_seconds",
		Help:    "Tool call duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
	}, []string{"tool"})
)

// knownTools bounds metric label cardinality.
var knownTools = func() map[string]bool {
	m := map[string]bool{}
	for _, name := range gopoly.Tools() {
		m[name] = true
	}
	return m
}()

type Server struct {
	cfg     config.ServerConfig
	log     *slog.Logger
	engine  *gin.Engine
	limiter *rate.Limiter
}

func New(cfg config.ServerConfig, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{cfg: cfg, log: log}
	if cfg.RateLimit > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst)
	}

	r := gin.New()
	r.Use(s.requestID(), s.recovery(), s.logRequests())
	r.GET("/health", s.health)
	r.GET("/schema", s.schema)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/tool", s.rateLimit(), s.tool)
	s.engine = r
	return s
}

func (s *Server) Handler() http.Handler { return s.engine }

// HTTPServer wraps the handler with the configured timeouts.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}
}

// ============================================================
// Middleware
// ============================================================

func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, rec interface{}) {
		s.log.Error("panic in handler", "path", c.Request.URL.Path, "panic", rec, "request_id", c.GetString("request_id"))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	})
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", c.GetString("request_id"),
		)
	}
}

func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.limiter != nil && !s.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) schema(c *gin.Context) {
	c.Data(http.StatusOK, "application/json", []byte(gopoly.MCPToolSpec()))
}

func (s *Server) tool(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxBodyBytes)
	defer c.Request.Body.Close()

	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()

	var req gopoly.ToolRequest
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if dec.More() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: trailing data"})
		return
	}
	if req.Tool == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing tool"})
		return
	}

	label := req.Tool
	if !knownTools[label] {
		label = "unknown"
	}
	start := time.Now()
	resp := gopoly.HandleToolCall(req)
	toolDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())

	result := "ok"
	if resp.Error != "" {
		result = "error"
	}
	toolCalls.WithLabelValues(label, result).Inc()
	s.log.Debug("tool call", "tool", req.Tool, "result", result, "request_id", c.GetString("request_id"))

	c.JSON(http.StatusOK, resp)
}
