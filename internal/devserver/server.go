// Package devserver exposes the build host over HTTP for the bundler
// side of the pipeline: emitted files, change tracking, and a
// WebSocket channel for live reload.
package devserver

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"hostbridge/internal/host"
)

// Server serves emitted output and change information from a
// CompilerHost.
type Server struct {
	host *host.CompilerHost
	hub  *reloadHub
}

// NewServer creates a Server for the given compiler host.
func NewServer(h *host.CompilerHost) *Server {
	return &Server{
		host: h,
		hub:  newReloadHub(),
	}
}

// NotifyChanged broadcasts the host's current changed-file and
// generated-output snapshot to live-reload clients. Call it after
// invalidating files.
func (s *Server) NotifyChanged() {
	generated := s.host.NgFactoryPaths()
	if generated == nil {
		generated = []string{}
	}
	s.hub.push(reloadMessage{
		Type:      "invalidate",
		Changed:   s.host.ChangedFilePaths(),
		Generated: generated,
	})
}

// Router builds the gin router for the server.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	api := r.Group("/api")
	{
		api.GET("/files/*path", s.GetFile)
		api.GET("/changed", s.GetChanged)
		api.GET("/generated", s.GetGenerated)
		api.GET("/ws", s.hub.handleWS)
	}

	return r
}

// GetFile returns the content of a file as seen by the compiler host,
// emitted output included.
func (s *Server) GetFile(c *gin.Context) {
	// Wildcard params keep their leading slash; the host resolves
	// relative paths against its base
	filePath := strings.TrimPrefix(c.Param("path"), "/")

	// Security: prevent path traversal
	if strings.Contains(filePath, "..") {
		c.JSON(http.StatusForbidden, gin.H{"error": "invalid path"})
		return
	}

	data, ok := s.host.ReadFileBuffer(filePath)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(filePath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, data)
}

// GetChanged returns the files invalidated since the last tracker
// reset.
func (s *Server) GetChanged(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"changed": s.host.ChangedFilePaths()})
}

// GetGenerated returns the generated factory and style module paths
// produced so far.
func (s *Server) GetGenerated(c *gin.Context) {
	paths := s.host.NgFactoryPaths()
	if paths == nil {
		paths = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"generated": paths})
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
