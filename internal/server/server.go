// Package server exposes the news pipeline over HTTP.
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TobiSchelling/worldnews/internal/feed"
	"github.com/TobiSchelling/worldnews/internal/news"
	"github.com/TobiSchelling/worldnews/internal/sources"
	"github.com/TobiSchelling/worldnews/internal/stream"
)

// Server is the HTTP API over the news pipeline.
type Server struct {
	service   *news.Service
	refresher *news.Refresher
	streamer  *stream.Streamer
	engine    *gin.Engine
}

// New creates a Server with registered routes.
func New(service *news.Service, refresher *news.Refresher, streamer *stream.Streamer) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		service:   service,
		refresher: refresher,
		streamer:  streamer,
		engine:    engine,
	}
	s.routes()
	return s
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() {
	s.engine.GET("/health", s.handleHealth)

	api := s.engine.Group("/api")
	api.GET("/continents", s.handleContinents)
	api.GET("/countries/:region", s.handleCountries)
	api.GET("/news/:region", s.handleNews)
	api.GET("/summarize/:region", s.handleSummarize)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) handleContinents(c *gin.Context) {
	registry := s.service.Registry()

	type continent struct {
		ID          string   `json:"id"`
		Name        string   `json:"name"`
		SourceCount int      `json:"sourceCount"`
		Sources     []string `json:"sources"`
	}

	var out []continent
	for _, id := range registry.IDs() {
		names := registry.SourceNames(id)
		out = append(out, continent{
			ID:          id,
			Name:        sources.Label(id),
			SourceCount: len(names),
			Sources:     names,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleCountries(c *gin.Context) {
	region := strings.ToLower(c.Param("region"))
	if !s.service.Registry().Has(region) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid region"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"region":    region,
		"countries": sources.Countries(region),
	})
}

func (s *Server) handleNews(c *gin.Context) {
	region := strings.ToLower(c.Param("region"))
	if !s.service.Registry().Has(region) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid region"})
		return
	}

	articles, err := s.service.RegionArticles(c.Request.Context(), region)
	if err != nil {
		log.Printf("News request failed for %s: %v", region, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch news"})
		return
	}
	if articles == nil {
		articles = []feed.Article{}
	}

	// The requested region becomes the one the background refresher keeps
	// warm; the most recent selection wins.
	if s.refresher != nil {
		s.refresher.Watch(region)
	}

	c.JSON(http.StatusOK, gin.H{
		"region":      region,
		"lastUpdated": time.Now().UTC().Format(time.RFC3339),
		"articles":    articles,
		"sources":     s.service.Registry().SourceNames(region),
	})
}

func (s *Server) handleSummarize(c *gin.Context) {
	region := strings.ToLower(c.Param("region"))
	if !s.service.Registry().Has(region) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid region"})
		return
	}

	summary, err := s.service.Briefing(c.Request.Context(), region, c.Query("country"))
	if err != nil {
		log.Printf("Summary request failed for %s: %v", region, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate summary"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	chunks := s.streamer.Stream(c.Request.Context(), summary)
	c.Stream(func(w io.Writer) bool {
		chunk, ok := <-chunks
		if !ok {
			return false
		}
		if chunk.Done {
			fmt.Fprint(w, "data: [DONE]\n\n")
			return false
		}
		payload, err := json.Marshal(gin.H{"text": chunk.Text})
		if err != nil {
			return false
		}
		fmt.Fprintf(w, "data: %s\n\n", payload)
		return true
	})
}

// Serve starts the HTTP server on the given port.
func Serve(service *news.Service, refresher *news.Refresher, streamer *stream.Streamer, port int) error {
	srv := New(service, refresher, streamer)
	addr := fmt.Sprintf(":%d", port)
	log.Printf("WorldNews listening on http://localhost%s", addr)
	return http.ListenAndServe(addr, srv.Handler())
}
