// Package api exposes the analyzer over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yt-metrics/internal/analyzer"
	"github.com/yt-metrics/internal/cache"
	"github.com/yt-metrics/internal/export"
	"github.com/yt-metrics/internal/models"
)

const (
	maxSearchResults  = 50
	maxAnalyzeResults = 10
)

// Server represents the API server
type Server struct {
	router   *gin.Engine
	analyzer *analyzer.Analyzer
	cache    *cache.Store
	log      zerolog.Logger
}

// NewServer creates a new API server. The cache is optional; pass nil to
// disable response caching.
func NewServer(a *analyzer.Analyzer, store *cache.Store, log zerolog.Logger) *Server {
	router := gin.Default()

	// Configure CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:3001"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "Pragma"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	server := &Server{
		router:   router,
		analyzer: a,
		cache:    store,
		log:      log,
	}
	server.setupRoutes()
	return server
}

// setupRoutes configures all the routes for the server
func (s *Server) setupRoutes() {
	s.router.GET("/api/health", s.health)
	s.router.GET("/api/channel", s.getChannel)
	s.router.GET("/api/search", s.searchChannels)
	s.router.GET("/api/analyze", s.analyzeSearch)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// parseRequest extracts the channel reference, temporal window, and link
// extraction flag shared by the channel endpoints.
func parseRequest(c *gin.Context) (models.ChannelRef, *analyzer.TemporalWindow, bool, error) {
	ref := models.ChannelRef{
		ID:       c.Query("channel_id"),
		Username: c.Query("username"),
		Handle:   c.Query("handle"),
	}

	days := 0
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return ref, nil, false, errors.New("days parameter must be an integer")
		}
		days = parsed
	}

	window, err := analyzer.NewTemporalWindow(days, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return ref, nil, false, err
	}

	extractLinks := c.Query("extract_links") == "true"
	return ref, window, extractLinks, nil
}

// getChannel analyzes a single channel identified by channel_id, username,
// or handle.
func (s *Server) getChannel(c *gin.Context) {
	ref, window, extractLinks, err := parseRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if ref.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "You must provide either channel_id, username, or handle",
		})
		return
	}

	// Unfiltered by-ID lookups without link extraction are cacheable for
	// the rest of the calendar day.
	cacheable := s.cache != nil && ref.ID != "" && window.Empty() && !extractLinks
	if cacheable {
		if payload, ok := s.cachedToday(ref.ID); ok {
			s.log.Info().Str("channel_id", ref.ID).Msg("Serving cached analysis")
			c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(payload))
			return
		}
	}

	result, err := s.analyzer.AnalyzeChannel(c.Request.Context(), ref, window, extractLinks)
	if err != nil {
		s.respondAnalysisError(c, err)
		return
	}
	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Could not retrieve data for the specified channel",
		})
		return
	}

	if cacheable {
		if payload, err := json.Marshal(result); err == nil {
			if err := s.cache.Put(ref.ID, ref.ID, string(payload)); err != nil {
				s.log.Warn().Err(err).Str("channel_id", ref.ID).Msg("Failed to cache analysis")
			}
		}
	}
	c.JSON(http.StatusOK, result)
}

// cachedToday returns a cached payload stored earlier the same UTC day.
func (s *Server) cachedToday(channelID string) (string, bool) {
	payload, createdAt, err := s.cache.Get(channelID)
	if err != nil {
		s.log.Warn().Err(err).Str("channel_id", channelID).Msg("Cache lookup failed")
		return "", false
	}
	if payload == "" {
		return "", false
	}

	now := time.Now().UTC()
	created := createdAt.UTC()
	if created.Year() != now.Year() || created.YearDay() != now.YearDay() {
		return "", false
	}
	return payload, true
}

// searchChannels returns channel search results without analyzing them.
func (s *Server) searchChannels(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter is required"})
		return
	}
	maxResults, err := parseMaxResults(c.Query("max_results"), 5, maxSearchResults)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	channels, err := s.analyzer.SearchChannels(c.Request.Context(), query, maxResults)
	if err != nil {
		s.log.Error().Err(err).Str("query", query).Msg("Channel search failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(channels) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"message":  "No channels found matching your search query",
			"channels": []models.ChannelSearchResult{},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"query":    query,
		"count":    len(channels),
		"channels": channels,
	})
}

// analyzeSearch searches for channels and runs the full analysis on each hit.
func (s *Server) analyzeSearch(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter is required"})
		return
	}
	_, window, extractLinks, err := parseRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	maxResults, err := parseMaxResults(c.Query("max_results"), 3, maxAnalyzeResults)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	channels, err := s.analyzer.SearchChannels(c.Request.Context(), query, maxResults)
	if err != nil {
		s.log.Error().Err(err).Str("query", query).Msg("Channel search failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	results := s.analyzer.AnalyzeSearchResults(c.Request.Context(), channels, window, extractLinks)
	c.JSON(http.StatusOK, export.BuildDocument(results, query))
}

func (s *Server) respondAnalysisError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, analyzer.ErrNoIdentifier), errors.Is(err, analyzer.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.log.Error().Err(err).Msg("Channel analysis failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// parseMaxResults parses the max_results parameter, clamping into [1, max].
// An absent parameter yields the default; a non-integer is a caller error.
func parseMaxResults(raw string, def, max int64) (int64, error) {
	if raw == "" {
		return def, nil
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.New("max_results parameter must be an integer")
	}
	if parsed < 1 {
		return 1, nil
	}
	if parsed > max {
		return max, nil
	}
	return parsed, nil
}

// Start starts the server on the specified port
func (s *Server) Start(port string) error {
	return s.router.Run(":" + port)
}
