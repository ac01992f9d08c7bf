package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	_ "aiwire/docs"
	"aiwire/internal/aggregator"
	"aiwire/internal/board"
	"aiwire/internal/config"
	"aiwire/internal/models"
	"aiwire/internal/poller"
	"aiwire/internal/security"
	"aiwire/internal/web"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	router        *gin.Engine
	board         *board.Board
	poller        *poller.Poller
	failures      *aggregator.FailureCounter
	port          int
	spaServer     *web.SPAServer
	swaggerServer *web.SwaggerServer
}

func NewServer(b *board.Board, p *poller.Poller, failures *aggregator.FailureCounter, cfg *config.Config) *Server {
	router := gin.New()
	router.Use(gin.Recovery())

	security.SetupSecurityMiddleware(router, &cfg.Security)

	server := &Server{
		router:        router,
		board:         b,
		poller:        p,
		failures:      failures,
		port:          cfg.Port,
		spaServer:     web.NewSPAServer(cfg.EnableSPA),
		swaggerServer: web.NewSwaggerServer(cfg.EnableSwagger),
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthCheck)

	api := s.router.Group("/api/v1")
	{
		api.GET("/articles", s.getArticles)
		api.GET("/topics", s.getTopics)
		api.GET("/status", s.getStatus)
		api.POST("/refresh", s.refresh)
	}

	s.spaServer.RegisterRoutes(s.router)
	s.swaggerServer.RegisterRoutes(s.router)
}

// Handler exposes the router for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// StartWithContext serves until ctx is cancelled, then shuts down gracefully
func (s *Server) StartWithContext(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(s.port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Println("Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return ctx.Err()
	}
}

type ArticleView struct {
	models.Article
	DisplayTitle string `json:"display_title"`
	Topic        string `json:"topic"`
}

type ArticlesResponse struct {
	Articles    []ArticleView `json:"articles"`
	Count       int           `json:"count"`
	Total       int           `json:"total"`
	Summary     string        `json:"summary"`
	Status      models.Status `json:"status"`
	LastUpdated *time.Time    `json:"last_updated,omitempty"`
	Query       string        `json:"query,omitempty"`
	Topic       string        `json:"topic,omitempty"`
}

type TopicView struct {
	Name          string   `json:"name"`
	QueryVariants []string `json:"query_variants"`
	Articles      int      `json:"articles"`
	Failures      int      `json:"failures"`
}

type StatusResponse struct {
	Message      string          `json:"message"`
	Severity     models.Severity `json:"severity"`
	Refreshing   bool            `json:"refreshing"`
	PollerActive bool            `json:"poller_active"`
	LastUpdated  *time.Time      `json:"last_updated,omitempty"`
	Failures     map[string]int  `json:"failures"`
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "healthy",
		"service":       "aiwire",
		"poller_active": s.poller.IsPolling(),
		"refreshing":    s.poller.IsRefreshing(),
		"last_updated":  timePtr(s.board.LastUpdated()),
	})
}

func (s *Server) getArticles(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	topic := strings.TrimSpace(c.Query("topic"))

	visible := board.FilterTopic(s.board.Search(query), topic)
	summary := s.board.Summary(len(visible))

	views := make([]ArticleView, 0, len(visible))
	for _, article := range visible {
		views = append(views, ArticleView{
			Article:      article,
			DisplayTitle: article.DisplayTitle(),
			Topic:        article.Topic(),
		})
	}

	c.JSON(http.StatusOK, ArticlesResponse{
		Articles:    views,
		Count:       len(views),
		Total:       summary.Total,
		Summary:     summary.Text,
		Status:      s.board.Status(),
		LastUpdated: timePtr(s.board.LastUpdated()),
		Query:       query,
		Topic:       topic,
	})
}

func (s *Server) getTopics(c *gin.Context) {
	counts := make(map[string]int)
	for _, article := range s.board.Articles() {
		counts[strings.ToLower(article.Topic())]++
	}
	failures := s.failures.Snapshot()

	topics := s.poller.Topics()
	views := make([]TopicView, 0, len(topics))
	for _, topic := range topics {
		views = append(views, TopicView{
			Name:          topic.Name,
			QueryVariants: topic.QueryVariants,
			Articles:      counts[strings.ToLower(topic.Name)],
			Failures:      failures[topic.Name],
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"topics": views,
		"count":  len(views),
	})
}

func (s *Server) getStatus(c *gin.Context) {
	status := s.board.Status()
	c.JSON(http.StatusOK, StatusResponse{
		Message:      status.Message,
		Severity:     status.Severity,
		Refreshing:   s.poller.IsRefreshing(),
		PollerActive: s.poller.IsPolling(),
		LastUpdated:  timePtr(s.board.LastUpdated()),
		Failures:     s.failures.Snapshot(),
	})
}

func (s *Server) refresh(c *gin.Context) {
	started := s.poller.RefreshAsync(true)

	message := "Refresh started"
	if !started {
		message = "Refresh already in progress"
	}

	c.JSON(http.StatusAccepted, gin.H{
		"started": started,
		"message": message,
	})
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
