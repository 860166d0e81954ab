package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/desoft-apps/fiscalito/internal/conversation"
	"github.com/desoft-apps/fiscalito/internal/llm"
)

// Chatter is the conversational entry point the API exposes.
type Chatter interface {
	Handle(ctx context.Context, threadID, displayName, userText string) (string, []conversation.Turn, error)
}

// DocumentRetriever is the read-only retrieval capability the API exposes.
type DocumentRetriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]string, error)
}

// Server is the HTTP surface: a chat endpoint, a retrieval endpoint, health
// and metrics.
type Server struct {
	engine    Chatter
	retriever DocumentRetriever
	logger    *log.Logger

	allowOrigins []string
}

// New creates the HTTP server
func New(engine Chatter, retriever DocumentRetriever, allowOrigins []string, logger *log.Logger) *Server {
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"*"}
	}
	return &Server{
		engine:       engine,
		retriever:    retriever,
		logger:       logger,
		allowOrigins: allowOrigins,
	}
}

// Router builds the echo instance with all routes registered
func (s *Server) Router() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		s.logger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     s.allowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	api.POST("/chat", s.handleChat)
	api.GET("/retrieve_documents/:query/:k", s.handleRetrieveDocuments)

	return e
}

// Run serves until the listener fails
func (s *Server) Run(addr string) error {
	return s.Router().Start(addr)
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Query    string `json:"query"`
	UserName string `json:"user_name"`
}

// ChatResponse carries the reply and the full turn history of the thread.
type ChatResponse struct {
	Reply   string              `json:"reply"`
	History []conversation.Turn `json:"history"`
}

func (s *Server) handleChat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.UserName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_name is required")
	}

	start := time.Now()
	// The user name doubles as the thread key, as the original service did.
	reply, history, err := s.engine.Handle(c.Request().Context(), req.UserName, req.UserName, req.Query)
	turnDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		turnsTotal.WithLabelValues("error").Inc()
		if errors.Is(err, llm.ErrCompletion) {
			return echo.NewHTTPError(http.StatusBadGateway, err.Error())
		}
		return err
	}
	turnsTotal.WithLabelValues("ok").Inc()

	return c.JSON(http.StatusOK, ChatResponse{
		Reply:   trimReply(reply),
		History: history,
	})
}

// RetrieveResponse is the body of GET /api/retrieve_documents.
type RetrieveResponse struct {
	Documents []string `json:"documents"`
}

func (s *Server) handleRetrieveDocuments(c echo.Context) error {
	query := c.Param("query")
	k, err := strconv.Atoi(c.Param("k"))
	if err != nil || k <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "k must be a positive integer")
	}

	docs, err := s.retriever.Retrieve(c.Request().Context(), query, k)
	if err != nil {
		return err
	}
	retrievalsTotal.Inc()

	if docs == nil {
		docs = []string{}
	}
	return c.JSON(http.StatusOK, RetrieveResponse{Documents: docs})
}

// trimReply strips a leading self-referencing "Fiscalito: " prefix some
// models prepend when the prompt names the assistant.
func trimReply(reply string) string {
	if i := strings.LastIndex(reply, "Fiscalito: "); i >= 0 {
		return reply[i+len("Fiscalito: "):]
	}
	return reply
}
