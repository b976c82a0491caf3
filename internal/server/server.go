package server

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"

	"github.com/muhammadolammi/careerreadiness/internal/advisor"
	"github.com/muhammadolammi/careerreadiness/internal/events"
	"github.com/muhammadolammi/careerreadiness/internal/markdown"
	"github.com/muhammadolammi/careerreadiness/internal/quiz"
	"github.com/muhammadolammi/careerreadiness/internal/report"
	"github.com/muhammadolammi/careerreadiness/internal/storage"
)

//go:embed templates/*.html templates/intro.md
var templateFS embed.FS

// ReportGenerator turns a finished assessment into report data.
type ReportGenerator interface {
	Generate(ctx context.Context, userID string, sub advisor.Submission) (*report.Data, error)
}

// Forwarder relays raw generateContent payloads.
type Forwarder interface {
	Configured() bool
	Forward(ctx context.Context, payload []byte) (json.RawMessage, error)
}

type Deps struct {
	Store     *quiz.Store
	Generator ReportGenerator
	Proxy     Forwarder
	Builder   *report.Builder
	Exports   storage.ReportStore
	Events    events.Publisher
}

type Server struct {
	store     *quiz.Store
	generator ReportGenerator
	proxy     Forwarder
	builder   *report.Builder
	exports   storage.ReportStore
	events    events.Publisher

	pages *template.Template
	intro template.HTML
}

// New wires the handlers. Generator and Exports may be nil, in which case
// the routes that need them answer 503.
func New(d Deps) (*Server, error) {
	pages, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	introMD, err := templateFS.ReadFile("templates/intro.md")
	if err != nil {
		return nil, err
	}
	intro, err := markdown.Standard(string(introMD))
	if err != nil {
		return nil, err
	}

	s := &Server{
		store:     d.Store,
		generator: d.Generator,
		proxy:     d.Proxy,
		builder:   d.Builder,
		exports:   d.Exports,
		events:    d.Events,
		pages:     pages,
		intro:     template.HTML(intro),
	}
	if s.builder == nil {
		s.builder = report.NewBuilder()
	}
	if s.events == nil {
		s.events = events.Nop{}
	}
	return s, nil
}

// Router builds the gin engine. mode is gin's debug, release or test.
func (s *Server) Router(mode string) *gin.Engine {
	gin.SetMode(mode)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:   []string{"Content-Length", "Content-Disposition"},
		MaxAge:          12 * time.Hour,
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.SetHTMLTemplate(s.pages)
	r.MaxMultipartMemory = 8 << 20

	r.GET("/", s.Intro)
	quizGroup := r.Group("/quiz")
	{
		quizGroup.POST("/start", s.Start)
		quizGroup.GET("", s.Question)
		quizGroup.POST("/answer", s.Answer)
		quizGroup.POST("/back", s.Back)
		quizGroup.POST("/submit", s.Submit)
		quizGroup.GET("/results", s.Results)
		quizGroup.GET("/results/download", s.Download)
		quizGroup.POST("/results/export", s.Export)
		quizGroup.POST("/restart", s.Restart)
	}

	api := r.Group("/api")
	{
		api.GET("/questions", s.Questions)
		api.POST("/assessment", s.Assessment)
		api.POST("/report/html", s.ReportHTML)
		api.Any("/generateReport", s.GenerateReport)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "sessions": s.store.Len()})
	})

	klog.V(4).Info("routes registered")
	return r
}
