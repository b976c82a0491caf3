package server

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"k8s.io/klog/v2"

	"github.com/muhammadolammi/careerreadiness/internal/advisor"
	"github.com/muhammadolammi/careerreadiness/internal/gemini"
	"github.com/muhammadolammi/careerreadiness/internal/report"
)

// Questions lists the assessment for API clients.
func (s *Server) Questions(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Bank())
}

// Assessment generates both reports for a submission in one call.
func (s *Server) Assessment(c *gin.Context) {
	if s.generator == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": errGenerationDisabled.Error()})
		return
	}
	var sub advisor.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if sub.Profile.Role == "" || sub.Profile.Industry == "" || len(sub.Answers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "profile.role, profile.industry and answers are required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), generateTimeout)
	defer cancel()
	data, err := s.generator.Generate(ctx, uuid.NewString(), sub)
	if err != nil {
		klog.Errorf("error generating report via api: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to generate report"})
		return
	}
	c.JSON(http.StatusOK, data)
}

type reportHTMLRequest struct {
	ReportData  report.Data    `json:"reportData"`
	UserProfile report.Profile `json:"userProfile"`
}

// ReportHTML builds the downloadable document from report data the client
// already holds.
func (s *Server) ReportHTML(c *gin.Context) {
	var req reportHTMLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	html, err := s.builder.HTML(&req.ReportData, req.UserProfile)
	if err != nil {
		klog.Errorf("error building report: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+report.Filename(req.UserProfile)+`"`)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// GenerateReport forwards the browser's generateContent payload to Gemini
// with the server-side key.
func (s *Server) GenerateReport(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")

	if c.Request.Method != http.MethodPost {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"message": "Method Not Allowed"})
		return
	}
	if s.proxy == nil || !s.proxy.Configured() {
		c.JSON(http.StatusInternalServerError, gin.H{"message": gemini.ErrNoAPIKey.Error()})
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, gemini.MaxBodyBytes))
	if err != nil {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"message": "Request body too large"})
		return
	}

	out, err := s.proxy.Forward(c.Request.Context(), body)
	switch {
	case errors.Is(err, gemini.ErrInvalidPayload):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Request body must be JSON"})
		return
	case errors.Is(err, gemini.ErrUpstreamTooLarge):
		klog.Errorf("Google API response rejected: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"message": "Response from Google API too large"})
		return
	case err != nil:
		klog.Errorf("Error communicating with Google API: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error communicating with Google API"})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", out)
}
