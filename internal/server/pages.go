package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"

	"github.com/muhammadolammi/careerreadiness/internal/advisor"
	"github.com/muhammadolammi/careerreadiness/internal/events"
	"github.com/muhammadolammi/careerreadiness/internal/quiz"
	"github.com/muhammadolammi/careerreadiness/internal/report"
	"github.com/muhammadolammi/careerreadiness/internal/resume"
)

const generateTimeout = 2 * time.Minute

var errGenerationDisabled = errors.New("report generation is not configured on the server")

func redirect(c *gin.Context, to string) {
	c.Redirect(http.StatusSeeOther, to)
}

// stageHome is where a session in the given stage belongs.
func stageHome(stage quiz.Stage) string {
	switch stage {
	case quiz.StageAssessment:
		return "/quiz"
	case quiz.StageResults:
		return "/quiz/results"
	default:
		return "/"
	}
}

func (s *Server) renderIntro(c *gin.Context, status int, role, industry, errMsg string) {
	c.HTML(status, "intro", gin.H{
		"Title":         "Career Readiness Assessment",
		"Intro":         s.intro,
		"Role":          role,
		"Industry":      industry,
		"QuestionCount": len(s.store.Bank().Questions),
		"Error":         errMsg,
	})
}

func (s *Server) Intro(c *gin.Context) {
	sess := s.session(c)
	if sess.Stage != quiz.StageIntro {
		redirect(c, stageHome(sess.Stage))
		return
	}
	s.renderIntro(c, http.StatusOK, "", "", "")
}

func (s *Server) Start(c *gin.Context) {
	profile := report.Profile{Role: c.PostForm("role"), Industry: c.PostForm("industry")}

	resumeText, err := readResume(c)
	if err != nil {
		klog.Warningf("⚠️ resume upload rejected: %v", err)
		s.renderIntro(c, http.StatusBadRequest, profile.Role, profile.Industry, err.Error())
		return
	}

	sess, err := s.update(c, func(sess *quiz.Session) error {
		if err := sess.Start(profile); err != nil {
			return err
		}
		sess.ResumeText = resumeText
		return nil
	})
	switch {
	case errors.Is(err, quiz.ErrIncompleteProfile):
		s.renderIntro(c, http.StatusBadRequest, profile.Role, profile.Industry, "Please tell us your role and industry.")
		return
	case err != nil:
		redirect(c, stageHome(sess.Stage))
		return
	}
	klog.V(4).Infof("session %s started: role=%q industry=%q resume=%t", sess.ID, sess.Profile.Role, sess.Profile.Industry, resumeText != "")
	redirect(c, "/quiz")
}

// readResume extracts the optional uploaded resume. No file is not an error.
func readResume(c *gin.Context) (string, error) {
	fh, err := c.FormFile("resume")
	if err != nil {
		return "", nil
	}
	if fh.Size == 0 {
		return "", nil
	}
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("could not open resume: %w", err)
	}
	defer f.Close()

	data, err := resume.Read(f)
	if err != nil {
		return "", err
	}
	mimeType := resume.DetectMIME(fh.Filename, fh.Header.Get("Content-Type"))
	if mimeType == "" {
		return "", fmt.Errorf("unsupported resume format; upload a PDF, DOCX or text file")
	}
	return resume.Extract(mimeType, data)
}

func (s *Server) renderQuestion(c *gin.Context, status int, sess *quiz.Session) {
	total := len(sess.Questions())
	data := gin.H{
		"Title":    "Career Readiness Assessment",
		"Role":     sess.Profile.Role,
		"Industry": sess.Profile.Industry,
		"Total":    total,
		"Percent":  sess.Answered() * 100 / max(total, 1),
		"Error":    sess.LastError,
	}
	q, ok := sess.CurrentQuestion()
	if !ok {
		data["Ready"] = true
		c.HTML(status, "question", data)
		return
	}
	selected := ""
	if sess.Current < len(sess.Answers) {
		selected = sess.Answers[sess.Current].Answer
	}
	data["Question"] = q
	data["Number"] = sess.Current + 1
	data["Last"] = sess.Current+1 == total
	data["Selected"] = selected
	c.HTML(status, "question", data)
}

func (s *Server) Question(c *gin.Context) {
	sess := s.session(c)
	if sess.Stage != quiz.StageAssessment {
		redirect(c, stageHome(sess.Stage))
		return
	}
	s.renderQuestion(c, http.StatusOK, sess)
}

func (s *Server) Answer(c *gin.Context) {
	var done bool
	sess, err := s.update(c, func(sess *quiz.Session) error {
		var err error
		done, err = sess.Answer(c.PostForm("question_id"), c.PostForm("answer"))
		return err
	})
	switch {
	case errors.Is(err, quiz.ErrWrongStage), errors.Is(err, quiz.ErrUnexpectedAnswer):
		redirect(c, stageHome(sess.Stage))
		return
	case err != nil:
		sess.LastError = "Please choose one of the options."
		s.renderQuestion(c, http.StatusBadRequest, sess)
		return
	}
	// Revising an earlier answer goes back to the quiz even when every
	// question is already answered; only the last question submits.
	if done && sess.Current == len(sess.Questions()) {
		s.generate(c, sess)
		return
	}
	redirect(c, "/quiz")
}

func (s *Server) Back(c *gin.Context) {
	sess, _ := s.update(c, func(sess *quiz.Session) error {
		return sess.Back()
	})
	redirect(c, stageHome(sess.Stage))
}

func (s *Server) Submit(c *gin.Context) {
	sess := s.session(c)
	if sess.Stage != quiz.StageAssessment || !sess.AllAnswered() {
		redirect(c, stageHome(sess.Stage))
		return
	}
	s.generate(c, sess)
}

// generate calls the model outside the store lock, then records the
// outcome on the session.
func (s *Server) generate(c *gin.Context, sess *quiz.Session) {
	id := sess.ID.String()
	s.publish(id, events.StatusProcessing, "analysis started")

	var (
		data *report.Data
		err  = errGenerationDisabled
	)
	if s.generator != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), generateTimeout)
		defer cancel()
		data, err = s.generator.Generate(ctx, id, advisor.Submission{
			Profile:    sess.Profile,
			Answers:    sess.Answers,
			ResumeText: sess.ResumeText,
		})
	}

	if err != nil {
		klog.Errorf("error generating report for session %s: %v", id, err)
		s.publish(id, events.StatusFailed, "analysis failed")
		_, _ = s.store.Update(sess.ID, func(sess *quiz.Session) error {
			sess.Fail("We couldn't generate your report just now. Please try again.")
			return nil
		})
		redirect(c, "/quiz")
		return
	}

	_, err = s.store.Update(sess.ID, func(sess *quiz.Session) error {
		return sess.Complete(data)
	})
	if err != nil {
		klog.Warningf("⚠️ session %s changed while generating: %v", id, err)
		redirect(c, "/quiz")
		return
	}
	s.publish(id, events.StatusCompleted, "analysis completed")
	klog.Infof("session %s analyzed", id)
	redirect(c, "/quiz/results")
}

func (s *Server) publish(sessionID, status, message string) {
	if err := s.events.Publish(sessionID, status, message); err != nil {
		klog.Warningf("failed to publish update: %v", err)
	}
}

func (s *Server) renderResults(c *gin.Context, status int, sess *quiz.Session, exportURL, errMsg string) {
	sections, err := report.Sections(sess.Report, s.builder.Palette)
	if err != nil {
		klog.Errorf("error rendering report for session %s: %v", sess.ID, err)
		c.String(http.StatusInternalServerError, "failed to render report")
		return
	}
	c.HTML(status, "results", gin.H{
		"Title":     "Your Career Readiness Report",
		"Role":      sess.Profile.Role,
		"Industry":  sess.Profile.Industry,
		"Sections":  template.HTML(sections),
		"CanExport": s.exports != nil,
		"ExportURL": exportURL,
		"Error":     errMsg,
	})
}

func (s *Server) Results(c *gin.Context) {
	sess := s.session(c)
	if sess.Stage != quiz.StageResults {
		redirect(c, stageHome(sess.Stage))
		return
	}
	s.renderResults(c, http.StatusOK, sess, "", "")
}

func (s *Server) Download(c *gin.Context) {
	sess := s.session(c)
	if sess.Stage != quiz.StageResults {
		redirect(c, stageHome(sess.Stage))
		return
	}
	html, err := s.builder.HTML(sess.Report, sess.Profile)
	if err != nil {
		klog.Errorf("error building report for session %s: %v", sess.ID, err)
		c.String(http.StatusInternalServerError, "failed to build report")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, report.Filename(sess.Profile)))
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (s *Server) Export(c *gin.Context) {
	sess := s.session(c)
	if sess.Stage != quiz.StageResults {
		redirect(c, stageHome(sess.Stage))
		return
	}
	if s.exports == nil {
		s.renderResults(c, http.StatusServiceUnavailable, sess, "", "Saving reports is not available on this server.")
		return
	}
	html, err := s.builder.HTML(sess.Report, sess.Profile)
	if err != nil {
		klog.Errorf("error building report for session %s: %v", sess.ID, err)
		s.renderResults(c, http.StatusInternalServerError, sess, "", "We couldn't build your report.")
		return
	}
	key := exportKey(sess)
	url, err := s.exports.Put(c.Request.Context(), key, []byte(html))
	if err != nil {
		klog.Errorf("error exporting report %s: %v", key, err)
		s.renderResults(c, http.StatusBadGateway, sess, "", "We couldn't save your report. Please download it instead.")
		return
	}
	klog.Infof("report for session %s exported to %s", sess.ID, key)
	s.renderResults(c, http.StatusOK, sess, url, "")
}

func exportKey(sess *quiz.Session) string {
	return "reports/" + sess.ID.String() + "/" + report.Filename(sess.Profile)
}

func (s *Server) Restart(c *gin.Context) {
	_, _ = s.update(c, func(sess *quiz.Session) error {
		sess.Reset()
		return nil
	})
	redirect(c, "/")
}
