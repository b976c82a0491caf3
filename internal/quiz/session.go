package quiz

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/muhammadolammi/careerreadiness/internal/report"
)

type Stage string

const (
	StageIntro      Stage = "intro"
	StageAssessment Stage = "assessment"
	StageResults    Stage = "results"
)

type Answer struct {
	QuestionID string `json:"questionId"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
}

// Session is one user's walk through intro, assessment and results.
// It is not safe for concurrent use; the Store hands out copies guarded
// by its own lock.
type Session struct {
	ID         uuid.UUID
	Stage      Stage
	Profile    report.Profile
	ResumeText string
	Answers    []Answer
	Current    int
	Report     *report.Data
	LastError  string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	bank *Bank
}

func NewSession(bank *Bank) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New(),
		Stage:     StageIntro,
		CreatedAt: now,
		UpdatedAt: now,
		bank:      bank,
	}
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now()
}

func (s *Session) Questions() []Question {
	return s.bank.Questions
}

// CurrentQuestion is the question to show next. ok is false outside the
// assessment stage.
func (s *Session) CurrentQuestion() (q Question, ok bool) {
	if s.Stage != StageAssessment || s.Current >= len(s.bank.Questions) {
		return Question{}, false
	}
	return s.bank.Questions[s.Current], true
}

// Answered is how many questions have an answer recorded.
func (s *Session) Answered() int {
	n := 0
	for _, a := range s.Answers {
		if a.Answer != "" {
			n++
		}
	}
	return n
}

func (s *Session) AllAnswered() bool {
	return s.Answered() == len(s.bank.Questions)
}

func (s *Session) Start(profile report.Profile) error {
	if s.Stage != StageIntro {
		return ErrWrongStage
	}
	profile.Role = strings.TrimSpace(profile.Role)
	profile.Industry = strings.TrimSpace(profile.Industry)
	if profile.Role == "" || profile.Industry == "" {
		return ErrIncompleteProfile
	}
	s.Profile = profile
	s.Answers = make([]Answer, len(s.bank.Questions))
	s.Current = 0
	s.Stage = StageAssessment
	s.touch()
	return nil
}

// Answer records a choice for the current question and moves on. It
// reports whether every question now has an answer.
func (s *Session) Answer(questionID, choice string) (bool, error) {
	q, ok := s.CurrentQuestion()
	if !ok {
		if s.Stage == StageAssessment {
			return s.AllAnswered(), ErrUnexpectedAnswer
		}
		return false, ErrWrongStage
	}
	if q.ID != questionID {
		return false, ErrUnexpectedAnswer
	}
	if !q.HasOption(choice) {
		return false, ErrInvalidOption
	}
	s.Answers[s.Current] = Answer{QuestionID: q.ID, Question: q.Text, Answer: choice}
	s.Current++
	s.LastError = ""
	s.touch()
	return s.AllAnswered(), nil
}

func (s *Session) Back() error {
	if s.Stage != StageAssessment {
		return ErrWrongStage
	}
	if s.Current > 0 {
		s.Current--
	}
	s.touch()
	return nil
}

func (s *Session) Complete(data *report.Data) error {
	if s.Stage != StageAssessment {
		return ErrWrongStage
	}
	if !s.AllAnswered() {
		return ErrUnanswered
	}
	s.Report = data
	s.LastError = ""
	s.Stage = StageResults
	s.touch()
	return nil
}

// Fail keeps the user on the assessment screen with msg shown so they can
// submit again.
func (s *Session) Fail(msg string) {
	s.LastError = msg
	s.touch()
}

func (s *Session) Reset() {
	s.Stage = StageIntro
	s.Profile = report.Profile{}
	s.ResumeText = ""
	s.Answers = nil
	s.Current = 0
	s.Report = nil
	s.LastError = ""
	s.touch()
}

func (s *Session) clone() *Session {
	c := *s
	c.Answers = append([]Answer(nil), s.Answers...)
	return &c
}
