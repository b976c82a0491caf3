package quiz

import "errors"

var (
	ErrWrongStage        = errors.New("action not allowed at this stage")
	ErrIncompleteProfile = errors.New("role and industry are required")
	ErrUnexpectedAnswer  = errors.New("answer does not match the current question")
	ErrInvalidOption     = errors.New("answer is not one of the question's options")
	ErrUnanswered        = errors.New("not every question has been answered")
	ErrSessionNotFound   = errors.New("session not found")
)
