package tutor

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Evaluation is the service's verdict on a submitted board.
type Evaluation struct {
	Problem        string   `json:"problem"`
	Feedback       Feedback `json:"evaluation"`
	Correct        bool     `json:"correct"`
	Score          float64  `json:"score"`
	SubmissionTime string   `json:"submission_time"`
	Grade          string   `json:"grade,omitempty"`
}

// Feedback accepts either a bare string (taken as the analysis) or an
// object whose list fields may each be a string or an array of strings.
type Feedback struct {
	Analysis         string   `json:"analysis"`
	Errors           textList `json:"errors"`
	Improvements     textList `json:"improvements"`
	ConceptsToReview textList `json:"concepts_to_review"`
}

func (f *Feedback) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = Feedback{Analysis: s}
		return nil
	}
	type plain Feedback
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return fmt.Errorf("evaluation: %w", err)
	}
	*f = Feedback(p)
	return nil
}

type textList []string

func (l *textList) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*l = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if s = strings.TrimSpace(s); s != "" {
			*l = textList{s}
		} else {
			*l = nil
		}
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	*l = list
	return nil
}

// GradeFor maps a 0-10 score to a letter grade.
func GradeFor(score float64) string {
	switch {
	case score >= 9:
		return "A"
	case score >= 8:
		return "B"
	case score >= 7:
		return "C"
	case score >= 6:
		return "D"
	default:
		return "F"
	}
}

// LetterGrade is the grade the service sent, or one derived from the score.
func (e *Evaluation) LetterGrade() string {
	if g := strings.TrimSpace(e.Grade); g != "" {
		return g
	}
	return GradeFor(e.Score)
}

// Markdown lays the evaluation out for display.
func (e *Evaluation) Markdown() string {
	var sb strings.Builder

	verdict := "Needs Improvement"
	if e.Correct {
		verdict = "Correct Solution"
	}
	fmt.Fprintf(&sb, "## Grade %s · %s/10\n\n", e.LetterGrade(), formatScore(e.Score))
	fmt.Fprintf(&sb, "**%s**", verdict)
	if t, err := time.Parse(time.RFC3339, e.SubmissionTime); err == nil {
		fmt.Fprintf(&sb, " (submitted %s)", t.Local().Format("2 Jan 2006 15:04"))
	}
	sb.WriteString("\n\n")

	if e.Problem != "" {
		fmt.Fprintf(&sb, "> %s\n\n", strings.ReplaceAll(strings.TrimSpace(e.Problem), "\n", "\n> "))
	}

	analysis := e.Feedback.Analysis
	if strings.TrimSpace(analysis) == "" {
		analysis = "Your work has been evaluated."
	}
	sb.WriteString("### Analysis\n\n")
	sb.WriteString(strings.TrimSpace(analysis))
	sb.WriteString("\n\n")

	section(&sb, "Errors", e.Feedback.Errors)
	section(&sb, "Improvements", e.Feedback.Improvements)
	section(&sb, "Concepts to Review", e.Feedback.ConceptsToReview)
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func section(sb *strings.Builder, title string, items textList) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "### %s\n\n", title)
	for _, it := range items {
		fmt.Fprintf(sb, "- %s\n", strings.TrimSpace(it))
	}
	sb.WriteString("\n")
}

func formatScore(s float64) string {
	if s == float64(int64(s)) {
		return fmt.Sprintf("%d", int64(s))
	}
	return fmt.Sprintf("%.1f", s)
}
