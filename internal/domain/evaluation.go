package domain

import (
	"fmt"
	"time"
)

// Score bounds for every evaluation criterion.
const (
	MinScore = 1
	MaxScore = 10
)

// Evaluation is a supervisor's assessment of an intern.
type Evaluation struct {
	ID                 ID         `json:"id"`
	InternID           ID         `json:"internId"`
	TechnicalScore     int        `json:"technicalScore"`
	CommunicationScore int        `json:"communicationScore"`
	TeamworkScore      int        `json:"teamworkScore"`
	Comments           string     `json:"comments,omitempty"`
	SubmittedAt        *time.Time `json:"submittedAt,omitempty"`
}

// EvaluationPayload is the body of POST /api/evaluations.
type EvaluationPayload struct {
	InternID           string `json:"internId"`
	TechnicalScore     int    `json:"technicalScore"`
	CommunicationScore int    `json:"communicationScore"`
	TeamworkScore      int    `json:"teamworkScore"`
	Comments           string `json:"comments"`
}

// OverallScore is the arithmetic mean of the three criteria.
func (e Evaluation) OverallScore() float64 {
	return MeanScore(e.TechnicalScore, e.CommunicationScore, e.TeamworkScore)
}

// MeanScore averages criterion scores.
func MeanScore(technical, communication, teamwork int) float64 {
	return float64(technical+communication+teamwork) / 3
}

// FormatScore renders a score rounded to one decimal place.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.1f", score)
}
