package grading

import (
	"fmt"
	"math"

	"github.com/opteron-x86/exam-ace/internal/models"
)

// QuizGrader folds per-question grades into a QuizReport under one fixed
// scoring configuration.
type QuizGrader struct {
	cfg models.ScoringConfig
}

// UnknownDomain groups responses whose question carries no domain code.
const UnknownDomain = "unknown"

func NewQuizGrader(cfg models.ScoringConfig) *QuizGrader {
	return &QuizGrader{cfg: cfg}
}

// GradeQuiz grades every question in order. Questions without a submitted
// answer are graded against an absent answer; each question is worth one
// point regardless of type or sub-part count.
func (g *QuizGrader) GradeQuiz(questions []models.Question, answers map[string]models.UserAnswer, timeSpentSeconds int) models.QuizReport {
	responses := make([]models.ResponseRecord, 0, len(questions))
	earned := 0.0
	correctCount := 0

	for _, q := range questions {
		answer, ok := answers[q.ID]
		if !ok {
			answer = models.AbsentAnswer()
		}
		result := Grade(q, answer)

		earned += result.PartialScore
		if result.IsCorrect {
			correctCount++
		}

		responses = append(responses, models.ResponseRecord{
			QuestionID:    q.ID,
			QuestionType:  q.Type,
			Domain:        q.Domain,
			Objective:     q.Objective,
			UserAnswer:    answer,
			CorrectAnswer: result.CorrectAnswer,
			IsCorrect:     result.IsCorrect,
			PartialScore:  result.PartialScore,
			Feedback:      result.Feedback,
			PartResults:   result.PartResults,
		})
	}

	total := len(questions)
	pct := 0.0
	if total > 0 {
		pct = earned / float64(total) * 100
	}

	scaled := g.scale(pct)

	return models.QuizReport{
		TotalQuestions:   total,
		CorrectCount:     correctCount,
		EarnedPoints:     round2(earned),
		TotalPoints:      total,
		ScorePercentage:  round1(pct),
		ScaledScore:      scaled,
		Passed:           scaled >= g.cfg.PassingScore,
		PassingScore:     g.cfg.PassingScore,
		TimeSpentSeconds: timeSpentSeconds,
		DomainResults:    g.domainBreakdown(responses),
		Responses:        responses,
	}
}

// scale maps a raw percentage onto the configured score range, clamped to
// the scale bounds.
func (g *QuizGrader) scale(pct float64) int {
	span := float64(g.cfg.ScaleMax - g.cfg.ScaleMin)
	scaled := int(math.Round(float64(g.cfg.ScaleMin) + pct/100*span))
	if scaled < g.cfg.ScaleMin {
		return g.cfg.ScaleMin
	}
	if scaled > g.cfg.ScaleMax {
		return g.cfg.ScaleMax
	}
	return scaled
}

func (g *QuizGrader) domainBreakdown(responses []models.ResponseRecord) map[string]models.DomainResult {
	results := make(map[string]models.DomainResult)

	for _, r := range responses {
		code := r.Domain
		if code == "" {
			code = UnknownDomain
		}
		dr := results[code]
		dr.Total++
		dr.Earned += r.PartialScore
		if r.IsCorrect {
			dr.Correct++
		}
		results[code] = dr
	}

	for code, dr := range results {
		if dr.Total > 0 {
			dr.Percentage = round1(dr.Earned / float64(dr.Total) * 100)
		}
		dr.Earned = round2(dr.Earned)
		if info, ok := g.cfg.DomainWeights[code]; ok {
			dr.Name = info.Name
			dr.Weight = info.Weight
		} else {
			dr.Name = fmt.Sprintf("Domain %s", code)
			dr.Weight = 0
		}
		results[code] = dr
	}

	return results
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
