// Package grading implements the answer-scoring engine: one grading rule per
// question type plus the aggregation of a full quiz submission into a scaled
// score with a per-domain breakdown.
//
// Grading is pure and total: every function accepts malformed or absent
// answers and degrades them to zero credit instead of returning an error.
package grading

import (
	"fmt"
	"strings"

	"github.com/opteron-x86/exam-ace/internal/models"
)

// Grade scores a single question against a submitted answer, dispatching on
// the question type. An unrecognized type yields an incorrect result with
// descriptive feedback rather than an error.
func Grade(q models.Question, answer models.UserAnswer) models.GradeResult {
	switch q.Type {
	case models.MultipleChoice:
		return gradeMultipleChoice(q, answer)
	case models.MultipleSelect:
		return gradeMultipleSelect(q, answer)
	case models.Matching:
		return gradeMatching(q, answer)
	case models.Ordering:
		return gradeOrdering(q, answer)
	case models.DragDrop:
		return gradeDragDrop(q, answer)
	case models.FillIn:
		return gradeFillIn(q, answer)
	case models.Scenario:
		return gradeScenario(q, answer)
	default:
		return models.GradeResult{
			Feedback: fmt.Sprintf("unknown question type: %s", q.Type),
		}
	}
}

func gradeMultipleChoice(q models.Question, answer models.UserAnswer) models.GradeResult {
	correct := answer.Kind == models.AnswerScalar && answer.Scalar == q.Correct
	return models.GradeResult{
		IsCorrect:     correct,
		PartialScore:  binaryScore(correct),
		CorrectAnswer: q.Correct,
		Feedback:      q.Explanation,
	}
}

func gradeMultipleSelect(q models.Question, answer models.UserAnswer) models.GradeResult {
	correctSet := toSet(q.CorrectList)
	userSet := map[string]struct{}{}
	if answer.Kind == models.AnswerList {
		userSet = toSet(answer.List)
	}

	result := models.GradeResult{
		CorrectAnswer: q.CorrectList,
		Feedback:      q.Explanation,
	}

	if setsEqual(userSet, correctSet) && len(correctSet) > 0 {
		result.IsCorrect = true
		result.PartialScore = 1.0
		return result
	}

	// Partial credit: right picks minus wrong picks over the size of the
	// correct set, floored at zero. Different answer sets can land on the
	// same score; only exact set equality counts as correct.
	rightPicks, wrongPicks := 0, 0
	for item := range userSet {
		if _, ok := correctSet[item]; ok {
			rightPicks++
		} else {
			wrongPicks++
		}
	}
	if len(correctSet) > 0 {
		result.PartialScore = clamp01(float64(max(0, rightPicks-wrongPicks)) / float64(len(correctSet)))
	}
	return result
}

func gradeMatching(q models.Question, answer models.UserAnswer) models.GradeResult {
	correctMap := make(map[string]string, len(q.Pairs))
	for _, p := range q.Pairs {
		correctMap[p.Left] = p.Right
	}

	matched := 0
	if answer.Kind == models.AnswerMapping {
		for left, v := range answer.Mapping {
			if right, ok := correctMap[left]; ok && v.Kind == models.AnswerScalar && right == v.Scalar {
				matched++
			}
		}
	}

	total := len(q.Pairs)
	score := 0.0
	if total > 0 {
		score = float64(matched) / float64(total)
	}
	return models.GradeResult{
		IsCorrect:     total > 0 && matched == total,
		PartialScore:  score,
		CorrectAnswer: correctMap,
		Feedback:      q.Explanation,
	}
}

func gradeOrdering(q models.Question, answer models.UserAnswer) models.GradeResult {
	var userOrder []string
	if answer.Kind == models.AnswerList {
		userOrder = answer.List
	}

	result := models.GradeResult{
		CorrectAnswer: q.CorrectOrder,
		Feedback:      q.Explanation,
	}

	total := len(q.CorrectOrder)
	if total > 0 && slicesEqual(userOrder, q.CorrectOrder) {
		result.IsCorrect = true
		result.PartialScore = 1.0
		return result
	}

	inPosition := 0
	for i, item := range userOrder {
		if i < total && item == q.CorrectOrder[i] {
			inPosition++
		}
	}
	if total > 0 {
		result.PartialScore = float64(inPosition) / float64(total)
	}
	return result
}

func gradeDragDrop(q models.Question, answer models.UserAnswer) models.GradeResult {
	correctMap := make(map[string]string, len(q.Items))
	for _, item := range q.Items {
		correctMap[item.Text] = item.CorrectCategory
	}

	matched := 0
	if answer.Kind == models.AnswerMapping {
		for text, v := range answer.Mapping {
			if category, ok := correctMap[text]; ok && v.Kind == models.AnswerScalar && category == v.Scalar {
				matched++
			}
		}
	}

	total := len(q.Items)
	score := 0.0
	if total > 0 {
		score = float64(matched) / float64(total)
	}
	return models.GradeResult{
		IsCorrect:     total > 0 && matched == total,
		PartialScore:  score,
		CorrectAnswer: correctMap,
		Feedback:      q.Explanation,
	}
}

func gradeFillIn(q models.Question, answer models.UserAnswer) models.GradeResult {
	userStr := ""
	if answer.Kind == models.AnswerScalar {
		userStr = strings.TrimSpace(answer.Scalar)
	}

	candidates := q.CorrectAnswers
	if !q.CaseSensitive {
		userStr = strings.ToLower(userStr)
		lowered := make([]string, len(candidates))
		for i, c := range candidates {
			lowered[i] = strings.ToLower(c)
		}
		candidates = lowered
	}

	// Strip currency symbols and thousands separators so "$1,200" can match
	// a canonical "1200".
	userClean := cleanFillIn(userStr)
	correct := false
	for _, c := range candidates {
		if userStr != "" && userStr == c {
			correct = true
			break
		}
		if userClean != "" && userClean == cleanFillIn(c) {
			correct = true
			break
		}
	}

	return models.GradeResult{
		IsCorrect:     correct,
		PartialScore:  binaryScore(correct),
		CorrectAnswer: q.CorrectAnswers,
		Feedback:      q.Explanation,
	}
}

func gradeScenario(q models.Question, answer models.UserAnswer) models.GradeResult {
	var userParts map[string]models.UserAnswer
	if answer.Kind == models.AnswerMapping {
		userParts = answer.Mapping
	}

	partResults := make([]models.PartResult, 0, len(q.Parts))
	totalScore := 0.0
	allCorrect := true

	for _, part := range q.Parts {
		partAnswer := models.AbsentAnswer()
		if sub, ok := userParts[part.ID]; ok {
			partAnswer = sub
		}
		sub := part
		if sub.Type == models.Scenario {
			// No nested scenarios; grade as an unknown type.
			sub.Type = ""
		}
		res := Grade(sub, partAnswer)
		partResults = append(partResults, models.PartResult{PartID: part.ID, GradeResult: res})
		totalScore += res.PartialScore
		if !res.IsCorrect {
			allCorrect = false
		}
	}

	avg := 0.0
	if len(q.Parts) > 0 {
		avg = totalScore / float64(len(q.Parts))
	} else {
		allCorrect = false
	}

	correctAnswers := make(map[string]any, len(q.Parts))
	for _, part := range q.Parts {
		correctAnswers[part.ID] = canonicalAnswer(part)
	}

	return models.GradeResult{
		IsCorrect:     allCorrect,
		PartialScore:  avg,
		CorrectAnswer: correctAnswers,
		Feedback:      q.Explanation,
		PartResults:   partResults,
	}
}

// canonicalAnswer picks the display form of a sub-part's reference answer,
// preferring the single-answer field, then the multi-answer fields, then the
// ordered sequence. A part with none of them yields nil.
func canonicalAnswer(q models.Question) any {
	switch {
	case q.Correct != "":
		return q.Correct
	case len(q.CorrectList) > 0:
		return q.CorrectList
	case len(q.CorrectAnswers) > 0:
		return q.CorrectAnswers
	case len(q.CorrectOrder) > 0:
		return q.CorrectOrder
	default:
		return nil
	}
}

func cleanFillIn(s string) string {
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	return strings.TrimSpace(s)
}

func binaryScore(correct bool) float64 {
	if correct {
		return 1.0
	}
	return 0.0
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

func setsEqual(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for item := range a {
		if _, ok := b[item]; !ok {
			return false
		}
	}
	return true
}

func slicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
