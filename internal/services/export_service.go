package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/opteron-x86/exam-ace/internal/models"
	"github.com/opteron-x86/exam-ace/internal/repositories"
	"github.com/opteron-x86/exam-ace/internal/utils"
)

// ExportService renders study history and bank contents as Excel workbooks.
type ExportService interface {
	ExportHistory(ctx context.Context) ([]byte, error)
	ExportBank(ctx context.Context, bankFile string) ([]byte, error)
}

type exportService struct {
	repo   repositories.Repository
	banks  BankLoader
	logger utils.Logger
}

func NewExportService(repo repositories.Repository, banks BankLoader, logger utils.Logger) ExportService {
	return &exportService{repo: repo, banks: banks, logger: logger}
}

func (s *exportService) ExportHistory(ctx context.Context) ([]byte, error) {
	sessions, err := s.repo.Session().List(ctx, repositories.SessionFilters{Limit: 1000})
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}

	f := excelize.NewFile()
	sheetName := "Sessions"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"Session ID", "Mode", "Started At", "Completed At", "Time Spent (s)",
		"Questions", "Correct", "Score %", "Scaled Score", "Passed",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, session := range sessions {
		completedAt := ""
		if session.CompletedAt != nil {
			completedAt = session.CompletedAt.UTC().Format(time.RFC3339)
		}
		row := []any{
			session.ID,
			string(session.Mode),
			session.StartedAt.UTC().Format(time.RFC3339),
			completedAt,
			session.TimeSpentSeconds,
			session.TotalQuestions,
			session.CorrectCount,
			session.ScorePercentage,
			session.ScaledScore,
			session.Passed,
		}
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	if err := s.writeResponsesSheet(ctx, f, sessions); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *exportService) writeResponsesSheet(ctx context.Context, f *excelize.File, sessions []*models.QuizSession) error {
	sheetName := "Responses"
	if _, err := f.NewSheet(sheetName); err != nil {
		return fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	headers := []string{
		"Session ID", "Question ID", "Type", "Domain", "Objective",
		"Correct", "Partial Score", "Time Spent (s)",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	rowIndex := 0
	for _, session := range sessions {
		responses, err := s.repo.Response().GetBySession(ctx, session.ID)
		if err != nil {
			return fmt.Errorf("failed to load responses for %s: %w", session.ID, err)
		}
		for _, resp := range responses {
			row := []any{
				resp.SessionID,
				resp.QuestionID,
				string(resp.QuestionType),
				resp.Domain,
				resp.Objective,
				resp.IsCorrect,
				resp.PartialScore,
				resp.TimeSpentSeconds,
			}
			for colIndex, value := range row {
				cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
				f.SetCellValue(sheetName, cell, value)
			}
			rowIndex++
		}
	}
	return nil
}

func (s *exportService) ExportBank(ctx context.Context, bankFile string) ([]byte, error) {
	questions, err := s.banks.LoadQuestions([]string{bankFile})
	if err != nil {
		return nil, ErrBankNotFound
	}

	f := excelize.NewFile()
	sheetName := "Questions"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"Question ID", "Type", "Domain", "Objective", "Difficulty",
		"Question", "Options", "Reference Answer", "Explanation",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, q := range questions {
		row := []any{
			q.ID,
			string(q.Type),
			q.Domain,
			q.Objective,
			string(q.Difficulty),
			q.Text,
			strings.Join(q.Options, "; "),
			referenceAnswerCell(q),
			q.Explanation,
		}
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

// referenceAnswerCell flattens a question's reference answer into one cell.
func referenceAnswerCell(q models.Question) string {
	switch q.Type {
	case models.MultipleChoice:
		return q.Correct
	case models.MultipleSelect:
		return strings.Join(q.CorrectList, "; ")
	case models.FillIn:
		return strings.Join(q.CorrectAnswers, "; ")
	case models.Ordering:
		return strings.Join(q.CorrectOrder, " -> ")
	case models.Matching:
		pairs := make([]string, len(q.Pairs))
		for i, p := range q.Pairs {
			pairs[i] = p.Left + " = " + p.Right
		}
		return strings.Join(pairs, "; ")
	case models.DragDrop:
		items := make([]string, len(q.Items))
		for i, item := range q.Items {
			items[i] = item.Text + " -> " + item.CorrectCategory
		}
		return strings.Join(items, "; ")
	case models.Scenario:
		return fmt.Sprintf("%d parts", len(q.Parts))
	default:
		return ""
	}
}
