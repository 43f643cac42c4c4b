// Package bank loads question banks from JSON files and assembles quizzes
// from them: filter, shuffle, trim.
package bank

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/opteron-x86/exam-ace/internal/models"
)

// Store reads question banks from a directory of *.json files.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// ListBanks returns metadata for every parseable bank file, sorted by file
// name. Unreadable or malformed files are skipped, not reported as errors.
func (s *Store) ListBanks() ([]models.BankSummary, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.BankSummary{}, nil
		}
		return nil, fmt.Errorf("failed to read banks directory: %w", err)
	}

	summaries := make([]models.BankSummary, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		bank, err := s.LoadBank(entry.Name())
		if err != nil {
			continue
		}

		typeCounts := make(map[string]int)
		domainCounts := make(map[string]int)
		for _, q := range bank.Questions {
			qtype := string(q.Type)
			if qtype == "" {
				qtype = "unknown"
			}
			typeCounts[qtype]++
			dom := q.Domain
			if dom == "" {
				dom = "?"
			}
			domainCounts[dom]++
		}

		summary := models.BankSummary{
			File:          entry.Name(),
			BankID:        bank.BankID,
			Title:         bank.Title,
			Description:   bank.Description,
			Version:       bank.Version,
			QuestionCount: len(bank.Questions),
			TypeCounts:    typeCounts,
			DomainCounts:  domainCounts,
		}
		if summary.BankID == "" {
			summary.BankID = entry.Name()
		}
		if summary.Title == "" {
			summary.Title = entry.Name()
		}
		if summary.Version == "" {
			summary.Version = "1.0"
		}
		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].File < summaries[j].File })
	return summaries, nil
}

// LoadBank reads a single bank file.
func (s *Store) LoadBank(filename string) (*models.Bank, error) {
	// Bank files are addressed by bare file name only.
	if filepath.Base(filename) != filename {
		return nil, fmt.Errorf("invalid bank file name: %s", filename)
	}
	data, err := os.ReadFile(filepath.Join(s.dir, filename))
	if err != nil {
		return nil, fmt.Errorf("failed to read bank %s: %w", filename, err)
	}
	var bank models.Bank
	if err := json.Unmarshal(data, &bank); err != nil {
		return nil, fmt.Errorf("failed to parse bank %s: %w", filename, err)
	}
	return &bank, nil
}

// LoadQuestions merges the questions of one or more bank files, tagging each
// question with its originating bank.
func (s *Store) LoadQuestions(bankFiles []string) ([]models.Question, error) {
	var questions []models.Question
	for _, fname := range bankFiles {
		bank, err := s.LoadBank(fname)
		if err != nil {
			return nil, err
		}
		bankID := bank.BankID
		if bankID == "" {
			bankID = fname
		}
		for _, q := range bank.Questions {
			q.BankID = bankID
			q.BankFile = fname
			questions = append(questions, q)
		}
	}
	return questions, nil
}
