package models

import "encoding/json"

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	MultipleSelect QuestionType = "multiple_select"
	Matching       QuestionType = "matching"
	Ordering       QuestionType = "ordering"
	DragDrop       QuestionType = "drag_drop"
	FillIn         QuestionType = "fill_in"
	Scenario       QuestionType = "scenario"
)

// QuestionTypeNames maps type codes to their display names.
var QuestionTypeNames = map[QuestionType]string{
	MultipleChoice: "Multiple Choice",
	MultipleSelect: "Multiple Select",
	Matching:       "Matching",
	Ordering:       "Ordering / Sequencing",
	DragDrop:       "Drag and Drop",
	FillIn:         "Fill in the Blank",
	Scenario:       "Scenario-Based",
}

type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "easy"
	DifficultyMedium DifficultyLevel = "medium"
	DifficultyHard   DifficultyLevel = "hard"
)

// MatchPair defines one canonical left→right pairing of a matching question.
type MatchPair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// DragDropItem is one draggable item together with the category it belongs in.
type DragDropItem struct {
	Text            string `json:"text"`
	CorrectCategory string `json:"correct_category"`
}

// Question is the read-only input to grading. The correctness fields used
// depend on Type; the rest stay at their zero values.
//
// In bank files the "correct" field is a string for multiple_choice and a
// list for multiple_select, so unmarshalling splits it into Correct and
// CorrectList.
type Question struct {
	ID         string          `json:"id"`
	Type       QuestionType    `json:"type"`
	Domain     string          `json:"domain,omitempty"`
	Objective  string          `json:"objective,omitempty"`
	Difficulty DifficultyLevel `json:"difficulty,omitempty"`
	Text       string          `json:"question,omitempty"`
	Options    []string        `json:"options,omitempty"`
	Tags       []string        `json:"tags,omitempty"`

	// multiple_choice / multiple_select
	Correct     string   `json:"-"`
	CorrectList []string `json:"-"`
	SelectCount int      `json:"select_count,omitempty"`

	// fill_in
	CorrectAnswers []string `json:"correct_answers,omitempty"`
	CaseSensitive  bool     `json:"case_sensitive,omitempty"`

	// matching
	Pairs []MatchPair `json:"pairs,omitempty"`

	// ordering
	CorrectOrder []string `json:"correct_order,omitempty"`

	// drag_drop
	Items      []DragDropItem `json:"items,omitempty"`
	Categories []string       `json:"categories,omitempty"`

	// scenario: sub-parts are themselves questions of the other six types.
	// Nested scenarios are not supported and grade as an unknown type.
	ScenarioText string     `json:"scenario,omitempty"`
	Parts        []Question `json:"parts,omitempty"`

	Explanation string `json:"explanation,omitempty"`

	// Set by the bank loader, not present in bank files.
	BankID   string `json:"_bank_id,omitempty"`
	BankFile string `json:"_bank_file,omitempty"`
}

type questionAlias Question

type questionJSON struct {
	questionAlias
	RawCorrect json.RawMessage `json:"correct,omitempty"`
}

func (q *Question) UnmarshalJSON(data []byte) error {
	var aux questionJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*q = Question(aux.questionAlias)
	if len(aux.RawCorrect) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(aux.RawCorrect, &s); err == nil {
		q.Correct = s
		return nil
	}
	var list []string
	if err := json.Unmarshal(aux.RawCorrect, &list); err == nil {
		q.CorrectList = list
	}
	// Any other shape is ignored; the grader treats the key as absent.
	return nil
}

func (q Question) MarshalJSON() ([]byte, error) {
	aux := questionJSON{questionAlias: questionAlias(q)}
	switch {
	case q.Correct != "":
		raw, err := json.Marshal(q.Correct)
		if err != nil {
			return nil, err
		}
		aux.RawCorrect = raw
	case len(q.CorrectList) > 0:
		raw, err := json.Marshal(q.CorrectList)
		if err != nil {
			return nil, err
		}
		aux.RawCorrect = raw
	}
	return json.Marshal(aux)
}

// Bank is one question bank file.
type Bank struct {
	BankID      string     `json:"bank_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Version     string     `json:"version,omitempty"`
	Questions   []Question `json:"questions"`
}

// BankSummary is the listing metadata for a bank file.
type BankSummary struct {
	File          string         `json:"file"`
	BankID        string         `json:"bank_id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Version       string         `json:"version"`
	QuestionCount int            `json:"question_count"`
	TypeCounts    map[string]int `json:"type_counts"`
	DomainCounts  map[string]int `json:"domain_counts"`
}
