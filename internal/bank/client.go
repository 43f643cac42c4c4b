package bank

import (
	"math/rand"

	"github.com/opteron-x86/exam-ace/internal/models"
)

// ClientQuestion is the view of a question sent to the quiz UI. Reference
// answers and explanations are present only in study mode; exam mode strips
// them so the client cannot peek.
type ClientQuestion struct {
	ID          string                 `json:"id"`
	Type        models.QuestionType    `json:"type"`
	Domain      string                 `json:"domain,omitempty"`
	Objective   string                 `json:"objective,omitempty"`
	Difficulty  models.DifficultyLevel `json:"difficulty,omitempty"`
	Text        string                 `json:"question,omitempty"`
	Options     []string               `json:"options,omitempty"`
	Tags        []string               `json:"tags,omitempty"`
	SelectCount int                    `json:"select_count,omitempty"`
	Pairs       []models.MatchPair     `json:"pairs,omitempty"`
	Items       []models.DragDropItem  `json:"items,omitempty"`
	Categories  []string               `json:"categories,omitempty"`
	Scenario    string                 `json:"scenario,omitempty"`
	Parts       []ClientQuestion       `json:"parts,omitempty"`
	BankID      string                 `json:"_bank_id,omitempty"`

	// Presentation aids: matching shows a shuffled right column and
	// ordering shows its items in shuffled order.
	ShuffledRights []string `json:"shuffled_rights,omitempty"`
	OrderingItems  []string `json:"ordering_items,omitempty"`

	// Study mode only.
	Correct        string   `json:"correct,omitempty"`
	CorrectList    []string `json:"correct_list,omitempty"`
	CorrectAnswers []string `json:"correct_answers,omitempty"`
	CorrectOrder   []string `json:"correct_order,omitempty"`
	CaseSensitive  bool     `json:"case_sensitive,omitempty"`
	Explanation    string   `json:"explanation,omitempty"`
}

// PrepareClientQuestion converts a bank question into its client view.
func PrepareClientQuestion(q models.Question, includeAnswers bool) ClientQuestion {
	cq := ClientQuestion{
		ID:          q.ID,
		Type:        q.Type,
		Domain:      q.Domain,
		Objective:   q.Objective,
		Difficulty:  q.Difficulty,
		Text:        q.Text,
		Options:     q.Options,
		Tags:        q.Tags,
		SelectCount: q.SelectCount,
		Pairs:       q.Pairs,
		Items:       q.Items,
		Categories:  q.Categories,
		Scenario:    q.ScenarioText,
		BankID:      q.BankID,
	}

	if includeAnswers {
		cq.Correct = q.Correct
		cq.CorrectList = q.CorrectList
		cq.CorrectAnswers = q.CorrectAnswers
		cq.CorrectOrder = q.CorrectOrder
		cq.CaseSensitive = q.CaseSensitive
		cq.Explanation = q.Explanation
	} else if q.Type == models.Matching {
		// Exam mode still needs the pairs' left column; the rights come
		// separately, shuffled.
		lefts := make([]models.MatchPair, len(q.Pairs))
		for i, p := range q.Pairs {
			lefts[i] = models.MatchPair{Left: p.Left}
		}
		cq.Pairs = lefts
	}

	if q.Type == models.Matching {
		rights := make([]string, len(q.Pairs))
		for i, p := range q.Pairs {
			rights[i] = p.Right
		}
		rand.Shuffle(len(rights), func(i, j int) { rights[i], rights[j] = rights[j], rights[i] })
		cq.ShuffledRights = rights
	}

	if q.Type == models.Ordering {
		items := make([]string, len(q.CorrectOrder))
		copy(items, q.CorrectOrder)
		rand.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
		cq.OrderingItems = items
	}

	if q.Type == models.DragDrop && !includeAnswers {
		// Strip the category assignments, keep the draggable texts.
		items := make([]models.DragDropItem, len(q.Items))
		for i, item := range q.Items {
			items[i] = models.DragDropItem{Text: item.Text}
		}
		cq.Items = items
	}

	for _, part := range q.Parts {
		cq.Parts = append(cq.Parts, PrepareClientQuestion(part, includeAnswers))
	}

	return cq
}
