// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package synth

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-quiz/apperr"
	"github.com/danielhkuo/quickly-quiz/models"
)

// MaxOptions caps the number of options offered by the synthesized question
const MaxOptions = 15

// Prompt is the content of the synthesized question
const Prompt = "Which of these answers do you agree with?"

// Rank returns the distinct trimmed non-empty texts ordered by descending
// frequency, ties broken by first occurrence, truncated to MaxOptions.
func Rank(texts []string) []string {
	counts := make(map[string]int)
	var order []string

	for _, t := range texts {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, seen := counts[t]; !seen {
			order = append(order, t)
		}
		counts[t]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > MaxOptions {
		order = order[:MaxOptions]
	}
	return order
}

// Derive builds the aggregate multiple-choice question for a session from the
// free-text answers collected so far. Identifiers are fresh on every call;
// option texts and order depend only on texts.
func Derive(sessionID string, ordinal int, texts []string) (models.Question, error) {
	ranked := Rank(texts)
	if len(ranked) == 0 {
		return models.Question{}, apperr.NoDataf("no answers to build the final question from")
	}

	q := models.Question{
		ID:          uuid.NewString(),
		SessionID:   sessionID,
		Ordinal:     ordinal,
		Content:     Prompt,
		Kind:        models.QuestionMultipleChoice,
		Synthesized: true,
		Options:     make([]models.Option, len(ranked)),
	}
	for i, text := range ranked {
		q.Options[i] = models.Option{
			ID:         uuid.NewString(),
			QuestionID: q.ID,
			Ordinal:    i,
			Text:       text,
		}
	}
	return q, nil
}

// AnswerTexts extracts the free-text content of answers to authored questions
// in submission order. Answers to the synthesized question are skipped.
func AnswerTexts(answers []models.Answer, qs []models.Question) []string {
	skip := make(map[string]bool)
	for _, q := range qs {
		if q.Synthesized || q.Kind != models.QuestionFreeText {
			skip[q.ID] = true
		}
	}

	texts := make([]string, 0, len(answers))
	for _, a := range answers {
		if skip[a.QuestionID] {
			continue
		}
		texts = append(texts, a.Content)
	}
	return texts
}
