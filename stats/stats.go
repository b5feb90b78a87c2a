// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stats

import (
	"github.com/shopspring/decimal"

	"github.com/danielhkuo/quickly-quiz/models"
)

// Policy controls whether statistics may be read before a session completes
type Policy string

const (
	// PolicyStrict seals statistics until the session is completed
	PolicyStrict Policy = "strict"
	// PolicyLenient returns partial statistics at any time
	PolicyLenient Policy = "lenient"
)

// Valid reports whether p is a known policy
func (p Policy) Valid() bool {
	return p == PolicyStrict || p == PolicyLenient
}

// Allows reports whether statistics for a session in the given status may be read
func (p Policy) Allows(status string) bool {
	if p == PolicyLenient {
		return true
	}
	return status == models.StatusCompleted
}

// Percent returns part/total × 100 rounded to two decimal places, 0 when total is 0
func Percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	pct := decimal.NewFromInt(int64(part)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		Round(2)
	f, _ := pct.Float64()
	return f
}

// Choice aggregates answers to a multiple-choice question per option
func Choice(q models.Question, answers []models.Answer) models.ChoiceStatistics {
	counts := make(map[string]int, len(q.Options))
	for _, a := range answers {
		seen := make(map[string]bool, len(a.SelectedOptions))
		for _, id := range a.SelectedOptions {
			if seen[id] {
				continue
			}
			seen[id] = true
			counts[id]++
		}
	}

	total := len(answers)
	result := models.ChoiceStatistics{
		QuestionID:   q.ID,
		QuestionText: q.Content,
		TotalAnswers: total,
		Options:      make([]models.OptionStatistics, 0, len(q.Options)),
	}
	for _, o := range q.Options {
		result.Options = append(result.Options, models.OptionStatistics{
			OptionID:   o.ID,
			OptionText: o.Text,
			Count:      counts[o.ID],
			Percentage: Percent(counts[o.ID], total),
		})
	}
	return result
}

// Votes tallies votes cast for free-text answers. Percentages are against the
// total votes cast; teams are reported in the order given.
func Votes(answers []models.Answer, votes []models.Vote, teams []models.Team) models.VoteStatistics {
	teamNames := make(map[string]string, len(teams))
	for _, t := range teams {
		teamNames[t.ID] = t.Name
	}

	answerIdx := make(map[string]int, len(answers))
	result := models.VoteStatistics{
		Answers:     make([]models.AnswerView, 0, len(answers)),
		Statistics:  make([]models.AnswerVotes, 0, len(answers)),
		TeamsVoting: make([]models.TeamVotes, 0, len(teams)),
	}
	for i, a := range answers {
		answerIdx[a.ID] = i
		result.Answers = append(result.Answers, models.AnswerView{
			ID:       a.ID,
			Content:  a.Content,
			TeamName: teamNames[a.TeamID],
		})
		result.Statistics = append(result.Statistics, models.AnswerVotes{
			AnswerID:   a.ID,
			Content:    a.Content,
			TeamName:   teamNames[a.TeamID],
			VotedTeams: []string{},
		})
	}

	votedFor := make(map[string][]string)
	for _, v := range votes {
		i, ok := answerIdx[v.AnswerID]
		if !ok {
			continue
		}
		result.TotalVotes++
		result.Statistics[i].Votes++
		result.Statistics[i].VotedTeams = append(result.Statistics[i].VotedTeams, teamNames[v.TeamID])
		votedFor[v.TeamID] = append(votedFor[v.TeamID], answers[i].Content)
	}

	for i := range result.Statistics {
		result.Statistics[i].Percentage = Percent(result.Statistics[i].Votes, result.TotalVotes)
	}

	for _, t := range teams {
		picks := votedFor[t.ID]
		if picks == nil {
			picks = []string{}
		}
		result.TeamsVoting = append(result.TeamsVoting, models.TeamVotes{
			TeamID:   t.ID,
			TeamName: t.Name,
			VotedFor: picks,
		})
	}
	return result
}
