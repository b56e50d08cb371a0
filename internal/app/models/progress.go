package models

import "fmt"

// Progress is a student's cumulative completion and score state, stored
// as a single JSONB document on the student's row.
type Progress struct {
	CompletedTasks      int             `json:"completedTasks"`      // Number of graded task submissions
	WeeklyScores        map[string]int  `json:"weeklyScores"`        // Week number (as string key) -> total score
	CompletedContent    []int           `json:"completedContent"`    // Weeks whose content is fully consumed
	ResourceCompletions map[string]bool `json:"resourceCompletions"` // "{week}-{resourceIndex}" -> completed
}

// NewProgress returns the zero progress state with non-nil containers,
// so the JSONB document never serializes null maps.
func NewProgress() Progress {
	return Progress{
		WeeklyScores:        map[string]int{},
		CompletedContent:    []int{},
		ResourceCompletions: map[string]bool{},
	}
}

// ResourceKey builds the resourceCompletions key for a week's resource
func ResourceKey(week, resourceIndex int) string {
	return fmt.Sprintf("%d-%d", week, resourceIndex)
}

// HasCompletedContent reports whether the week is in the completed set
func (p *Progress) HasCompletedContent(week int) bool {
	for _, w := range p.CompletedContent {
		if w == week {
			return true
		}
	}
	return false
}

// AddCompletedContent adds a week to the completed set; already-present
// weeks are left alone so repeated calls stay idempotent.
func (p *Progress) AddCompletedContent(week int) {
	if !p.HasCompletedContent(week) {
		p.CompletedContent = append(p.CompletedContent, week)
	}
}

// RemoveCompletedContent removes a week from the completed set; removing
// an absent week is a no-op.
func (p *Progress) RemoveCompletedContent(week int) {
	kept := p.CompletedContent[:0]
	for _, w := range p.CompletedContent {
		if w != week {
			kept = append(kept, w)
		}
	}
	p.CompletedContent = kept
}
