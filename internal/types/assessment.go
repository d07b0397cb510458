// Package types provides type definitions for structured data used throughout the assessment service.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "fmt"

// MaxResponseValue is the highest value on the three-point answer scale (0, 1, 2).
const MaxResponseValue = 2

// Question is a single statement the respondent rates on the 0-2 scale.
type Question struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Section groups related questions under one maturity dimension.
type Section struct {
	ID        string     `json:"id"`
	Number    int        `json:"number"`
	Title     string     `json:"title"`
	Focus     string     `json:"focus"`
	Questions []Question `json:"questions"`
}

// MaxScore is the highest total the section can reach.
func (s Section) MaxScore() int {
	return MaxResponseValue * len(s.Questions)
}

// DisplayTitle returns the numbered title shown in the questionnaire, e.g. "1. GTM Foundations".
func (s Section) DisplayTitle() string {
	return fmt.Sprintf("%d. %s", s.Number, s.Title)
}

// Tier is one of the ordered maturity bands over the total score range.
// Min and Max are inclusive.
type Tier struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Min         int    `json:"min"`
	Max         int    `json:"max"`
}

// Contains reports whether total falls inside the band.
func (t Tier) Contains(total int) bool {
	return total >= t.Min && total <= t.Max
}

// DimensionScore is a section score normalized against its own maximum.
type DimensionScore struct {
	SectionID string `json:"section_id"`
	Title     string `json:"title"`
	Score     int    `json:"score"`
	Max       int    `json:"max"`
	Percent   int    `json:"percent"`
}

// Ranking orders dimensions by normalized score and names the extremes.
type Ranking struct {
	Dimensions []DimensionScore `json:"dimensions"`
	Strongest  DimensionScore   `json:"strongest"`
	Weakest    DimensionScore   `json:"weakest"`
}
