// Package catalog defines the fixed RevOps maturity questionnaire.
// All section maxima and the global maximum are derived from the question list.
package catalog

import (
	"fmt"

	"github.com/jonathan/revops-assessment/internal/types"
)

// Catalog is an immutable, ordered set of sections.
type Catalog struct {
	sections      []types.Section
	sectionIndex  map[string]int
	questionOwner map[string]string
	questionIDs   []string
	globalMax     int
}

// New builds a catalog from sections in declaration order.
// Section and question IDs must be unique and every section needs at least one question.
func New(sections []types.Section) (*Catalog, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("catalog requires at least one section")
	}

	c := &Catalog{
		sections:      make([]types.Section, len(sections)),
		sectionIndex:  make(map[string]int, len(sections)),
		questionOwner: make(map[string]string),
	}

	for i, section := range sections {
		if section.ID == "" {
			return nil, fmt.Errorf("section %d has an empty id", i+1)
		}
		if section.ID == types.TotalKey {
			return nil, fmt.Errorf("section id %q is reserved", types.TotalKey)
		}
		if _, dup := c.sectionIndex[section.ID]; dup {
			return nil, fmt.Errorf("duplicate section id %q", section.ID)
		}
		if len(section.Questions) == 0 {
			return nil, fmt.Errorf("section %q has no questions", section.ID)
		}

		questions := make([]types.Question, len(section.Questions))
		copy(questions, section.Questions)
		for _, q := range questions {
			if q.ID == "" {
				return nil, fmt.Errorf("section %q has a question with an empty id", section.ID)
			}
			if owner, dup := c.questionOwner[q.ID]; dup {
				return nil, fmt.Errorf("duplicate question id %q in sections %q and %q", q.ID, owner, section.ID)
			}
			c.questionOwner[q.ID] = section.ID
			c.questionIDs = append(c.questionIDs, q.ID)
		}

		section.Questions = questions
		c.sections[i] = section
		c.sectionIndex[section.ID] = i
		c.globalMax += section.MaxScore()
	}

	return c, nil
}

// MustNew is New that panics on error. Use it only for static definitions.
func MustNew(sections []types.Section) *Catalog {
	c, err := New(sections)
	if err != nil {
		panic(fmt.Sprintf("invalid catalog: %v", err))
	}
	return c
}

// Sections returns a deep copy of the sections in declaration order.
func (c *Catalog) Sections() []types.Section {
	out := make([]types.Section, len(c.sections))
	for i, s := range c.sections {
		out[i] = cloneSection(s)
	}
	return out
}

// Section looks up a section by ID.
func (c *Catalog) Section(id string) (types.Section, bool) {
	i, ok := c.sectionIndex[id]
	if !ok {
		return types.Section{}, false
	}
	return cloneSection(c.sections[i]), true
}

func cloneSection(s types.Section) types.Section {
	questions := make([]types.Question, len(s.Questions))
	copy(questions, s.Questions)
	s.Questions = questions
	return s
}

// SectionMax returns the maximum score of a section, or 0 if unknown.
func (c *Catalog) SectionMax(id string) int {
	i, ok := c.sectionIndex[id]
	if !ok {
		return 0
	}
	return c.sections[i].MaxScore()
}

// GlobalMax is the sum of every section maximum.
func (c *Catalog) GlobalMax() int {
	return c.globalMax
}

// HasQuestion reports whether the ID belongs to any section.
func (c *Catalog) HasQuestion(id string) bool {
	_, ok := c.questionOwner[id]
	return ok
}

// SectionOf returns the section ID that owns a question.
func (c *Catalog) SectionOf(questionID string) (string, bool) {
	id, ok := c.questionOwner[questionID]
	return id, ok
}

// QuestionIDs returns every question ID in catalog order.
func (c *Catalog) QuestionIDs() []string {
	out := make([]string, len(c.questionIDs))
	copy(out, c.questionIDs)
	return out
}

// QuestionCount is the number of questions across all sections.
func (c *Catalog) QuestionCount() int {
	return len(c.questionIDs)
}
