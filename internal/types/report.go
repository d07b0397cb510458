package types

// Insight is a titled risk or quick win in a report.
type Insight struct {
	Title string `json:"title"`
	Desc  string `json:"desc"`
}

// Report is the narrative analysis returned to the respondent.
// Generated and fallback reports share this exact shape.
type Report struct {
	Summary string    `json:"summary"`
	Risks   []Insight `json:"risks"`
	Wins    []Insight `json:"wins"`
}

// ReportInsightCount is the number of risks and of wins every report carries.
const ReportInsightCount = 2

// IsComplete reports whether the report has a summary and exactly two
// non-empty risks and wins.
func (r Report) IsComplete() bool {
	if r.Summary == "" || len(r.Risks) != ReportInsightCount || len(r.Wins) != ReportInsightCount {
		return false
	}
	for _, items := range [][]Insight{r.Risks, r.Wins} {
		for _, item := range items {
			if item.Title == "" || item.Desc == "" {
				return false
			}
		}
	}
	return true
}
