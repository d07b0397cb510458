package types

// SubmissionRequest is the body of POST /api/submit.
// Scores are accepted for compatibility but recomputed from Responses.
type SubmissionRequest struct {
	LeadData  LeadData       `json:"leadData"`
	Scores    *ScoreSet      `json:"scores,omitempty"`
	Responses map[string]int `json:"responses"`
}

// SubmissionResponse is the reply to POST /api/submit.
type SubmissionResponse struct {
	Success  bool    `json:"success"`
	Analysis *Report `json:"analysis,omitempty"`
	Error    string  `json:"error,omitempty"`
}

// ScoreRequest is the body of POST /api/score.
type ScoreRequest struct {
	Responses map[string]int `json:"responses"`
}

// ScoreResponse is the score preview shown before the lead gate.
type ScoreResponse struct {
	Scores     ScoreSet         `json:"scores"`
	MaxScore   int              `json:"max_score"`
	Percent    int              `json:"percent"`
	Tier       Tier             `json:"tier"`
	Strongest  DimensionScore   `json:"strongest"`
	Weakest    DimensionScore   `json:"weakest"`
	Dimensions []DimensionScore `json:"dimensions"`
}
