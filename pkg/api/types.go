// Package api holds the wire types shared by the repofit server, CLI,
// and mock GitHub app.
package api

import "time"

// AnalyzeRequest is the body of POST /analyses.
type AnalyzeRequest struct {
	// Repository accepts "owner/repo", "github.com/owner/repo", or a full
	// https URL (an optional ".git" suffix is tolerated).
	Repository string `json:"repository" binding:"required"`
}

// Report is one persisted analysis result — a single row in the report sink.
type Report struct {
	Id   string `json:"id"`
	Repo string `json:"repo"` // "owner/name"
	Url  string `json:"url"`
	Name string `json:"name"`

	// Repository metadata captured at analysis time.
	Stars       int    `json:"stars"`
	Forks       int    `json:"forks"`
	Description string `json:"description,omitempty"`
	Language    string `json:"language,omitempty"`

	// Aggregated totals over the fetched code files.
	TotalCharacters int `json:"totalCharacters"`
	TotalLines      int `json:"totalLines"`
	FilesSeen       int `json:"filesSeen"`

	// StoppedEarly reports that the file-count ceiling was hit before the
	// whole tree was examined. A partial measurement never meets the budget.
	StoppedEarly bool   `json:"stoppedEarly"`
	MeetsBudget  bool   `json:"meetsBudget"`
	CharBudget   int    `json:"charBudget"`
	Comment      string `json:"comment,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}
