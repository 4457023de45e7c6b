package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Section is one titled block of the structured analysis. Number is the
// heading index the model emitted; Title excludes it.
type Section struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// AnalysisResult is the outcome of a one-shot document analysis.
// ChartData is the raw JSON object found between the chart sentinels, or nil
// when the block was absent or syntactically invalid. RawText keeps the full
// extracted document text for later conversational grounding.
type AnalysisResult struct {
	Sections  []Section       `json:"sections"`
	Analysis  string          `json:"analysis"`
	ChartData json.RawMessage `json:"chart_data"`
	RawText   string          `json:"raw_text"`
	Language  Language        `json:"language"`
}

// ChartSeries is the typed view of a chart data block. Decoding into it is
// best effort and only done at the edges (spreadsheet export); the parser
// itself never validates shape beyond JSON syntax.
type ChartSeries struct {
	Years     []float64 `json:"years"`
	Revenue   []float64 `json:"revenue"`
	NetIncome []float64 `json:"netIncome"`
}

// ChatMessage is a single immutable conversation turn.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// CurrentAnalysis is the ephemeral per-session snapshot of the active
// analysis, mirrored to the client so a reload can restore it.
type CurrentAnalysis struct {
	Company   string          `json:"company"`
	Analysis  string          `json:"analysis"`
	RawText   string          `json:"raw_text"`
	ChartData json.RawMessage `json:"chart_data,omitempty"`
}

// SavedAnalysis is a durable archive entry.
type SavedAnalysis struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	Company   string          `db:"company" json:"company"`
	Analysis  string          `db:"analysis" json:"analysis"`
	ChartData json.RawMessage `db:"chart_data" json:"chart_data,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// Note is a free-text comment left by a reviewer.
type Note struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Author    string    `db:"author" json:"author"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Rating is a five-point score on an analyzed company.
type Rating struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Company   string    `db:"company" json:"company"`
	Score     int       `db:"score" json:"score"`
	Comment   string    `db:"comment" json:"comment"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
