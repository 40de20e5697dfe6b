package models

import "time"

// Recommendation values an analyzer may return.
const (
	RecommendationBuy   = "BUY"
	RecommendationHold  = "HOLD"
	RecommendationAvoid = "AVOID"
)

// Risk ratings an analyzer may return.
const (
	RiskLow    = "LOW"
	RiskMedium = "MEDIUM"
	RiskHigh   = "HIGH"
)

// Screenshot is an uploaded image of investment commentary together with
// the text pulled out of it and, once requested, the paid analysis.
type Screenshot struct {
	ID               int64      `json:"id"`
	ImagePath        string     `json:"image_path"`
	UploadedAt       time.Time  `json:"upload_timestamp"`
	ExtractedText    string     `json:"extracted_text"`
	TickersMentioned []string   `json:"tickers_mentioned"`
	InvestmentThesis string     `json:"investment_thesis"`
	AIAnalyzed       bool       `json:"ai_analyzed"`
	AIAnalysis       *string    `json:"ai_analysis"`
	Recommendation   *string    `json:"recommendation"`
	RiskRating       *string    `json:"risk_rating"`
	AnalysisCost     *float64   `json:"analysis_cost"`
	AnalyzedAt       *time.Time `json:"analyzed_at"`
}

// Analysis is the result of one AI analysis call.
type Analysis struct {
	Text           string
	Recommendation string
	RiskRating     string
	Cost           float64
}
