// Package dto defines the request and response bodies for the v1 API.
package dto

import "github.com/adavadkardhruv13/Polaris-backend/domain/pitch"

// PitchRequest is the body of POST /analyze_pitch.
type PitchRequest struct {
	Pitch string `json:"pitch"`
}

// AnalysisResponse is the envelope returned by both analysis endpoints.
type AnalysisResponse struct {
	Status         string         `json:"status"`
	Analysis       pitch.Feedback `json:"analysis"`
	ProcessingTime float64        `json:"processing_time"`
}

// NewAnalysisResponse wraps a feedback report in the success envelope.
func NewAnalysisResponse(fb pitch.Feedback) AnalysisResponse {
	return AnalysisResponse{
		Status:         "success",
		Analysis:       fb,
		ProcessingTime: fb.ProcessingTime,
	}
}
