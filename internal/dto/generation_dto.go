package dto

import (
	"github.com/google/uuid"
)

type GenerateResponse struct {
	SessionId       uuid.UUID              `json:"session_id"`
	Insights        []string               `json:"insights"`
	SentenceOfTruth SentenceResponse       `json:"sentence_of_truth"`
	NecessaryMoves  []string               `json:"necessary_moves"`
	Extras          map[string]interface{} `json:"extras,omitempty"`
}

// SaveAIOutputsInput is the service-level payload for persisting a generation
// result. Lock semantics are applied at save time, not here.
type SaveAIOutputsInput struct {
	Insights        []string
	SentenceOfTruth string
	NecessaryMoves  []string
}
