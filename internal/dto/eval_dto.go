package dto

import "rag-assistant-be/pkg/eval"

type EvaluateRequest struct {
	Mode    string        `json:"mode" validate:"required,oneof=llm rag"`
	Samples []eval.Sample `json:"samples" validate:"required,min=1"`
}
