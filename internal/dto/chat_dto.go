package dto

import "time"

type SendChatRequest struct {
	Question  string `json:"question" validate:"required"`
	SessionId string `json:"session_id"`
}

type SendChatResponse struct {
	Answer    string `json:"answer"`
	SessionId string `json:"session_id"`
}

type GetChatHistoryResponse struct {
	Id        int64     `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
