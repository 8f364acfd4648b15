package dto

import "time"

type CreateSessionResponse struct {
	SessionId string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}

type SessionInfoResponse struct {
	SessionId      string    `json:"session_id"`
	CreatedAt      time.Time `json:"created_at"`
	UploadedImages int       `json:"uploaded_images"`
	TotalArtifacts int       `json:"total_artifacts"`
}
