package dto

type GenerateRequest struct {
	UserRequest string `json:"user_request" validate:"required"`
	Audience    string `json:"audience"`
	Tone        string `json:"tone"`
}
