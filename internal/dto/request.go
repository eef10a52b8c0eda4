package dto

type CreateApplicationRequest struct {
	UserID uint `json:"user_id"`
}

type ReviewApplicationRequest struct {
	Decision string `json:"decision"`
}

type AddParticipantRequest struct {
	UserID uint `json:"user_id"`
}
