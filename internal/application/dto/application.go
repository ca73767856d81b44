package dto

import "time"

type CreateApplicationRequest struct {
	Company       string     `json:"company" binding:"required"`
	RoleTitle     string     `json:"role_title" binding:"required"`
	Status        string     `json:"status"`
	JobURL        string     `json:"job_url"`
	Notes         string     `json:"notes"`
	InterviewDate *time.Time `json:"interview_date"`
	OfferDeadline *time.Time `json:"offer_deadline"`
	FollowUpDate  *time.Time `json:"follow_up_date"`
}

type UpdateApplicationRequest struct {
	Company       string     `json:"company" binding:"required"`
	RoleTitle     string     `json:"role_title" binding:"required"`
	Status        string     `json:"status"`
	JobURL        string     `json:"job_url"`
	Notes         string     `json:"notes"`
	InterviewDate *time.Time `json:"interview_date"`
	OfferDeadline *time.Time `json:"offer_deadline"`
	FollowUpDate  *time.Time `json:"follow_up_date"`
}
