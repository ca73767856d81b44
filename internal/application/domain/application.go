package domain

import "time"

// Well-known application statuses. The column is an open label set; the
// scan pipeline only ever writes the three inferred ones below.
const (
	StatusDiscovered   = "Discovered"
	StatusApplied      = "Applied"
	StatusInterviewing = "Interviewing"
	StatusOffer        = "Offer"
	StatusRejected     = "Rejected"
	StatusAccepted     = "Accepted"
	StatusFollowUp     = "FollowUp"
)

// Application is one tracked job application.
type Application struct {
	ID            string     `json:"id" gorm:"primaryKey"`
	UserID        string     `json:"user_id" gorm:"index;not null"`
	Company       string     `json:"company" gorm:"not null"`
	RoleTitle     string     `json:"role_title" gorm:"not null"`
	Status        string     `json:"status" gorm:"not null;default:Applied"`
	JobURL        string     `json:"job_url,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	InterviewDate *time.Time `json:"interview_date,omitempty"`
	OfferDeadline *time.Time `json:"offer_deadline,omitempty"`
	FollowUpDate  *time.Time `json:"follow_up_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
