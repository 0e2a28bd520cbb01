// Package transport defines the request and response DTOs for the leads API.
package transport

import (
	"time"

	"leadcrm_backend/internal/leads/domain"
	"leadcrm_backend/internal/leads/scoring"

	"github.com/google/uuid"
)

// Request DTOs

type CreateLeadRequest struct {
	Name    string  `json:"name" validate:"required,min=1,max=200"`
	Email   string  `json:"email" validate:"required,email"`
	Company *string `json:"company,omitempty" validate:"omitempty,max=200"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,min=5,max=30"`
	Message *string `json:"message,omitempty" validate:"omitempty,max=5000"`
	Source  string  `json:"source,omitempty" validate:"omitempty,oneof=website contact_form ebook_download trial_signup newsletter demo_request"`
}

type UpdateLeadRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Company *string `json:"company,omitempty" validate:"omitempty,max=200"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,min=5,max=30"`
	Message *string `json:"message,omitempty" validate:"omitempty,max=5000"`
	Source  *string `json:"source,omitempty" validate:"omitempty,oneof=website contact_form ebook_download trial_signup newsletter demo_request"`
}

type UpdateLeadStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new contacted negotiation closed lost"`
}

type UpdateLeadScoreRequest struct {
	Score *int `json:"score" validate:"required,min=0,max=100"`
}

type ListLeadsRequest struct {
	Status string `form:"status" validate:"omitempty,oneof=new contacted negotiation closed lost"`
	Source string `form:"source" validate:"omitempty,oneof=website contact_form ebook_download trial_signup newsletter demo_request"`
	Search string `form:"search" validate:"max=100"`
	Limit  int    `form:"limit" validate:"omitempty,min=1,max=200"`
	Offset int    `form:"offset" validate:"omitempty,min=0"`
}

type CreateNoteRequest struct {
	Content      string     `json:"content" validate:"required,min=1,max=5000"`
	NoteType     string     `json:"noteType,omitempty" validate:"omitempty,oneof=note follow_up call email meeting"`
	FollowUpDate *time.Time `json:"followUpDate,omitempty"`
}

type UpsertGoalRequest struct {
	Month           int   `json:"month" validate:"required,min=1,max=12"`
	Year            int   `json:"year" validate:"required,min=2000,max=2100"`
	LeadsGoal       int   `json:"leadsGoal" validate:"min=0"`
	ConversionsGoal int   `json:"conversionsGoal" validate:"min=0"`
	RevenueGoal     int64 `json:"revenueGoal" validate:"min=0"`
}

// Response DTOs

type LeadResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Company      *string   `json:"company,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	Message      *string   `json:"message,omitempty"`
	Source       string    `json:"source"`
	Score        int       `json:"score"`
	Band         string    `json:"band"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActivity time.Time `json:"lastActivity"`
}

func LeadFromDomain(lead domain.Lead) LeadResponse {
	return LeadResponse{
		ID:           lead.ID,
		Name:         lead.Name,
		Email:        lead.Email,
		Company:      lead.Company,
		Phone:        lead.Phone,
		Message:      lead.Message,
		Source:       string(lead.Source),
		Score:        lead.Score,
		Band:         string(scoring.Classify(lead.Score)),
		Status:       string(lead.Status),
		CreatedAt:    lead.CreatedAt,
		LastActivity: lead.LastActivity,
	}
}

func LeadsFromDomain(leads []domain.Lead) []LeadResponse {
	out := make([]LeadResponse, len(leads))
	for i, lead := range leads {
		out[i] = LeadFromDomain(lead)
	}
	return out
}

type NoteResponse struct {
	ID           uuid.UUID  `json:"id"`
	LeadID       uuid.UUID  `json:"leadId"`
	Content      string     `json:"content"`
	NoteType     string     `json:"noteType"`
	FollowUpDate *time.Time `json:"followUpDate,omitempty"`
	Completed    bool       `json:"completed"`
	Overdue      bool       `json:"overdue"`
	CreatedAt    time.Time  `json:"createdAt"`
}

func NoteFromDomain(note domain.Note, overdue bool) NoteResponse {
	return NoteResponse{
		ID:           note.ID,
		LeadID:       note.LeadID,
		Content:      note.Content,
		NoteType:     string(note.NoteType),
		FollowUpDate: note.FollowUpDate,
		Completed:    note.Completed,
		Overdue:      overdue,
		CreatedAt:    note.CreatedAt,
	}
}

type SalesGoalResponse struct {
	ID              uuid.UUID `json:"id"`
	Month           int       `json:"month"`
	Year            int       `json:"year"`
	LeadsGoal       int       `json:"leadsGoal"`
	ConversionsGoal int       `json:"conversionsGoal"`
	RevenueGoal     int64     `json:"revenueGoal"`
}

func GoalFromDomain(goal domain.SalesGoal) SalesGoalResponse {
	return SalesGoalResponse{
		ID:              goal.ID,
		Month:           goal.Month,
		Year:            goal.Year,
		LeadsGoal:       goal.LeadsGoal,
		ConversionsGoal: goal.ConversionsGoal,
		RevenueGoal:     goal.RevenueGoal,
	}
}
