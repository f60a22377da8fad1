package models

import "time"

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

type VoteType string

const (
	VoteUp   VoteType = "upvote"
	VoteDown VoteType = "downvote"
)

// Idea is a feature proposal. EmployeeName and EmployeeImage are a snapshot
// of the submitter taken at creation time.
type Idea struct {
	ID            string    `bson:"id" json:"id"`
	Summary       string    `bson:"summary" json:"summary"`
	Description   string    `bson:"description" json:"description"`
	EmployeeID    string    `bson:"employee_id" json:"employeeId"`
	EmployeeName  string    `bson:"employee_name" json:"employeeName"`
	EmployeeImage string    `bson:"employee_image" json:"employeeImage"`
	Priority      Priority  `bson:"priority" json:"priority"`
	Upvotes       int       `bson:"upvotes" json:"upvotes"`
	Downvotes     int       `bson:"downvotes" json:"downvotes"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
}

type CreateIdeaInput struct {
	Summary     string
	Description string
	EmployeeID  string
	Priority    Priority
}

type ListParams struct {
	Page   int
	Limit  int
	Search string
}

type PaginatedIdeas struct {
	Ideas       []Idea `json:"ideas"`
	TotalIdeas  int    `json:"totalIdeas"`
	TotalPages  int    `json:"totalPages"`
	CurrentPage int    `json:"currentPage"`
}
