package models

// Employee is a read-only submitter record sourced from the employee list.
type Employee struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ProfileImage string `json:"profileImage"`
}
