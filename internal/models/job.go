package models

import "time"

// JobStatus is the stage of an application.
type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusReject    JobStatus = "reject"
	StatusInterview JobStatus = "interview"
)

// Valid reports whether s is one of the known statuses.
func (s JobStatus) Valid() bool {
	switch s {
	case StatusPending, StatusReject, StatusInterview:
		return true
	}
	return false
}

// WorkType is the engagement type of a posting.
type WorkType string

const (
	WorkFullTime   WorkType = "full_time"
	WorkPartTime   WorkType = "part_time"
	WorkFreelance  WorkType = "freelance"
	WorkInternship WorkType = "internship"
)

// Valid reports whether w is one of the known work types.
func (w WorkType) Valid() bool {
	switch w {
	case WorkFullTime, WorkPartTime, WorkFreelance, WorkInternship:
		return true
	}
	return false
}

const (
	DefaultWorkLocation = "Bangalore"
	MaxPositionLength   = 100
)

// Job is a posting tracked by its owner.
type Job struct {
	ID           string    `json:"_id" bson:"_id"`
	Company      string    `json:"company" bson:"company"`
	Position     string    `json:"position" bson:"position"`
	Status       JobStatus `json:"status" bson:"status"`
	WorkType     WorkType  `json:"work_type" bson:"work_type"`
	WorkLocation string    `json:"work_location" bson:"work_location"`
	CreatedBy    string    `json:"createdBy" bson:"created_by"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updated_at"`
}

// ApplyDefaults fills the optional fields a new job starts with.
func (j *Job) ApplyDefaults() {
	if j.Status == "" {
		j.Status = StatusPending
	}
	if j.WorkType == "" {
		j.WorkType = WorkFullTime
	}
	if j.WorkLocation == "" {
		j.WorkLocation = DefaultWorkLocation
	}
}

// JobUpdate carries the fields of a job that may change. Nil fields are left untouched.
type JobUpdate struct {
	Company      *string
	Position     *string
	Status       *JobStatus
	WorkType     *WorkType
	WorkLocation *string
}

// Empty reports whether the update changes nothing.
func (u JobUpdate) Empty() bool {
	return u.Company == nil && u.Position == nil && u.Status == nil && u.WorkType == nil && u.WorkLocation == nil
}

// Apply copies the set fields of u onto j.
func (u JobUpdate) Apply(j *Job) {
	if u.Company != nil {
		j.Company = *u.Company
	}
	if u.Position != nil {
		j.Position = *u.Position
	}
	if u.Status != nil {
		j.Status = *u.Status
	}
	if u.WorkType != nil {
		j.WorkType = *u.WorkType
	}
	if u.WorkLocation != nil {
		j.WorkLocation = *u.WorkLocation
	}
}
