package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// ApplicationStatus is the lifecycle state of a proposal.
type ApplicationStatus string

const (
	StatusPending      ApplicationStatus = "pending"
	StatusInterviewing ApplicationStatus = "interviewing"
	StatusAccepted     ApplicationStatus = "accepted"
	StatusRejected     ApplicationStatus = "rejected"
	StatusWithdrawn    ApplicationStatus = "withdrawn"
	StatusCompleted    ApplicationStatus = "completed"
)

// Editable reports whether the freelancer may still change the proposal.
func (s ApplicationStatus) Editable() bool {
	return s == StatusPending
}

// Withdrawable reports whether the freelancer may still pull the proposal.
func (s ApplicationStatus) Withdrawable() bool {
	return s == StatusPending || s == StatusInterviewing
}

// Live reports whether the application still counts as an open claim on its
// project. Withdrawn applications stay in history but are no longer live.
func (s ApplicationStatus) Live() bool {
	return s != StatusWithdrawn
}

// MinCoverLetterLen is the minimum cover letter length enforced before
// a proposal is submitted.
const MinCoverLetterLen = 50

// Application is one freelancer's proposal against one project.
type Application struct {
	ID               string            `json:"_id"`
	Project          ProjectRef        `json:"project"`
	FreelancerName   string            `json:"freelancerName,omitempty"`
	Status           ApplicationStatus `json:"status"`
	ProposedBudget   float64           `json:"proposedBudget"`
	ExpectedDelivery int               `json:"expectedDelivery"` // days
	CoverLetter      string            `json:"coverLetter"`
	CreatedAt        time.Time         `json:"createdAt"`
}

// ProjectRef holds the application's project, which the API returns either
// as an embedded object or as a bare ID string depending on the endpoint.
type ProjectRef struct {
	ID      string
	Project *Project
}

func (r *ProjectRef) UnmarshalJSON(data []byte) error {
	*r = ProjectRef{}
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("project ref: %w", err)
	}
	r.Project = &p
	r.ID = p.ID
	return nil
}

func (r ProjectRef) MarshalJSON() ([]byte, error) {
	if r.Project != nil {
		return json.Marshal(r.Project)
	}
	if r.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

// ProjectID returns the referenced project's ID regardless of which wire
// shape the application arrived in. Empty when neither form carried one.
func (r ProjectRef) ProjectID() string {
	if r.Project != nil && r.Project.ID != "" {
		return r.Project.ID
	}
	return r.ID
}

// Title returns the referenced project's title when it is embedded.
func (r ProjectRef) Title() string {
	if r.Project != nil {
		return r.Project.Title
	}
	return ""
}
