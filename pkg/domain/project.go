package domain

import "time"

// Project represents a posted work opportunity on the marketplace.
//
// Interaction flags and their counters describe the viewing user's
// relationship to the project, not the project itself; they are the only
// fields mutated locally before server confirmation.
type Project struct {
	ID              string    `json:"_id"`
	Slug            string    `json:"slug"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Budget          Budget    `json:"budget"`
	SkillsRequired  []string  `json:"skillsRequired,omitempty"`
	Category        string    `json:"projectCategory,omitempty"`
	ExperienceLevel string    `json:"experienceLevel,omitempty"`
	ProjectType     string    `json:"projectType,omitempty"`
	Status          string    `json:"projectStatus,omitempty"` // "open", "in_progress", "completed", "cancelled"
	Location        string    `json:"location,omitempty"`
	ClientName      string    `json:"clientName,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`

	IsLiked        bool `json:"isLiked"`
	IsDisliked     bool `json:"isDisliked"`
	IsBookmarked   bool `json:"isBookmarked"`
	HasApplied     bool `json:"hasApplied"`
	LikesCount     int  `json:"likesCount"`
	DislikesCount  int  `json:"dislikesCount"`
	BookmarksCount int  `json:"bookmarksCount"`
}

// Valid project categories.
var ValidCategories = []string{
	"llm-apps",
	"prompt-engineering",
	"fine-tuning",
	"rag-pipelines",
	"agents",
	"chatbots",
	"computer-vision",
	"speech",
	"data-labeling",
	"ml-ops",
	"ai-integration",
	"evaluation",
	"general",
}

var validCategorySet = func() map[string]bool {
	m := make(map[string]bool, len(ValidCategories))
	for _, c := range ValidCategories {
		m[c] = true
	}
	return m
}()

// ValidCategory returns true if the given category is a known project category.
func ValidCategory(category string) bool {
	return validCategorySet[category]
}

// Experience levels accepted by the marketplace.
var ValidExperienceLevels = []string{"entry", "intermediate", "expert"}

// Project types accepted by the marketplace.
var ValidProjectTypes = []string{"one-time", "ongoing", "hourly"}

// Pagination is the paging envelope the API attaches to list responses.
type Pagination struct {
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
	Total      int `json:"total"`
}
