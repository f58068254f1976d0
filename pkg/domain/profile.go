package domain

import "time"

// Profile is the acting user's professional record.
type Profile struct {
	ID             string    `json:"_id"`
	Name           string    `json:"name"`
	Headline       string    `json:"headline,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	Skills         []string  `json:"skills,omitempty"`
	HourlyRate     float64   `json:"hourlyRate,omitempty"`
	Country        string    `json:"country,omitempty"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	Role           string    `json:"role,omitempty"` // "freelancer" or "client"
	CreatedAt      time.Time `json:"createdAt"`

	Experience     []Experience    `json:"experience,omitempty"`
	Education      []Education     `json:"education,omitempty"`
	Certifications []Certification `json:"certifications,omitempty"`
	Portfolio      []PortfolioItem `json:"portfolio,omitempty"`
	Languages      []Language      `json:"languages,omitempty"`

	EmailVerified    bool `json:"emailVerified"`
	IdentityVerified bool `json:"identityVerified"`
	Completion       int  `json:"profileCompletion"` // percent, computed server-side
}

// Experience is one work-history entry.
type Experience struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	StartDate   string `json:"startDate,omitempty"` // "Jan 2023" style display strings
	EndDate     string `json:"endDate,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
}

// Education is one schooling entry.
type Education struct {
	ID          string `json:"_id"`
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Field       string `json:"field,omitempty"`
	StartYear   string `json:"startYear,omitempty"`
	EndYear     string `json:"endYear,omitempty"`
}

// Certification is one credential entry.
type Certification struct {
	ID            string `json:"_id"`
	Name          string `json:"name"`
	Issuer        string `json:"issuer,omitempty"`
	IssueDate     string `json:"issueDate,omitempty"`
	CredentialURL string `json:"credentialUrl,omitempty"`
}

// PortfolioItem is one showcase entry.
type PortfolioItem struct {
	ID           string   `json:"_id"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	URL          string   `json:"url,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// Language is one spoken-language entry.
type Language struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Proficiency string `json:"proficiency,omitempty"` // "basic", "conversational", "fluent", "native"
}

// Language proficiency levels accepted by the marketplace.
var ValidProficiencies = []string{"basic", "conversational", "fluent", "native"}
