package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rishuraj778292/llmbeing-cli/pkg/domain"
)

// ProjectFilter narrows and pages the project listing.
type ProjectFilter struct {
	Page       int
	Limit      int
	Search     string
	Category   string
	Experience string
	Type       string
	Scope      string // "", "trending", "liked", "bookmarked", "own"
}

// ProjectRequest is the payload for creating or updating a project posting.
type ProjectRequest struct {
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	Budget          domain.Budget `json:"budget"`
	SkillsRequired  []string      `json:"skillsRequired,omitempty"`
	Category        string        `json:"projectCategory,omitempty"`
	ExperienceLevel string        `json:"experienceLevel,omitempty"`
	ProjectType     string        `json:"projectType,omitempty"`
	Location        string        `json:"location,omitempty"`
}

// ApplicationRequest is the payload for submitting or editing a proposal.
type ApplicationRequest struct {
	ProposedBudget   float64 `json:"proposedBudget"`
	ExpectedDelivery int     `json:"expectedDelivery"`
	CoverLetter      string  `json:"coverLetter"`
}

// Client is the LLMbeing API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *zap.Logger
}

// New creates a new API client. A nil logger disables request logging.
func New(baseURL, token string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// --- Project methods ---

// ListProjects fetches a page of the project listing.
func (c *Client) ListProjects(ctx context.Context, f ProjectFilter) ([]domain.Project, *domain.Pagination, error) {
	params := url.Values{}
	if f.Page > 0 {
		params.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		params.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Search != "" {
		params.Set("search", f.Search)
	}
	if f.Category != "" {
		params.Set("projectCategory", f.Category)
	}
	if f.Experience != "" {
		params.Set("experienceLevel", f.Experience)
	}
	if f.Type != "" {
		params.Set("projectType", f.Type)
	}
	if f.Scope != "" {
		params.Set("scope", f.Scope)
	}

	var projects []domain.Project
	page, err := c.doRequest(ctx, http.MethodGet, "/projects?"+params.Encode(), nil, &projects)
	if err != nil {
		return nil, nil, fmt.Errorf("client.ListProjects: %w", err)
	}
	return projects, page, nil
}

// GetProject fetches a single project by ID or slug.
func (c *Client) GetProject(ctx context.Context, identifier string) (*domain.Project, error) {
	var p domain.Project
	if _, err := c.get(ctx, "/projects/"+url.PathEscape(identifier), &p); err != nil {
		return nil, fmt.Errorf("client.GetProject: %w", err)
	}
	return &p, nil
}

// CreateProject posts a new project.
func (c *Client) CreateProject(ctx context.Context, req ProjectRequest) (*domain.Project, error) {
	var created domain.Project
	if _, err := c.doRequest(ctx, http.MethodPost, "/projects", req, &created); err != nil {
		return nil, fmt.Errorf("client.CreateProject: %w", err)
	}
	return &created, nil
}

// UpdateProject updates an existing project posting.
func (c *Client) UpdateProject(ctx context.Context, id string, req ProjectRequest) (*domain.Project, error) {
	var updated domain.Project
	if _, err := c.doRequest(ctx, http.MethodPut, "/projects/"+url.PathEscape(id), req, &updated); err != nil {
		return nil, fmt.Errorf("client.UpdateProject: %w", err)
	}
	return &updated, nil
}

// DeleteProject removes a project posting.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	if _, err := c.doRequest(ctx, http.MethodDelete, "/projects/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteProject: %w", err)
	}
	return nil
}

// LikeProject toggles the caller's like on a project.
func (c *Client) LikeProject(ctx context.Context, id string) error {
	if _, err := c.doRequest(ctx, http.MethodPost, "/projects/"+url.PathEscape(id)+"/like", nil, nil); err != nil {
		return fmt.Errorf("client.LikeProject: %w", err)
	}
	return nil
}

// DislikeProject toggles the caller's dislike on a project.
func (c *Client) DislikeProject(ctx context.Context, id string) error {
	if _, err := c.doRequest(ctx, http.MethodPost, "/projects/"+url.PathEscape(id)+"/dislike", nil, nil); err != nil {
		return fmt.Errorf("client.DislikeProject: %w", err)
	}
	return nil
}

// BookmarkProject toggles the caller's bookmark on a project.
func (c *Client) BookmarkProject(ctx context.Context, id string) error {
	if _, err := c.doRequest(ctx, http.MethodPost, "/projects/"+url.PathEscape(id)+"/bookmark", nil, nil); err != nil {
		return fmt.Errorf("client.BookmarkProject: %w", err)
	}
	return nil
}

// --- Application methods ---

// Apply submits a proposal against a project.
func (c *Client) Apply(ctx context.Context, projectID string, req ApplicationRequest) (*domain.Application, error) {
	var app domain.Application
	if _, err := c.doRequest(ctx, http.MethodPost, "/applications/apply/"+url.PathEscape(projectID), req, &app); err != nil {
		return nil, fmt.Errorf("client.Apply: %w", err)
	}
	return &app, nil
}

// EditApplication updates a pending proposal.
func (c *Client) EditApplication(ctx context.Context, id string, req ApplicationRequest) (*domain.Application, error) {
	var app domain.Application
	if _, err := c.doRequest(ctx, http.MethodPut, "/applications/edit/"+url.PathEscape(id), req, &app); err != nil {
		return nil, fmt.Errorf("client.EditApplication: %w", err)
	}
	return &app, nil
}

// WithdrawApplication pulls a proposal.
func (c *Client) WithdrawApplication(ctx context.Context, id string) error {
	if _, err := c.doRequest(ctx, http.MethodDelete, "/applications/withdraw/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("client.WithdrawApplication: %w", err)
	}
	return nil
}

// MyApplications returns the caller's own proposals.
func (c *Client) MyApplications(ctx context.Context, page int) ([]domain.Application, *domain.Pagination, error) {
	params := url.Values{}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}

	var apps []domain.Application
	pg, err := c.get(ctx, "/applications/my-applications?"+params.Encode(), &apps)
	if err != nil {
		return nil, nil, fmt.Errorf("client.MyApplications: %w", err)
	}
	return apps, pg, nil
}

// AcceptApplication accepts a proposal against one of the caller's postings.
func (c *Client) AcceptApplication(ctx context.Context, id string) (*domain.Application, error) {
	var app domain.Application
	if _, err := c.doRequest(ctx, http.MethodPut, "/applications/accept/"+url.PathEscape(id), nil, &app); err != nil {
		return nil, fmt.Errorf("client.AcceptApplication: %w", err)
	}
	return &app, nil
}

// RejectApplication rejects a proposal against one of the caller's postings.
func (c *Client) RejectApplication(ctx context.Context, id string) (*domain.Application, error) {
	var app domain.Application
	if _, err := c.doRequest(ctx, http.MethodPut, "/applications/reject/"+url.PathEscape(id), nil, &app); err != nil {
		return nil, fmt.Errorf("client.RejectApplication: %w", err)
	}
	return &app, nil
}

// ApproveCompletion marks an accepted proposal's work as completed.
func (c *Client) ApproveCompletion(ctx context.Context, id string) (*domain.Application, error) {
	var app domain.Application
	if _, err := c.doRequest(ctx, http.MethodPut, "/applications/approve/"+url.PathEscape(id), nil, &app); err != nil {
		return nil, fmt.Errorf("client.ApproveCompletion: %w", err)
	}
	return &app, nil
}

// ProjectApplications returns proposals against a single project of the caller's.
func (c *Client) ProjectApplications(ctx context.Context, projectID string) ([]domain.Application, error) {
	var apps []domain.Application
	if _, err := c.get(ctx, "/applications/project/"+url.PathEscape(projectID), &apps); err != nil {
		return nil, fmt.Errorf("client.ProjectApplications: %w", err)
	}
	return apps, nil
}

// ClientApplications returns proposals across all of the caller's postings.
func (c *Client) ClientApplications(ctx context.Context) ([]domain.Application, error) {
	var apps []domain.Application
	if _, err := c.get(ctx, "/applications/client-applications", &apps); err != nil {
		return nil, fmt.Errorf("client.ClientApplications: %w", err)
	}
	return apps, nil
}

// --- Profile methods ---

// GetProfile returns the authenticated user's profile.
func (c *Client) GetProfile(ctx context.Context) (*domain.Profile, error) {
	var p domain.Profile
	if _, err := c.get(ctx, "/user/profile", &p); err != nil {
		return nil, fmt.Errorf("client.GetProfile: %w", err)
	}
	return &p, nil
}

// UpdateProfileRequest is the payload for updating top-level profile fields.
type UpdateProfileRequest struct {
	Name       string   `json:"name,omitempty"`
	Headline   string   `json:"headline,omitempty"`
	Bio        string   `json:"bio,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	HourlyRate float64  `json:"hourlyRate,omitempty"`
	Country    string   `json:"country,omitempty"`
}

// UpdateProfile updates top-level profile fields and returns the full profile.
func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*domain.Profile, error) {
	var p domain.Profile
	if _, err := c.doRequest(ctx, http.MethodPut, "/user/profile", req, &p); err != nil {
		return nil, fmt.Errorf("client.UpdateProfile: %w", err)
	}
	return &p, nil
}

// UploadProfilePicture uploads a new profile picture and returns the full profile.
func (c *Client) UploadProfilePicture(ctx context.Context, filename string, file io.Reader) (*domain.Profile, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("picture", filename)
	if err != nil {
		return nil, fmt.Errorf("client.UploadProfilePicture: %w", err)
	}
	if _, err := io.Copy(fw, file); err != nil {
		return nil, fmt.Errorf("client.UploadProfilePicture: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("client.UploadProfilePicture: %w", err)
	}

	var env envelope
	if err := c.doRaw(ctx, http.MethodPost, "/user/profile/upload-picture", &buf, mw.FormDataContentType(), &env); err != nil {
		return nil, fmt.Errorf("client.UploadProfilePicture: %w", err)
	}
	var p domain.Profile
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, fmt.Errorf("client.UploadProfilePicture: decode data: %w", err)
		}
	}
	return &p, nil
}

// Profile sub-collection mutations. The server returns the full updated
// profile for every one of these, never just the touched item.

// AddExperience appends a work-history entry.
func (c *Client) AddExperience(ctx context.Context, e domain.Experience) (*domain.Profile, error) {
	return c.profileMutation(ctx, http.MethodPost, "/user/experience", e, "client.AddExperience")
}

// UpdateExperience edits a work-history entry by ID.
func (c *Client) UpdateExperience(ctx context.Context, id string, e domain.Experience) (*domain.Profile, error) {
	return c.profileMutation(ctx, http.MethodPut, "/user/experience/"+url.PathEscape(id), e, "client.UpdateExperience")
}

// DeleteExperience removes a work-history entry by ID.
func (c *Client) DeleteExperience(ctx context.Context, id string) (*domain.Profile, error) {
	return c.profileMutation(ctx, http.MethodDelete, "/user/experience/"+url.PathEscape(id), nil, "client.DeleteExperience")
}

// AddEducation appends a schooling entry.
func (c *Client) AddEducation(ctx context.Context, e domain.Education) (*domain.Profile, error) {
	return c.profileMutation(ctx, http.MethodPost, "/user/education", e, "client.AddEducation")
}

// UpdateEducation edits a schooling entry by ID.
func (c *Client) UpdateEducation(ctx context.Context, id string, e domain.Education) (*domain.Profile, error) {
	return c.profileMutation(ctx, http.MethodPut, "/user/education/"+url.PathEscape(id), e, "client.UpdateEducation")
}

// DeleteEducation removes a schooling entry by ID.
func (c *Client) DeleteEducation(ctx context.Context, id string) (*domain.Profile, error) {
	return c.profileMutation(ctx, http.MethodDelete, "/user/education/"+url.PathEscape(id), nil, "client.DeleteEducation")
}

// AddCertification appends a credential entry.
func (c *Client) AddCertification(ctx context.Context, cert domain.Certification) (*domain.Profile, error) {
	return c.profileMutation(ctx, http.MethodPost, "/user/certification", cert, "client.AddCertification")
}

// UpdateCertification edits a credential entry by ID.
func (c *Client) UpdateCertification(ctx context.Context, id string, cert domain.Certification) (*domain.Profile, error) {
	return c.profileMutation(ctx, http.MethodPut, "/user/certification/"+url.PathEscape(id), cert, "client.UpdateCertification")
}

// DeleteCertification removes a credential entry by ID.
func (c *Client) DeleteCertification(ctx context.Context, id string) (*domain.Profile, error) {
	return c.profileMutation(ctx, http.MethodDelete, "/user/certification/"+url.PathEscape(id), nil, "client.DeleteCertification")
}

// AddPortfolioItem appends a showcase entry.
func (c *Client) AddPortfolioItem(ctx context.Context, item domain.PortfolioItem) (*domain.Profile, error) {
	return c.profileMutation(ctx, http.MethodPost, "/user/portfolio", item, "client.AddPortfolioItem")
}

// UpdatePortfolioItem edits a showcase entry by ID.
func (c *Client) UpdatePortfolioItem(ctx context.Context, id string, item domain.PortfolioItem) (*domain.Profile, error) {
	return c.profileMutation(ctx, http.MethodPut, "/user/portfolio/"+url.PathEscape(id), item, "client.UpdatePortfolioItem")
}

// DeletePortfolioItem removes a showcase entry by ID.
func (c *Client) DeletePortfolioItem(ctx context.Context, id string) (*domain.Profile, error) {
	return c.profileMutation(ctx, http.MethodDelete, "/user/portfolio/"+url.PathEscape(id), nil, "client.DeletePortfolioItem")
}

// AddLanguage appends a spoken-language entry.
func (c *Client) AddLanguage(ctx context.Context, l domain.Language) (*domain.Profile, error) {
	return c.profileMutation(ctx, http.MethodPost, "/user/language", l, "client.AddLanguage")
}

// UpdateLanguage edits a spoken-language entry by ID.
func (c *Client) UpdateLanguage(ctx context.Context, id string, l domain.Language) (*domain.Profile, error) {
	return c.profileMutation(ctx, http.MethodPut, "/user/language/"+url.PathEscape(id), l, "client.UpdateLanguage")
}

// DeleteLanguage removes a spoken-language entry by ID.
func (c *Client) DeleteLanguage(ctx context.Context, id string) (*domain.Profile, error) {
	return c.profileMutation(ctx, http.MethodDelete, "/user/language/"+url.PathEscape(id), nil, "client.DeleteLanguage")
}

func (c *Client) profileMutation(ctx context.Context, method, path string, body any, op string) (*domain.Profile, error) {
	var p domain.Profile
	if _, err := c.doRequest(ctx, method, path, body, &p); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

// --- Transport ---

// envelope is the standard response wrapper every endpoint uses.
type envelope struct {
	Data       json.RawMessage    `json:"data"`
	Pagination *domain.Pagination `json:"pagination"`
}

func (c *Client) get(ctx context.Context, path string, out any) (*domain.Pagination, error) {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) (*domain.Pagination, error) {
	var reqBody io.Reader
	contentType := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
		contentType = "application/json"
	}

	var env envelope
	if err := c.doRaw(ctx, method, path, reqBody, contentType, &env); err != nil {
		return nil, err
	}
	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("decode data: %w", err)
		}
	}
	return env.Pagination, nil
}

func (c *Client) doRaw(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", reqID),
			zap.Error(err))
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	c.log.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", reqID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Message}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if out != nil {
		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}
		if len(respBody) == 0 {
			return nil
		}
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
