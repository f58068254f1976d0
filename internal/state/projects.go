package state

import (
	"fmt"

	"github.com/rishuraj778292/llmbeing-cli/pkg/domain"
)

// ProjectStore owns the paginated project listing, the current-project
// detail slot, and the role-scoped lists. Every copy of a project held
// here is independent; RecordInteraction keeps them consistent.
type ProjectStore struct {
	Projects    []domain.Project
	Page        domain.Pagination
	Status      Status
	LoadingMore bool
	Err         string

	Current       *domain.Project
	CurrentStatus Status
	CurrentErr    string

	Trending   []domain.Project
	Liked      []domain.Project
	Bookmarked []domain.Project
	Own        []domain.Project
}

// BeginPage marks a page fetch as in flight. Page 1 drives the main
// status enum; later pages only set the load-more flag so the loaded
// listing keeps rendering underneath.
func (s *ProjectStore) BeginPage(page int) {
	s.Err = ""
	if page <= 1 {
		s.Status = StatusLoading
		return
	}
	s.LoadingMore = true
}

// ApplyPage merges a fetched page into the listing. Page 1 replaces the
// listing; later pages append only projects whose ID is not already
// present. Any project whose ID is in applied gets hasApplied forced
// true, reconciling staleness in the server payload.
func (s *ProjectStore) ApplyPage(projects []domain.Project, pg *domain.Pagination, page int, applied map[string]bool) error {
	if page < 1 {
		return fmt.Errorf("page must be positive, got %d", page)
	}

	forceApplied(projects, applied)

	if page == 1 {
		s.Projects = projects
	} else {
		seen := make(map[string]bool, len(s.Projects))
		for _, p := range s.Projects {
			seen[p.ID] = true
		}
		for _, p := range projects {
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			s.Projects = append(s.Projects, p)
		}
	}

	if pg != nil {
		s.Page = *pg
	} else {
		s.Page = domain.Pagination{Page: page}
	}
	s.Status = StatusSucceeded
	s.LoadingMore = false
	s.Err = ""
	return nil
}

// FailPage records a failed page fetch. A failed first page marks the
// store failed; a failed later page only clears the load-more flag, so
// already-loaded projects stay visible.
func (s *ProjectStore) FailPage(page int, msg string) {
	s.Err = msg
	s.LoadingMore = false
	if page <= 1 {
		s.Status = StatusFailed
	}
}

// SetCurrent replaces the current-project detail slot.
func (s *ProjectStore) SetCurrent(p *domain.Project, applied map[string]bool) {
	if p != nil && applied[p.ID] {
		p.HasApplied = true
	}
	s.Current = p
	s.CurrentStatus = StatusSucceeded
	s.CurrentErr = ""
}

// FailCurrent clears the detail slot rather than leaving stale data
// visible.
func (s *ProjectStore) FailCurrent(msg string) {
	s.Current = nil
	s.CurrentStatus = StatusFailed
	s.CurrentErr = msg
}

// SetScoped replaces one of the role-scoped lists.
func (s *ProjectStore) SetScoped(scope string, projects []domain.Project, applied map[string]bool) {
	forceApplied(projects, applied)
	switch scope {
	case "trending":
		s.Trending = projects
	case "liked":
		s.Liked = projects
	case "bookmarked":
		s.Bookmarked = projects
	case "own":
		s.Own = projects
	}
}

// RecordInteraction applies an optimistic local mutation for a confirmed
// interaction: the flag is set and the matching counter moves by exactly
// one, in every copy of the project this store holds. A copy already in
// the target state is left untouched, which makes repeated identical
// calls safe.
func (s *ProjectStore) RecordInteraction(projectID string, kind InteractionKind, active bool) {
	for _, list := range [][]domain.Project{s.Projects, s.Trending, s.Liked, s.Bookmarked, s.Own} {
		for i := range list {
			if list[i].ID == projectID {
				applyInteraction(&list[i], kind, active)
			}
		}
	}
	if s.Current != nil && s.Current.ID == projectID {
		applyInteraction(s.Current, kind, active)
	}
}

func applyInteraction(p *domain.Project, kind InteractionKind, active bool) {
	switch kind {
	case InteractionLike:
		if p.IsLiked == active {
			return
		}
		p.IsLiked = active
		p.LikesCount += delta(active)
	case InteractionDislike:
		if p.IsDisliked == active {
			return
		}
		p.IsDisliked = active
		p.DislikesCount += delta(active)
	case InteractionBookmark:
		if p.IsBookmarked == active {
			return
		}
		p.IsBookmarked = active
		p.BookmarksCount += delta(active)
	case InteractionApply:
		p.HasApplied = active
	}
}

func delta(active bool) int {
	if active {
		return 1
	}
	return -1
}

func forceApplied(projects []domain.Project, applied map[string]bool) {
	if len(applied) == 0 {
		return
	}
	for i := range projects {
		if applied[projects[i].ID] {
			projects[i].HasApplied = true
		}
	}
}
