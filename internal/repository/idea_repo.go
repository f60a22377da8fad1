package repository

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"idea-portal/internal/models"
	"idea-portal/internal/storage"

	"github.com/google/uuid"
)

type EmployeeFinder interface {
	FindByID(ctx context.Context, id string) (*models.Employee, error)
}

// IdeaRepo works on the whole collection: every call loads it from the
// store and every write saves it back in full. mu serializes the
// read-modify-write cycles of this process.
type IdeaRepo struct {
	store     storage.IdeaStore
	employees EmployeeFinder
	now       func() time.Time
	mu        sync.Mutex
}

func NewIdeaRepo(store storage.IdeaStore, employees EmployeeFinder) *IdeaRepo {
	return &IdeaRepo{
		store:     store,
		employees: employees,
		now:       time.Now,
	}
}

func (r *IdeaRepo) List(ctx context.Context, params models.ListParams) (*models.PaginatedIdeas, error) {
	ideas, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	filtered := filterIdeas(ideas, params.Search)

	// Stable so ties keep collection order (newest first).
	slices.SortStableFunc(filtered, func(a, b models.Idea) int {
		return cmp.Compare(b.Upvotes, a.Upvotes)
	})

	return &models.PaginatedIdeas{
		Ideas:       pageOf(filtered, params.Page, params.Limit),
		TotalIdeas:  len(filtered),
		TotalPages:  pageCount(len(filtered), params.Limit),
		CurrentPage: params.Page,
	}, nil
}

// GetByID returns nil, nil when the idea does not exist.
func (r *IdeaRepo) GetByID(ctx context.Context, id string) (*models.Idea, error) {
	ideas, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range ideas {
		if ideas[i].ID == id {
			return &ideas[i], nil
		}
	}
	return nil, nil
}

func (r *IdeaRepo) Create(ctx context.Context, input models.CreateIdeaInput) (*models.Idea, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	employee, err := r.employees.FindByID(ctx, input.EmployeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, ErrEmployeeNotFound
	}

	ideas, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	priority := input.Priority
	if priority == "" {
		priority = models.PriorityLow
	}

	idea := models.Idea{
		ID:            uuid.New().String(),
		Summary:       input.Summary,
		Description:   input.Description,
		EmployeeID:    input.EmployeeID,
		EmployeeName:  employee.Name,
		EmployeeImage: employee.ProfileImage,
		Priority:      priority,
		Upvotes:       0,
		Downvotes:     0,
		CreatedAt:     r.now().UTC(),
	}

	// New ideas go first.
	updated := make([]models.Idea, 0, len(ideas)+1)
	updated = append(updated, idea)
	updated = append(updated, ideas...)

	if err := r.store.Save(ctx, updated); err != nil {
		return nil, err
	}
	return &idea, nil
}

// Delete reports whether an idea was removed. Nothing is saved when the id
// is unknown.
func (r *IdeaRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ideas, err := r.store.Load(ctx)
	if err != nil {
		return false, err
	}

	remaining := make([]models.Idea, 0, len(ideas))
	for _, idea := range ideas {
		if idea.ID != id {
			remaining = append(remaining, idea)
		}
	}
	if len(remaining) == len(ideas) {
		return false, nil
	}

	if err := r.store.Save(ctx, remaining); err != nil {
		return false, err
	}
	return true, nil
}

// Vote adds one to the counter named by voteType. It returns nil, nil when
// the idea does not exist.
func (r *IdeaRepo) Vote(ctx context.Context, id string, voteType models.VoteType) (*models.Idea, error) {
	if voteType != models.VoteUp && voteType != models.VoteDown {
		return nil, ErrInvalidVoteType
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ideas, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	idx := slices.IndexFunc(ideas, func(idea models.Idea) bool {
		return idea.ID == id
	})
	if idx == -1 {
		return nil, nil
	}

	switch voteType {
	case models.VoteUp:
		ideas[idx].Upvotes++
	case models.VoteDown:
		ideas[idx].Downvotes++
	}

	if err := r.store.Save(ctx, ideas); err != nil {
		return nil, err
	}
	updated := ideas[idx]
	return &updated, nil
}

func filterIdeas(ideas []models.Idea, search string) []models.Idea {
	if search == "" {
		return slices.Clone(ideas)
	}

	term := strings.ToLower(search)
	filtered := make([]models.Idea, 0, len(ideas))
	for _, idea := range ideas {
		if strings.Contains(strings.ToLower(idea.Summary), term) ||
			strings.Contains(strings.ToLower(idea.Description), term) {
			filtered = append(filtered, idea)
		}
	}
	return filtered
}

// pageCount is ceil(total/limit) without the total+limit overflow.
func pageCount(total, limit int) int {
	if limit < 1 {
		return 0
	}
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return pages
}

// pageOf slices out page number page (1-based). Out-of-range pages and
// non-positive arguments yield an empty page. The page is checked against
// the page count before multiplying so huge values cannot wrap.
func pageOf(ideas []models.Idea, page, limit int) []models.Idea {
	if page < 1 || limit < 1 || page > pageCount(len(ideas), limit) {
		return []models.Idea{}
	}
	start := (page - 1) * limit
	end := start + min(limit, len(ideas)-start)

	out := make([]models.Idea, end-start)
	copy(out, ideas[start:end])
	return out
}
