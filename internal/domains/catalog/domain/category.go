package domain

import "errors"

var (
	ErrEmptyTitle      = errors.New("category title must not be empty")
	ErrSelfParent      = errors.New("category cannot be its own parent")
	ErrInvalidParentID = errors.New("parent id must be greater than zero")
)

// Category is a node in the category forest. Root categories carry a nil
// ParentID.
type Category struct {
	ID       int64
	Title    string
	ParentID *int64
}

// NewCategory validates and constructs a Category.
func NewCategory(title string, parentID *int64) (*Category, error) {
	category := &Category{Title: title, ParentID: parentID}
	if err := category.Validate(); err != nil {
		return nil, err
	}
	return category, nil
}

// Validate enforces invariants on the category.
func (c *Category) Validate() error {
	if c.Title == "" {
		return ErrEmptyTitle
	}
	if c.ParentID != nil {
		if *c.ParentID <= 0 {
			return ErrInvalidParentID
		}
		if c.ID != 0 && *c.ParentID == c.ID {
			return ErrSelfParent
		}
	}
	return nil
}

// IsRoot reports whether the category has no parent.
func (c *Category) IsRoot() bool { return c.ParentID == nil }

// CategoryPatch carries the mutable fields of a category edit. Nil fields are
// ignored; an empty title is filtered out rather than applied.
type CategoryPatch struct {
	Title    *string
	ParentID *int64
}

// Filtered drops values that must never be written: empty titles and
// non-positive parent ids. The second return reports whether anything
// remains to apply.
func (p CategoryPatch) Filtered() (CategoryPatch, bool) {
	var out CategoryPatch
	if p.Title != nil && *p.Title != "" {
		out.Title = p.Title
	}
	if p.ParentID != nil && *p.ParentID > 0 {
		out.ParentID = p.ParentID
	}
	return out, out.Title != nil || out.ParentID != nil
}
