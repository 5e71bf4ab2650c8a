package domain

// Forest indexes a set of categories by id and answers ancestry questions by
// walking parent pointers. Category cardinality is small relative to order
// volume, so loading all categories once and resolving in memory is cheaper
// than a recursive query per request.
type Forest struct {
	byID map[int64]Category
}

// NewForest builds a Forest from the full category set.
func NewForest(categories []Category) *Forest {
	byID := make(map[int64]Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}
	return &Forest{byID: byID}
}

// AncestorChain returns the category followed by its ancestors up to the
// root, nearest first. Unknown ids yield a nil chain. The walk is bounded by
// the forest size, so a corrupted parent cycle terminates instead of looping.
func (f *Forest) AncestorChain(id int64) []Category {
	current, ok := f.byID[id]
	if !ok {
		return nil
	}
	chain := []Category{current}
	for steps := 0; current.ParentID != nil && steps < len(f.byID); steps++ {
		parent, ok := f.byID[*current.ParentID]
		if !ok {
			// Dangling parent pointer (parent deleted, SET NULL not yet seen).
			break
		}
		chain = append(chain, parent)
		current = parent
	}
	return chain
}

// TopLevelAncestor resolves the root of the tree containing id. A root
// category is its own top-level ancestor.
func (f *Forest) TopLevelAncestor(id int64) (Category, bool) {
	chain := f.AncestorChain(id)
	if len(chain) == 0 {
		return Category{}, false
	}
	return chain[len(chain)-1], true
}
