package catalog

import (
	"context"
	"slices"

	"github.com/jonwraymond/coursecms/store"
)

func (c *Course) prepare() error {
	slices.Sort(c.CategoryIDs)
	c.CategoryIDs = slices.Compact(c.CategoryIDs)
	return nil
}

// writeJoins replaces the course's category links. A nil CategoryIDs, as
// decoded from a body without categoryIds, keeps the existing links; an
// empty list removes them.
func (c *Course) writeJoins(ctx context.Context, tx *store.Tx) error {
	if c.CategoryIDs == nil {
		return nil
	}
	if _, err := tx.Execute(ctx, "DELETE FROM course_categories WHERE course_id = ?", c.ID); err != nil {
		return err
	}
	for _, categoryID := range c.CategoryIDs {
		if _, err := tx.Execute(ctx, "INSERT INTO course_categories (course_id, category_id) VALUES (?, ?)", c.ID, categoryID); err != nil {
			return err
		}
	}
	return nil
}

func (c *Course) loadJoins(ctx context.Context, db DB) error {
	ids := []string{}
	if err := db.Select(ctx, &ids, "SELECT category_id FROM course_categories WHERE course_id = ? ORDER BY category_id", c.ID); err != nil {
		return err
	}
	c.CategoryIDs = ids
	return nil
}
