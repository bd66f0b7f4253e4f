package models

import (
	"fmt"
	"time"
)

// Contributor links a site user to an article with a role and a citation
// position. Rows are only meaningful in the context of their article and are
// removed with it.
type Contributor struct {
	ID            int64           `json:"id" db:"id"`
	UserID        string          `json:"user_id" db:"user_id"`
	ArticleID     int64           `json:"article_id" db:"article_id"`
	Role          ContributorRole `json:"role,omitempty" db:"role"`
	CitationOrder *int            `json:"citation_order,omitempty" db:"citation_order"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// String returns the display form "<user> contributor for <article>"
func (c *Contributor) String() string {
	return fmt.Sprintf("%s contributor for article %d", c.UserID, c.ArticleID)
}
