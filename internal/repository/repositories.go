// Package repository handles all interactions with the database.
//
// It contains the SQL statements and methods to fetch or persist rows,
// keeping SQL away from the service layer. Queries are written with '?'
// placeholders and rebound by sqlx for the active driver.
package repository

import (
	"strings"

	"github.com/deppfellow/storefront/internal/server"
	"github.com/jmoiron/sqlx"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Products *ProductRepository
	News     *NewsRepository
	Comments *CommentRepository
	Lookups  *LookupRepository
}

// NewRepositories builds every repository on the server's database handle.
func NewRepositories(s *server.Server) *Repositories {
	return NewRepositoriesWithDB(s.DB.DB)
}

// NewRepositoriesWithDB builds every repository on db.
func NewRepositoriesWithDB(db *sqlx.DB) *Repositories {
	return &Repositories{
		Products: NewProductRepository(db),
		News:     NewNewsRepository(db),
		Comments: NewCommentRepository(db),
		Lookups:  NewLookupRepository(db),
	}
}

// statement joins the non-empty parts of a SQL statement with single spaces.
func statement(parts ...string) string {
	nonEmpty := parts[:0:0]
	for _, part := range parts {
		if part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	return strings.Join(nonEmpty, " ")
}
