package specification

import (
	"strings"

	"gorm.io/gorm"
)

type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(email) = LOWER(?)", s.Email)
}

// LeadSearch matches Term case-insensitively against name, email and company.
type LeadSearch struct {
	Term string
}

func (s LeadSearch) Apply(db *gorm.DB) *gorm.DB {
	like := "%" + escapeLike(s.Term) + "%"
	return db.Where("(name ILIKE ? OR email ILIKE ? OR company ILIKE ?)", like, like, like)
}

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
