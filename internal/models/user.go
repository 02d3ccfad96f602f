package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the login account. Everything shown to other students lives on
// the linked Profile.
type User struct {
	ID        uuid.UUID `db:"id"`
	Email     string    `db:"email"`
	Password  string    `db:"password"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// DomainCandidates lists the email's domain and each parent domain that
// still has a dot, most specific first: "a@cs.kbtu.kz" gives
// ["cs.kbtu.kz", "kbtu.kz"].
func DomainCandidates(email string) []string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return nil
	}
	var out []string
	for d := strings.ToLower(email[at+1:]); strings.Contains(d, "."); d = d[strings.Index(d, ".")+1:] {
		out = append(out, d)
	}
	return out
}
