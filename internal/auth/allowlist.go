package auth

import "strings"

// AllowList is the immutable set of admin emails. Safe for concurrent reads.
type AllowList struct {
	emails map[string]struct{}
}

// NewAllowList normalizes and de-duplicates the supplied emails. Blank entries are dropped.
func NewAllowList(emails []string) AllowList {
	set := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		if normalized := NormalizeEmail(e); normalized != "" {
			set[normalized] = struct{}{}
		}
	}
	return AllowList{emails: set}
}

// Contains reports exact membership of an already normalized email.
func (a AllowList) Contains(email string) bool {
	if email == "" {
		return false
	}
	_, ok := a.emails[email]
	return ok
}

func (a AllowList) Len() int {
	return len(a.emails)
}

// NormalizeEmail lower-cases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
