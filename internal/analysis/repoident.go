package analysis

import "strings"

// RepoRef identifies a repository by owner and name.
type RepoRef struct {
	Owner string
	Name  string
}

// String returns the "owner/name" form.
func (r RepoRef) String() string { return r.Owner + "/" + r.Name }

// ParseRepo extracts owner/repo from a repository identifier. Accepted forms:
//
//	owner/repo
//	github.com/owner/repo
//	https://github.com/owner/repo[.git][/]
//
// Anything else returns InvalidRepoError.
func ParseRepo(input string) (RepoRef, error) {
	s := strings.TrimSpace(input)
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "www.")
	s = strings.TrimPrefix(s, "github.com/")
	s = strings.TrimSuffix(s, "/")
	s = strings.TrimSuffix(s, ".git")

	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return RepoRef{}, InvalidRepoError{Input: input}
	}
	for _, p := range parts {
		if strings.ContainsAny(p, " \t") {
			return RepoRef{}, InvalidRepoError{Input: input}
		}
	}
	return RepoRef{Owner: parts[0], Name: parts[1]}, nil
}
