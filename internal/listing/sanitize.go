package listing

import "strings"

// likeEscape is the escape character declared in LIKE ... ESCAPE clauses.
const likeEscape = `\`

var likeReplacer = strings.NewReplacer(
	likeEscape, likeEscape+likeEscape,
	"%", likeEscape+"%",
	"_", likeEscape+"_",
)

// EscapeLike escapes LIKE wildcards so s only ever matches itself.
func EscapeLike(s string) string {
	return likeReplacer.Replace(s)
}

// ContainsPattern returns a LIKE pattern matching any value containing s.
// The pattern is sent as a bind argument, never spliced into SQL text.
func ContainsPattern(s string) string {
	return "%" + EscapeLike(s) + "%"
}
