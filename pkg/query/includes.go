package query

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// AllowedInclude maps a request include name to a gorm relation path.
type AllowedInclude struct {
	Name     string
	Relation string
}

// Include allows name and derives the relation from it:
// "comments.author_profile" preloads "Comments.AuthorProfile".
func Include(name string) AllowedInclude {
	return AllowedInclude{Name: name, Relation: relationPath(name)}
}

// IncludeAs allows name preloading an explicitly named relation.
func IncludeAs(name, relation string) AllowedInclude {
	return AllowedInclude{Name: name, Relation: relation}
}

func relationPath(name string) string {
	caser := cases.Title(language.Und)

	segments := strings.Split(name, ".")
	for i, segment := range segments {
		words := strings.Split(segment, "_")
		for j, w := range words {
			words[j] = caser.String(w)
		}
		segments[i] = strings.Join(words, "")
	}
	return strings.Join(segments, ".")
}

// expand adds every parent path of nested includes: allowing
// "comments.author" also allows "comments".
func expand(includes []AllowedInclude) []AllowedInclude {
	seen := map[string]bool{}
	var out []AllowedInclude

	for _, inc := range includes {
		names := strings.Split(inc.Name, ".")
		relations := strings.Split(inc.Relation, ".")

		for depth := 1; depth <= len(names); depth++ {
			name := strings.Join(names[:depth], ".")
			if seen[name] {
				continue
			}
			seen[name] = true

			relation := inc.Relation
			if depth < len(names) && len(relations) == len(names) {
				relation = strings.Join(relations[:depth], ".")
			} else if depth < len(names) {
				relation = relationPath(name)
			}
			out = append(out, AllowedInclude{Name: name, Relation: relation})
		}
	}
	return out
}
