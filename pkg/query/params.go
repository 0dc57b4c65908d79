package query

import (
	"net/url"
	"strconv"
	"strings"
)

// Params are the query-builder parameters of one request.
type Params struct {
	Filters  map[string]string
	Sorts    []string
	Includes []string
	// Fields holds requested columns keyed by table or relation; "" is the base model.
	Fields  map[string][]string
	Appends []string
	Page    int
	PerPage int

	// URL is the request URL, used to build paginator links.
	URL *url.URL
}

// ParseParams extracts Params from a request URL.
func ParseParams(u *url.URL) Params {
	p := Params{
		Filters: map[string]string{},
		Fields:  map[string][]string{},
		URL:     u,
	}
	if u == nil {
		return p
	}

	for key, values := range u.Query() {
		if len(values) == 0 {
			continue
		}
		value := values[0]

		switch {
		case key == "sort":
			p.Sorts = splitList(value)
		case key == "include":
			p.Includes = splitList(value)
		case key == "append":
			p.Appends = splitList(value)
		case key == "fields":
			p.Fields[""] = splitList(value)
		case key == "page":
			p.Page = positive(value)
		case key == "per_page":
			p.PerPage = positive(value)
		default:
			if name, ok := bracketed(key, "filter"); ok {
				p.Filters[name] = value
			} else if name, ok := bracketed(key, "fields"); ok {
				p.Fields[name] = splitList(value)
			}
		}
	}

	return p
}

// bracketed parses prefix[name] keys.
func bracketed(key, prefix string) (string, bool) {
	if !strings.HasPrefix(key, prefix+"[") || !strings.HasSuffix(key, "]") {
		return "", false
	}
	name := key[len(prefix)+1 : len(key)-1]
	return name, name != ""
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func positive(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 0
	}
	return n
}
