package query

import (
	"net/url"
	"strconv"
)

// DefaultPerPage is the page size used when none is configured.
const DefaultPerPage = 15

// onEachSide is the number of page links shown around the current page.
const onEachSide = 3

// Page is a page of records shaped like Laravel's length-aware paginator.
type Page struct {
	CurrentPage  int         `json:"current_page"`
	Data         interface{} `json:"data"`
	FirstPageURL string      `json:"first_page_url"`
	From         *int        `json:"from"`
	LastPage     int         `json:"last_page"`
	LastPageURL  string      `json:"last_page_url"`
	Links        []Link      `json:"links"`
	NextPageURL  *string     `json:"next_page_url"`
	Path         string      `json:"path"`
	PerPage      int         `json:"per_page"`
	PrevPageURL  *string     `json:"prev_page_url"`
	To           *int        `json:"to"`
	Total        int64       `json:"total"`
}

// Link is one entry of the paginator navigation.
type Link struct {
	URL    *string `json:"url"`
	Label  string  `json:"label"`
	Active bool    `json:"active"`
}

// NewPage builds a page holding count items out of total. Links keep the
// query string of base except for the page parameter.
func NewPage(items interface{}, count int, total int64, perPage, currentPage int, base *url.URL) *Page {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if currentPage < 1 {
		currentPage = 1
	}

	lastPage := lastPageOf(total, perPage)

	p := &Page{
		CurrentPage: currentPage,
		Data:        items,
		LastPage:    lastPage,
		PerPage:     perPage,
		Total:       total,
	}

	urls := pageURLs{base: base}
	p.Path = urls.path()
	p.FirstPageURL = urls.page(1)
	p.LastPageURL = urls.page(lastPage)

	if count > 0 && currentPage <= lastPage {
		from := (currentPage-1)*perPage + 1
		to := from + count - 1
		p.From, p.To = &from, &to
	}
	if currentPage > 1 {
		prev := urls.page(currentPage - 1)
		p.PrevPageURL = &prev
	}
	if currentPage < lastPage {
		next := urls.page(currentPage + 1)
		p.NextPageURL = &next
	}

	p.Links = p.links(urls)
	return p
}

// lastPageOf is the number of pages needed for total records, at least 1.
func lastPageOf(total int64, perPage int) int {
	if total < 1 {
		return 1
	}
	return int((total-1)/int64(perPage)) + 1
}

// offsetOf is the number of records before page. Pages past lastPage hold
// no records and report ok false.
func offsetOf(page, perPage, lastPage int) (offset int, ok bool) {
	if page < 1 || page > lastPage {
		return 0, false
	}
	return (page - 1) * perPage, true
}

func (p *Page) links(urls pageURLs) []Link {
	links := []Link{{URL: p.PrevPageURL, Label: "&laquo; Previous"}}

	for _, element := range window(p.CurrentPage, p.LastPage) {
		if element == nil {
			links = append(links, Link{Label: "..."})
			continue
		}
		for _, n := range element {
			u := urls.page(n)
			links = append(links, Link{URL: &u, Label: strconv.Itoa(n), Active: n == p.CurrentPage})
		}
	}

	return append(links, Link{URL: p.NextPageURL, Label: "Next &raquo;"})
}

// window returns the page ranges to link, nil marking a "..." gap.
func window(current, last int) [][]int {
	if last < onEachSide*2+8 {
		return [][]int{pageRange(1, last)}
	}

	size := onEachSide + 4
	start := pageRange(1, 2)
	finish := pageRange(last-1, last)

	switch {
	case current <= size:
		return [][]int{pageRange(1, size+onEachSide), nil, finish}
	case current > last-size:
		return [][]int{start, nil, pageRange(last-(size+onEachSide-1), last)}
	default:
		return [][]int{start, nil, pageRange(current-onEachSide, current+onEachSide), nil, finish}
	}
}

func pageRange(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for n := from; n <= to; n++ {
		out = append(out, n)
	}
	return out
}

type pageURLs struct {
	base *url.URL
}

func (u pageURLs) path() string {
	if u.base == nil {
		return ""
	}
	p := *u.base
	p.RawQuery = ""
	p.Fragment = ""
	return p.String()
}

func (u pageURLs) page(n int) string {
	var values url.Values
	if u.base != nil {
		values = u.base.Query()
	} else {
		values = url.Values{}
	}
	values.Set("page", strconv.Itoa(n))
	return u.path() + "?" + values.Encode()
}
