package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"fabhomes/internal/models"
)

// newPage wraps one page of results in the list envelope with absolute next
// and previous links.
func newPage[T any](r *http.Request, page models.PageRequest, count int, items []T) models.Page[T] {
	if items == nil {
		items = []T{}
	}
	p := models.Page[T]{Count: count, Results: items}
	if page.Number < page.LastPage(count) {
		next := pageURL(r, page.Number+1)
		p.Next = &next
	}
	if page.Number > 1 {
		prev := pageURL(r, page.Number-1)
		p.Previous = &prev
	}
	return p
}

func pageURL(r *http.Request, number int) string {
	q := url.Values{}
	for k, v := range r.URL.Query() {
		// pat exposes route params as ":name" query values
		if strings.HasPrefix(k, ":") {
			continue
		}
		q[k] = v
	}
	if number <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(number))
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if fwd := r.Header.Get("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}
	u := url.URL{Scheme: scheme, Host: r.Host, Path: r.URL.Path, RawQuery: q.Encode()}
	return u.String()
}
