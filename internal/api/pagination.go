package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// paginatedResponse is the standard list envelope.
type paginatedResponse struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// pageParams reads the page and limit query parameters, clamping bad values
// to the defaults.
func pageParams(c *gin.Context, defaultLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}

// paginate wraps results with count and next/previous page links built from
// the request URL.
func paginate(c *gin.Context, count int64, page, limit int, results any) paginatedResponse {
	resp := paginatedResponse{Count: count, Results: results}

	pageURL := func(p int) *string {
		u := *c.Request.URL
		q := u.Query()
		q.Set("page", strconv.Itoa(p))
		q.Set("limit", strconv.Itoa(limit))
		u.RawQuery = q.Encode()
		s := u.String()
		return &s
	}

	if int64(page*limit) < count {
		resp.Next = pageURL(page + 1)
	}
	if page > 1 {
		resp.Previous = pageURL(page - 1)
	}
	return resp
}
