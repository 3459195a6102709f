package pagination

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
	MinPerPage     = 1
)

// Params holds validated list-query parameters as the dashboard sends them:
// page/per_page plus free-text search and whitelisted sorting.
type Params struct {
	Page      int
	PerPage   int
	Offset    int
	Search    string
	SortBy    string
	SortOrder string // "asc" or "desc"
}

// Parse extracts and validates list controls from query parameters.
func Parse(c *gin.Context) Params {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(DefaultPerPage)))

	if page < 1 {
		page = DefaultPage
	}
	if perPage < MinPerPage {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	order := strings.ToLower(c.DefaultQuery("sort_order", "asc"))
	if order != "asc" && order != "desc" {
		order = "asc"
	}

	return Params{
		Page:      page,
		PerPage:   perPage,
		Offset:    (page - 1) * perPage,
		Search:    strings.TrimSpace(c.Query("search")),
		SortBy:    strings.TrimSpace(c.Query("sort_by")),
		SortOrder: order,
	}
}

// LastPage computes the highest page number for a total row count.
func (p Params) LastPage(total int64) int {
	if total <= 0 {
		return 1
	}
	last := int((total + int64(p.PerPage) - 1) / int64(p.PerPage))
	if last < 1 {
		last = 1
	}
	return last
}
