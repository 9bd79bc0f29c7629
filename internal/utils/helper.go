package utils

import (
	"encoding/json"
	"net/http"
	"strconv"
)

func WriteJSONError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func StrPtr(s string) *string {
	return &s
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ParsePagination reads page/limit query values with the defaults the
// storefront uses everywhere. Returns ok=false on zero or negative values.
func ParsePagination(pageStr, limitStr string) (page, limit int, ok bool) {
	page, limit = 1, 10

	if pageStr != "" {
		n, err := strconv.Atoi(pageStr)
		if err != nil || n < 1 {
			return 0, 0, false
		}
		page = n
	}

	if limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			return 0, 0, false
		}
		limit = n
	}

	if limit > 100 {
		limit = 100
	}

	return page, limit, true
}

// TotalPages is ceil(total/limit) without floating point.
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
