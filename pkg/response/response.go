package response

// Response represents a standard API response format
type Response struct {
	Status     string      `json:"status"`      // "success" or "error"
	StatusCode int         `json:"status_code"` // HTTP status code
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	RedirectTo string      `json:"redirect_to,omitempty"` // where the client should navigate, set on auth failures
}

// Success returns a standard success response wrapping the data
func Success(statusCode int, data interface{}) Response {
	return Response{
		Status:     "success",
		StatusCode: statusCode,
		Data:       data,
	}
}

// Error returns a standard error response wrapping the error message
func Error(statusCode int, err string) Response {
	return Response{
		Status:     "error",
		StatusCode: statusCode,
		Error:      err,
	}
}

// ErrorRedirect returns an error response carrying a navigation target.
func ErrorRedirect(statusCode int, err, redirectTo string) Response {
	return Response{
		Status:     "error",
		StatusCode: statusCode,
		Error:      err,
		RedirectTo: redirectTo,
	}
}

// Paginated is the list envelope the dashboard consumes.
type Paginated struct {
	Data        interface{} `json:"data"`
	CurrentPage int         `json:"current_page"`
	PerPage     int         `json:"per_page"`
	Total       int64       `json:"total"`
	LastPage    int         `json:"last_page"`
}
