package dto

// ListParams holds the cursor query parameter shared by all list endpoints.
type ListParams struct {
	Cursor string `form:"cursor"`
}

// ErrorResponse is the body returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
