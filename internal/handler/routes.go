package handler

// APIV1Prefix is the base path for the public HTTP API.
const APIV1Prefix = "/api/v1"

// Query parameters understood by list endpoints.
const (
	PageParam    = "page"
	PerPageParam = "per_page"
	StatusParam  = "status"
)
