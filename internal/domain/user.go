package domain

// User is an account row as listed by the admin API.
type User struct {
	ID         ID     `json:"id"`
	Username   string `json:"username"`
	FullName   string `json:"full_name"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

// NewUser is the body for account creation.
type NewUser struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	FullName     string `json:"full_name"`
	RoleID       int    `json:"role_id"`
	DepartmentID *ID    `json:"department_id,omitempty"`
}

// BulkUploadResult reports a spreadsheet import.
type BulkUploadResult struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}
