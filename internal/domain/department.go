package domain

// Department represents a subject group (tổ chuyên môn).
type Department struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}
