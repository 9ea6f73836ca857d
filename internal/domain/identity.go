package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ID is a server-assigned identifier. The API encodes ids as JSON numbers,
// but strings are accepted too.
type ID string

// UnmarshalJSON accepts both numeric and string ids.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// String returns the id as text.
func (id ID) String() string { return string(id) }

// IsZero reports whether the id is empty.
func (id ID) IsZero() bool { return strings.TrimSpace(string(id)) == "" }

// Identity is the user payload embedded in a credential.
type Identity struct {
	ID           ID     `json:"id"`
	Username     string `json:"username"`
	FullName     string `json:"fullName,omitempty"`
	Role         Role   `json:"role"`
	DepartmentID *ID    `json:"departmentId,omitempty"`
}

// DisplayName prefers the full name over the login name.
func (i *Identity) DisplayName() string {
	if i == nil {
		return ""
	}
	if strings.TrimSpace(i.FullName) != "" {
		return i.FullName
	}
	return i.Username
}

// Department returns the department id, or the empty id when unset.
func (i *Identity) Department() ID {
	if i == nil || i.DepartmentID == nil {
		return ""
	}
	return *i.DepartmentID
}
