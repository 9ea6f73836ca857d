package domain

// DeviceStatuses enumerates accepted device conditions.
var DeviceStatuses = []string{
	"Bình thường",
	"Tự trang bị",
	"Hao hụt hóa chất",
	"Hỏng",
}

// IsDeviceStatus reports whether s is an accepted device condition.
func IsDeviceStatus(s string) bool {
	for _, v := range DeviceStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// LoanForm is an equipment-loan ticket as returned by the API.
type LoanForm struct {
	ID             ID     `json:"id"`
	Week           int    `json:"week"`
	BorrowDate     string `json:"borrow_date"`
	ReturnDate     string `json:"return_date"`
	DeviceName     string `json:"device_name"`
	Quantity       int    `json:"quantity"`
	LessonName     string `json:"lesson_name"`
	TeachingPeriod string `json:"teaching_period"`
	ClassName      string `json:"class_name"`
	UsageCount     int    `json:"usage_count"`
	DeviceStatus   string `json:"device_status"`
	UsesIT         bool   `json:"uses_it"`
	SchoolYear     string `json:"school_year"`
	TeacherName    string `json:"teacher_name,omitempty"`
}

// LoanFormInput is the body sent when creating or updating a loan ticket.
type LoanFormInput struct {
	Week           int    `json:"week"`
	BorrowDate     string `json:"borrow_date"`
	ReturnDate     string `json:"return_date"`
	DeviceName     string `json:"device_name"`
	Quantity       int    `json:"quantity"`
	LessonName     string `json:"lesson_name"`
	TeachingPeriod string `json:"teaching_period"`
	ClassName      string `json:"class_name"`
	UsageCount     int    `json:"usage_count"`
	DeviceStatus   string `json:"device_status"`
	UsesIT         bool   `json:"uses_it"`
	SchoolYear     string `json:"school_year"`
}
