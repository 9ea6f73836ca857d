package dto

import (
	"strconv"
	"strings"
	"time"

	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/domain"
	apperrors "github.com/Python-viet/quan-ly-thiet-bi-frontend/pkg/util"
)

const dateLayout = "2006-01-02"

// Week bounds of a school year.
const (
	MinWeek = 1
	MaxWeek = 35
)

// LoanFormRequest is the submitted loan form. Numbers stay strings so that an
// empty field yields a validation message instead of a parse error.
type LoanFormRequest struct {
	Week           string `form:"week"`
	BorrowDate     string `form:"borrow_date"`
	ReturnDate     string `form:"return_date"`
	DeviceName     string `form:"device_name"`
	Quantity       string `form:"quantity"`
	LessonName     string `form:"lesson_name"`
	TeachingPeriod string `form:"teaching_period"`
	ClassName      string `form:"class_name"`
	UsageCount     string `form:"usage_count"`
	DeviceStatus   string `form:"device_status"`
	UsesIT         string `form:"uses_it"`
}

// FromLoanForm fills the request from an existing record for editing.
func FromLoanForm(f domain.LoanForm) LoanFormRequest {
	r := LoanFormRequest{
		Week:           strconv.Itoa(f.Week),
		BorrowDate:     dateOnly(f.BorrowDate),
		ReturnDate:     dateOnly(f.ReturnDate),
		DeviceName:     f.DeviceName,
		Quantity:       strconv.Itoa(f.Quantity),
		LessonName:     f.LessonName,
		TeachingPeriod: f.TeachingPeriod,
		ClassName:      f.ClassName,
		UsageCount:     strconv.Itoa(f.UsageCount),
		DeviceStatus:   f.DeviceStatus,
	}
	if f.UsesIT {
		r.UsesIT = "true"
	}
	return r
}

// ToInput validates the request and builds the API body for schoolYear.
func (r LoanFormRequest) ToInput(schoolYear string) (domain.LoanFormInput, error) {
	in := domain.LoanFormInput{
		DeviceName:     strings.TrimSpace(r.DeviceName),
		LessonName:     strings.TrimSpace(r.LessonName),
		TeachingPeriod: strings.TrimSpace(r.TeachingPeriod),
		ClassName:      strings.TrimSpace(r.ClassName),
		DeviceStatus:   strings.TrimSpace(r.DeviceStatus),
		UsesIT:         checked(r.UsesIT),
		SchoolYear:     schoolYear,
	}

	week, err := strconv.Atoi(strings.TrimSpace(r.Week))
	if err != nil || week < MinWeek || week > MaxWeek {
		return in, apperrors.NewValidationError("Tuần phải từ 1 đến 35.", field("week"))
	}
	in.Week = week

	if in.BorrowDate, err = parseDate(r.BorrowDate); err != nil {
		return in, apperrors.NewValidationError("Vui lòng chọn ngày mượn hợp lệ.", field("borrow_date"))
	}
	if in.ReturnDate, err = parseDate(r.ReturnDate); err != nil {
		return in, apperrors.NewValidationError("Vui lòng chọn ngày trả hợp lệ.", field("return_date"))
	}
	if in.DeviceName == "" {
		return in, apperrors.NewValidationError("Vui lòng nhập tên thiết bị.", field("device_name"))
	}

	qty, err := strconv.Atoi(strings.TrimSpace(r.Quantity))
	if err != nil || qty < 1 {
		return in, apperrors.NewValidationError("Số lượng phải lớn hơn 0.", field("quantity"))
	}
	in.Quantity = qty

	if in.LessonName == "" {
		return in, apperrors.NewValidationError("Vui lòng nhập tên bài dạy.", field("lesson_name"))
	}

	usage, err := strconv.Atoi(strings.TrimSpace(r.UsageCount))
	if err != nil || usage < 1 {
		return in, apperrors.NewValidationError("Số lượt sử dụng phải lớn hơn 0.", field("usage_count"))
	}
	in.UsageCount = usage

	if !domain.IsDeviceStatus(in.DeviceStatus) {
		return in, apperrors.NewValidationError("Vui lòng chọn tình trạng thiết bị.", field("device_status"))
	}
	return in, nil
}

func parseDate(raw string) (string, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	return t.Format(dateLayout), nil
}

// dateOnly trims an API timestamp such as 2024-10-01T00:00:00.000Z to its date.
func dateOnly(s string) string {
	if len(s) >= len(dateLayout) {
		if _, err := time.Parse(dateLayout, s[:len(dateLayout)]); err == nil {
			return s[:len(dateLayout)]
		}
	}
	return s
}

// DisplayDate renders an API date as DD/MM/YYYY.
func DisplayDate(s string) string {
	t, err := time.Parse(dateLayout, dateOnly(s))
	if err != nil {
		return s
	}
	return t.Format("02/01/2006")
}
