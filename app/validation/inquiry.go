package validation

import (
	"regexp"
	"strings"
	"time"

	"github.com/Abburizal/royal-wedding-byullysjah/app/models"
)

var (
	emailRe      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe      = regexp.MustCompile(`^[+]?[\d\s\-()]{10,}$`)
	guestCountRe = regexp.MustCompile(`^\d+(-\d+)?$`)
	digitRe      = regexp.MustCompile(`\d`)
)

// IsValidEmail reports whether s looks like local@domain.
func IsValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// IsValidPhone accepts 10+ digits with an optional leading + and
// spaces, hyphens or parentheses in between.
func IsValidPhone(s string) bool {
	return phoneRe.MatchString(s) && len(digitRe.FindAllString(s, -1)) >= 10
}

// InquiryInput is the raw form payload before validation. All fields
// arrive as strings; WeddingDate uses the 2006-01-02 form layout.
type InquiryInput struct {
	Name        string `json:"name" form:"name"`
	Email       string `json:"email" form:"email"`
	Phone       string `json:"phone" form:"phone"`
	WeddingDate string `json:"wedding_date" form:"wedding_date"`
	Package     string `json:"package" form:"package"`
	GuestCount  string `json:"guest_count" form:"guest_count"`
	Budget      string `json:"budget" form:"budget"`
	Message     string `json:"message" form:"message"`
}

// ValidateInquiry checks every field rule independently and collects
// all violations. On success it returns a normalized record: fields
// trimmed, email lowercased, defaults applied. It has no side effects
// beyond reading now, which fixes the wedding-date boundary.
func ValidateInquiry(kind string, in InquiryInput, now time.Time) (*models.Inquiry, models.ValidationErrors) {
	var errs models.ValidationErrors

	name := strings.TrimSpace(in.Name)
	if len(name) < 2 {
		errs = append(errs, models.FieldError{Field: "name", Message: "Nama harus diisi minimal 2 karakter"})
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !IsValidEmail(email) {
		errs = append(errs, models.FieldError{Field: "email", Message: "Email tidak valid"})
	}

	phone := strings.TrimSpace(in.Phone)
	if phone == "" || !IsValidPhone(phone) {
		errs = append(errs, models.FieldError{Field: "phone", Message: "Nomor telepon tidak valid"})
	}

	message := strings.TrimSpace(in.Message)
	if len(message) < 10 || len(message) > 1000 {
		errs = append(errs, models.FieldError{Field: "message", Message: "Pesan harus diisi minimal 10 karakter (maksimal 1000)"})
	}

	var weddingDate *time.Time
	if d := strings.TrimSpace(in.WeddingDate); d != "" {
		parsed, err := time.ParseInLocation("2006-01-02", d, now.Location())
		if err != nil {
			errs = append(errs, models.FieldError{Field: "wedding_date", Message: "Tanggal pernikahan tidak valid"})
		} else if !parsed.After(now) {
			errs = append(errs, models.FieldError{Field: "wedding_date", Message: "Tanggal pernikahan harus di masa depan"})
		} else {
			weddingDate = &parsed
		}
	}

	pkg := strings.TrimSpace(in.Package)
	if pkg != "" && !models.ValidPackage(pkg) {
		errs = append(errs, models.FieldError{Field: "package", Message: "Paket harus salah satu dari: basic, premium, luxury, custom"})
	}

	guestCount := strings.TrimSpace(in.GuestCount)
	if kind == models.KindContact && guestCount != "" && !guestCountRe.MatchString(guestCount) {
		errs = append(errs, models.FieldError{Field: "guest_count", Message: "Jumlah tamu harus berupa angka atau rentang (misal \"50\" atau \"50-100\")"})
	}

	budget := strings.TrimSpace(in.Budget)
	if kind == models.KindInquiry {
		if budget == "" {
			budget = "discuss"
		} else if !models.ValidBudget(budget) {
			errs = append(errs, models.FieldError{Field: "budget", Message: "Budget tidak valid"})
		}
	} else {
		budget = ""
	}

	if len(errs) > 0 {
		return nil, errs
	}

	inq := &models.Inquiry{
		Kind:        kind,
		Name:        name,
		Email:       email,
		Phone:       phone,
		WeddingDate: weddingDate,
		Package:     pkg,
		GuestCount:  guestCount,
		Budget:      budget,
		Message:     message,
		Status:      models.StatusNew,
		Source:      "website",
	}
	if kind == models.KindInquiry {
		inq.Priority = models.PriorityMedium
	}
	return inq, nil
}
