// Package validate holds the pure input checks the client runs before any
// service call. Every function is total: malformed input comes back as a
// structured result, never a panic or an error return.
package validate

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/wanderlog/expenseclient/internal/storage"
)

const (
	maxEmailLength = 254
	maxLabelLength = 50
	maxNoteLength  = 500
	maxAmount      = 10_000_000
	minCodeLength  = 4
	maxCodeLength  = 8
)

// Result is the outcome of validating a single string field.
type Result struct {
	Valid bool
	Value string
	Err   string
}

// AmountResult is the outcome of validating an amount.
type AmountResult struct {
	Valid bool
	Value float64
	Err   string
}

var (
	htmlTagPattern      = regexp.MustCompile(`<[^>]*>`)
	jsSchemePattern     = regexp.MustCompile(`(?i)javascript:`)
	eventHandlerPattern = regexp.MustCompile(`(?i)on\w+=`)
	nonDigitPattern     = regexp.MustCompile(`\D`)
)

// SanitizeText strips HTML tags, javascript: scheme substrings and inline
// event-handler substrings, trims, and truncates to maxLength.
func SanitizeText(text string, maxLength int) string {
	sanitized := htmlTagPattern.ReplaceAllString(text, "")
	sanitized = jsSchemePattern.ReplaceAllString(sanitized, "")
	sanitized = eventHandlerPattern.ReplaceAllString(sanitized, "")
	sanitized = strings.TrimSpace(sanitized)

	if maxLength >= 0 && len([]rune(sanitized)) > maxLength {
		sanitized = string([]rune(sanitized)[:maxLength])
	}

	return sanitized
}

// Email normalizes and validates an email address.
func Email(email string) Result {
	sanitized := strings.ToLower(strings.TrimSpace(email))

	if sanitized == "" {
		return Result{Err: "이메일을 입력해주세요."}
	}

	if len(sanitized) > maxEmailLength {
		return Result{Err: "이메일이 너무 깁니다."}
	}

	if !wellFormedEmail(sanitized) {
		return Result{Err: "올바른 이메일 형식이 아닙니다."}
	}

	return Result{Valid: true, Value: sanitized}
}

// wellFormedEmail requires a single @ with non-whitespace on both sides and
// a dot in the domain part.
func wellFormedEmail(email string) bool {
	at := strings.Count(email, "@")
	if at != 1 {
		return false
	}

	parts := strings.SplitN(email, "@", 2)
	local, domain := parts[0], parts[1]
	if local == "" || domain == "" {
		return false
	}
	if strings.ContainsAny(local, " \t") || strings.ContainsAny(domain, " \t") {
		return false
	}

	dot := strings.LastIndex(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

// Amount validates a raw amount string. The decimal-places check runs on the
// string form, so floating-point representation error near multiples of 0.01
// cannot reject valid input.
func Amount(raw string) AmountResult {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return AmountResult{Err: "금액을 입력해주세요."}
	}

	// ParseFloat accepts "NaN" and "Inf", neither of which any comparison
	// below would reject.
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return AmountResult{Err: "올바른 숫자를 입력해주세요."}
	}

	if value < 0 {
		return AmountResult{Err: "금액은 0 이상이어야 합니다."}
	}

	if value > maxAmount {
		return AmountResult{Err: "금액이 너무 큽니다. (최대: 10,000,000엔)"}
	}

	if decimalPlaces(trimmed) > 2 {
		return AmountResult{Err: "소수점 둘째 자리까지만 입력 가능합니다."}
	}

	return AmountResult{Valid: true, Value: value}
}

func decimalPlaces(s string) int {
	if i := strings.IndexAny(s, "eE"); i != -1 {
		// Scientific notation; fall back to the parsed value's shortest form.
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		s = strconv.FormatFloat(v, 'f', -1, 64)
	}
	dot := strings.IndexByte(s, '.')
	if dot == -1 {
		return 0
	}
	return len(s) - dot - 1
}

// VerificationCode strips non-digit characters and requires the remaining
// digits to be between 4 and 8 long.
func VerificationCode(code string) Result {
	sanitized := nonDigitPattern.ReplaceAllString(strings.TrimSpace(code), "")

	if len(sanitized) < minCodeLength || len(sanitized) > maxCodeLength {
		return Result{Err: "인증 코드는 4-8자리 숫자여야 합니다."}
	}

	return Result{Valid: true, Value: sanitized}
}

// ExpenseInput is the raw, user-entered form of an expense.
type ExpenseInput struct {
	Date          string
	Category      string
	Amount        string
	PaymentMethod string
	Note          string
}

// ExpenseResult reports overall validity, a per-field error mapping, and a
// sanitized typed copy ready for the service layer.
type ExpenseResult struct {
	Valid     bool
	Errors    map[string]string
	Sanitized storage.ExpenseInput
}

// Expense validates a composite expense record.
func Expense(input ExpenseInput) ExpenseResult {
	errors := map[string]string{}

	if input.Category == "" {
		errors["category"] = "카테고리를 선택해주세요."
	} else if len([]rune(input.Category)) > maxLabelLength {
		errors["category"] = "카테고리가 너무 깁니다."
	}

	if input.PaymentMethod == "" {
		errors["paymentMethod"] = "결제 방식을 선택해주세요."
	} else if len([]rune(input.PaymentMethod)) > maxLabelLength {
		errors["paymentMethod"] = "결제 방식이 너무 깁니다."
	}

	amount := Amount(input.Amount)
	if !amount.Valid {
		errors["amount"] = amount.Err
	}

	if input.Date == "" {
		errors["date"] = "날짜를 선택해주세요."
	} else if date, err := parseDate(input.Date); err != nil {
		errors["date"] = "날짜 형식이 올바르지 않습니다."
	} else {
		maxFuture := time.Now().Add(24 * time.Hour)
		if date.After(maxFuture) {
			errors["date"] = "미래 날짜는 선택할 수 없습니다."
		}
		if date.Before(time.Date(2000, 1, 1, 0, 0, 0, 0, time.Local)) {
			errors["date"] = "너무 오래된 날짜입니다."
		}
	}

	if len([]rune(input.Note)) > maxNoteLength {
		errors["note"] = "메모는 500자 이하로 입력해주세요."
	}

	return ExpenseResult{
		Valid:  len(errors) == 0,
		Errors: errors,
		Sanitized: storage.ExpenseInput{
			Date:          input.Date,
			Category:      SanitizeText(input.Category, maxLabelLength),
			Amount:        amount.Value,
			PaymentMethod: SanitizeText(input.PaymentMethod, maxLabelLength),
			Note:          SanitizeText(input.Note, maxNoteLength),
		},
	}
}

func parseDate(s string) (time.Time, error) {
	layouts := []string{storage.DateLayout, "2006-01-02"}

	var err error
	for _, layout := range layouts {
		var t time.Time
		t, err = time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
