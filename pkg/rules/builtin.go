package rules

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goliatone/go-jobform/pkg/model"
)

// DateLayout is the wire format of date fields (HTML date inputs).
const DateLayout = "2006-01-02"

// Required fails on an empty string or an empty upload list.
func Required(message string) Rule {
	return New(model.ValidationRuleRequired, message, func(value model.Value, _ Env) bool {
		return !value.IsEmpty()
	})
}

// MinLength requires at least n characters when the value is present.
func MinLength(n int, message string) Rule {
	return New(model.ValidationRuleMinLength, message, func(value model.Value, _ Env) bool {
		if value.Text == "" {
			return true
		}
		return utf8.RuneCountInString(value.Text) >= n
	})
}

// MaxLength allows at most n characters when the value is present.
func MaxLength(n int, message string) Rule {
	return New(model.ValidationRuleMaxLength, message, func(value model.Value, _ Env) bool {
		if value.Text == "" {
			return true
		}
		return utf8.RuneCountInString(value.Text) <= n
	})
}

// Pattern requires re to match when the value is present.
func Pattern(re *regexp.Regexp, message string) Rule {
	return New(model.ValidationRulePattern, message, func(value model.Value, _ Env) bool {
		if value.Text == "" || re == nil {
			return true
		}
		return re.MatchString(value.Text)
	})
}

// MinAge requires Env.Now's year minus the birth year to be at least years.
// Month and day are not considered. Unparseable dates fail.
func MinAge(years int, message string) Rule {
	return New(model.ValidationRuleMinAge, message, func(value model.Value, env Env) bool {
		dob, err := time.Parse(DateLayout, strings.TrimSpace(value.Text))
		if err != nil {
			return false
		}
		return AgeInYears(dob, env.now()) >= years
	})
}

// AgeInYears subtracts calendar years only.
func AgeInYears(dob, now time.Time) int {
	return now.Year() - dob.Year()
}

// Accept requires the first uploaded file to have one of the MIME types.
func Accept(types []string, message string) Rule {
	allowed := make(map[string]struct{}, len(types))
	for _, t := range types {
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			allowed[trimmed] = struct{}{}
		}
	}
	return New(model.ValidationRuleAccept, message, func(value model.Value, _ Env) bool {
		file, ok := value.FirstFile()
		if !ok {
			return false
		}
		_, ok = allowed[file.Type]
		return ok
	})
}

// MaxFileSize caps the first uploaded file at limit bytes.
func MaxFileSize(limit int64, message string) Rule {
	return New(model.ValidationRuleMaxFileSize, message, func(value model.Value, _ Env) bool {
		file, ok := value.FirstFile()
		if !ok {
			return false
		}
		return file.Size <= limit
	})
}
