package logging

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/m-mizutani/masq"
)

// DefaultRedactFields are the applicant fields masked when no list is given.
var DefaultRedactFields = []string{"email", "phone", "dob"}

// emailPattern catches addresses that end up in free-form attributes such as
// error messages.
var emailPattern = regexp.MustCompile(`[^\s@"]+@[^\s@"]+\.[^\s@"]+`)

func newRedactAttr(fields []string) func([]string, slog.Attr) slog.Attr {
	if len(fields) == 0 {
		fields = DefaultRedactFields
	}

	opts := make([]masq.Option, 0, len(fields)+1)
	for _, name := range fields {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		opts = append(opts, masq.WithFieldName(name))
	}
	opts = append(opts, masq.WithRegex(emailPattern))

	return masq.New(opts...)
}
