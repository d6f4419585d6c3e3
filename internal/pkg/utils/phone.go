package utils

import (
	"carepulse-service/internal/pkg/constvars"
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var (
	reInternationalPhone = regexp.MustCompile(`^\+[1-9]\d{9,14}$`)
)

// IsValidInternationalPhone accepts numbers written in E.164 form ("+" then
// 10..15 digits) that libphonenumber also recognises as dialable.
func IsValidInternationalPhone(input string) bool {
	phone := strings.TrimSpace(input)
	if !reInternationalPhone.MatchString(phone) {
		return false
	}

	parsed, err := phonenumbers.Parse(phone, constvars.DefaultPhoneRegion)
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(parsed)
}
