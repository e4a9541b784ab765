package service

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/net/idna"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+$`)
	idnaProfile  = idna.Lookup

	errInvalidEmail = errors.New("invalid email")
)

// normalizeEmail lowercases the address and converts an internationalized domain to its ASCII form.
func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if !emailPattern.MatchString(email) {
		return "", errInvalidEmail
	}
	local, domain, _ := strings.Cut(email, "@")
	asciiDomain, err := idnaProfile.ToASCII(domain)
	if err != nil || asciiDomain == "" {
		return "", errInvalidEmail
	}
	return local + "@" + asciiDomain, nil
}
