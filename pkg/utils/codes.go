package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	nonSlugChars = regexp.MustCompile("[^a-z0-9-]")
	dashRuns     = regexp.MustCompile("-+")
	accents      = strings.NewReplacer(
		"á", "a", "à", "a", "â", "a", "ã", "a",
		"é", "e", "ê", "e",
		"í", "i",
		"ó", "o", "ô", "o", "õ", "o",
		"ú", "u", "ü", "u",
		"ç", "c",
	)
)

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(s))
}

// Slugify converts a shop name to a URL-friendly slug
func Slugify(s string) string {
	s = accents.Replace(strings.ToLower(strings.TrimSpace(s)))
	s = strings.ReplaceAll(s, " ", "-")
	s = nonSlugChars.ReplaceAllString(s, "")
	s = dashRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// GenerateOrderNumber returns a service-order number such as "OS-2025-3F9A1C2B".
func GenerateOrderNumber(at time.Time) string {
	return fmt.Sprintf("OS-%d-%s", at.Year(), shortID())
}

// GenerateProductCode generates a catalog code for products created without one
func GenerateProductCode() string {
	return "PRD-" + shortID()
}

func shortID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
