package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for project and contribution fields.
const (
	maxProjectNameLen      = 200
	maxEventDescriptionLen = 2_000
	maxContributorNameLen  = 120
	maxCoverTitleLen       = 120
	maxCoverDescriptionLen = 600
)

// validateProject checks project creation inputs and returns the first
// error found, or "".
func validateProject(name, eventDescription string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Project name is required."
	}
	if utf8.RuneCountInString(name) > maxProjectNameLen {
		return "Project name is too long (max 200 characters)."
	}
	if utf8.RuneCountInString(eventDescription) > maxEventDescriptionLen {
		return "Event description is too long (max 2,000 characters)."
	}
	return ""
}

// validateContributor checks a contributor name.
func validateContributor(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Contributor name is required."
	}
	if utf8.RuneCountInString(name) > maxContributorNameLen {
		return "Contributor name is too long (max 120 characters)."
	}
	return ""
}

// validateCover checks cover text fields. Style fields are sanitized
// at render time, so only lengths are enforced here.
func validateCover(title, description string) string {
	if utf8.RuneCountInString(title) > maxCoverTitleLen {
		return "Cover title is too long (max 120 characters)."
	}
	if utf8.RuneCountInString(description) > maxCoverDescriptionLen {
		return "Cover description is too long (max 600 characters)."
	}
	return ""
}
