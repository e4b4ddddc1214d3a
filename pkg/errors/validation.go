package errors

import (
	"strings"
	"unicode"
)

// ValidateName validates an identifier (artifactId, classifier, target id) for safety.
// It rejects names that could be used for path traversal when the name is
// turned into a repository path.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters or whitespace
//   - No path separators or traversal sequences
//   - Maximum length of 256 characters
func ValidateName(kind, name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "%s cannot be empty", kind)
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "%s too long (max 256 characters)", kind)
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "%s %q contains whitespace or control characters", kind, name)
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidInput, "%s %q contains invalid characters: %q", kind, name, pattern)
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL %q must use http or https scheme", rawURL)
	}

	return nil
}
