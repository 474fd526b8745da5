package domaincheck

import "strings"

const (
	minBaseNameLen = 2
	maxBaseNameLen = 63
	minFQDNLen     = 4
	maxFQDNLen     = 253
	maxLabelLen    = 63
)

// validateBaseName checks a bare base name (no dots): 2-63 characters,
// alphanumeric or hyphen, no leading/trailing hyphen.
func validateBaseName(name string) error {
	if len(name) < minBaseNameLen || len(name) > maxBaseNameLen {
		return newInvalidDomainError(name, "base name must be 2-63 characters")
	}
	if strings.Contains(name, ".") {
		return newInvalidDomainError(name, "base name must not contain a dot")
	}
	if name[0] == '-' || name[len(name)-1] == '-' {
		return newInvalidDomainError(name, "base name must not start or end with a hyphen")
	}
	for _, r := range name {
		if !isAlphanumericOrHyphen(r) {
			return newInvalidDomainError(name, "base name must be alphanumeric or hyphen")
		}
	}
	return nil
}

// validateFQDN checks a fully-qualified domain name: 4-253 characters,
// at least one dot, each label 1-63 characters, alphanumeric or
// hyphen, no label starting/ending with hyphen, the whole string not
// starting or ending with dot or hyphen.
func validateFQDN(fqdn string) error {
	if len(fqdn) < minFQDNLen || len(fqdn) > maxFQDNLen {
		return newInvalidDomainError(fqdn, "fqdn must be 4-253 characters")
	}
	if !strings.Contains(fqdn, ".") {
		return newInvalidDomainError(fqdn, "fqdn must contain at least one dot")
	}
	if fqdn[0] == '.' || fqdn[0] == '-' || fqdn[len(fqdn)-1] == '.' || fqdn[len(fqdn)-1] == '-' {
		return newInvalidDomainError(fqdn, "fqdn must not start or end with a dot or hyphen")
	}
	labels := strings.Split(fqdn, ".")
	for _, label := range labels {
		if len(label) < 1 || len(label) > maxLabelLen {
			return newInvalidDomainError(fqdn, "each label must be 1-63 characters")
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return newInvalidDomainError(fqdn, "no label may start or end with a hyphen")
		}
		for _, r := range label {
			if !isAlphanumericOrHyphen(r) {
				return newInvalidDomainError(fqdn, "labels must be alphanumeric or hyphen")
			}
		}
	}
	return nil
}

// normalizeDomain trims whitespace and rejects empty input, the first
// step every validator path shares.
func normalizeDomain(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", newInvalidDomainError(s, "domain must not be empty")
	}
	return trimmed, nil
}

// tldOf extracts the substring after the final dot, lowercased. The
// caller is expected to have already validated fqdn contains a dot;
// callers that haven't get an *invalid-domain* error instead of a
// panic.
func tldOf(fqdn string) (string, error) {
	idx := strings.LastIndexByte(fqdn, '.')
	if idx < 0 || idx == len(fqdn)-1 {
		return "", newInvalidDomainError(fqdn, "domain has no tld")
	}
	return strings.ToLower(fqdn[idx+1:]), nil
}

func isAlphanumericOrHyphen(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-'
}
