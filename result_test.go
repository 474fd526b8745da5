package domaincheck

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAvailableRequiresKnownAndValue(t *testing.T) {
	r := &DomainResult{Available: availableResult()}
	assert.True(t, r.IsAvailable())

	r = &DomainResult{Available: unavailableResult()}
	assert.False(t, r.IsAvailable())

	r = &DomainResult{Available: unknownResult()}
	assert.False(t, r.IsAvailable())
}

func TestFailedReflectsErrorField(t *testing.T) {
	r := &DomainResult{}
	assert.False(t, r.Failed())

	r = &DomainResult{Error: errors.New("boom")}
	assert.True(t, r.Failed())
}

func TestMethodString(t *testing.T) {
	assert.Equal(t, "none", MethodNone.String())
	assert.Equal(t, "rdap", MethodRDAP.String())
	assert.Equal(t, "bootstrap", MethodBootstrap.String())
	assert.Equal(t, "whois", MethodWHOIS.String())
}
