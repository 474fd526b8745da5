package rdapclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRegistrationFallsBackToPublicIDWhenNoVCard(t *testing.T) {
	body := []byte(`{
		"entities": [{"roles": ["registrar"], "publicIds": [{"identifier": "146"}]}]
	}`)

	info, err := parseRegistration(body)
	require.NoError(t, err)
	assert.Equal(t, "146", info.Registrar)
}

func TestParseRegistrationFallsBackToHandleWhenNoVCardOrPublicID(t *testing.T) {
	body := []byte(`{
		"entities": [{"roles": ["registrar"], "handle": "REGISTRAR-146"}]
	}`)

	info, err := parseRegistration(body)
	require.NoError(t, err)
	assert.Equal(t, "REGISTRAR-146", info.Registrar)
}

func TestParseRegistrationFallsBackToNameAsLastResort(t *testing.T) {
	body := []byte(`{
		"entities": [{"roles": ["registrar"], "name": "Example Registrar"}]
	}`)

	info, err := parseRegistration(body)
	require.NoError(t, err)
	assert.Equal(t, "Example Registrar", info.Registrar)
}

func TestParseRegistrationIgnoresNonRegistrarEntities(t *testing.T) {
	body := []byte(`{
		"entities": [
			{"roles": ["registrant"], "name": "Some Person"},
			{"roles": ["registrar"], "name": "The Real Registrar"}
		]
	}`)

	info, err := parseRegistration(body)
	require.NoError(t, err)
	assert.Equal(t, "The Real Registrar", info.Registrar)
}

func TestParseRegistrationFirstRegistrarEntityWins(t *testing.T) {
	body := []byte(`{
		"entities": [
			{"roles": ["registrar"], "handle": "FIRST"},
			{"roles": ["registrar"], "handle": "SECOND"}
		]
	}`)

	info, err := parseRegistration(body)
	require.NoError(t, err)
	assert.Equal(t, "FIRST", info.Registrar)
}

func TestParseRegistrationNoRegistrarEntityLeavesEmptyRegistrar(t *testing.T) {
	body := []byte(`{"entities": [{"roles": ["registrant"], "name": "Someone"}]}`)

	info, err := parseRegistration(body)
	require.NoError(t, err)
	assert.Empty(t, info.Registrar)
}

func TestParseRegistrationMalformedJSONErrors(t *testing.T) {
	_, err := parseRegistration([]byte(`{not valid json`))
	require.Error(t, err)
}

func TestVCardFNIgnoresNonFNProperties(t *testing.T) {
	raw := []byte(`["vcard", [["version", {}, "text", "4.0"], ["org", {}, "text", "Some Org"]]]`)
	assert.Empty(t, vCardFN(raw))
}

func TestVCardFNHandlesEmptyArray(t *testing.T) {
	assert.Empty(t, vCardFN(nil))
	assert.Empty(t, vCardFN([]byte{}))
}

func TestVCardFNHandlesMalformedShape(t *testing.T) {
	assert.Empty(t, vCardFN([]byte(`"not an array"`)))
	assert.Empty(t, vCardFN([]byte(`["vcard"]`)))
}
