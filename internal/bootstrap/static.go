// Package bootstrap resolves a TLD to an RDAP base URL or a WHOIS
// server hostname, combining a compiled-in static table, a dynamically
// fetched IANA bootstrap registry, and an IANA WHOIS referral lookup.
package bootstrap

// staticRDAP is the compiled-in TLD -> RDAP base URL table. Every
// value ends in "/domain/" and uses HTTPS, per the resolver's URL
// format invariant. Static entries always win over anything the
// dynamic bootstrap map later reports for the same TLD.
var staticRDAP = map[string]string{
	"com":   "https://rdap.verisign.com/com/v1/domain/",
	"net":   "https://rdap.verisign.com/net/v1/domain/",
	"org":   "https://rdap.publicinterestregistry.org/rdap/domain/",
	"info":  "https://rdap.identitydigital.services/rdap/domain/",
	"biz":   "https://rdap.nic.biz/domain/",
	"app":   "https://pubapi.registry.google/rdap/domain/",
	"dev":   "https://pubapi.registry.google/rdap/domain/",
	"xyz":   "https://rdap.centralnic.com/xyz/domain/",
	"tech":  "https://rdap.centralnic.com/tech/domain/",
	"io":    "https://rdap.nic.io/domain/",
	"ai":    "https://rdap.nic.ai/domain/",
	"me":    "https://rdap.nic.me/domain/",
	"us":    "https://rdap.nic.us/domain/",
	"uk":    "https://rdap.nominet.uk/uk/domain/",
	"de":    "https://rdap.denic.de/domain/",
	"ca":    "https://rdap.ca.fury.ca/domain/",
	"au":    "https://rdap.auda.org.au/domain/",
	"fr":    "https://rdap.nic.fr/domain/",
	"nl":    "https://rdap.sidn.nl/domain/",
	"br":    "https://rdap.registro.br/domain/",
	"in":    "https://rdap.registry.in/domain/",
	"tv":    "https://rdap.nic.tv/domain/",
	"cc":    "https://rdap.verisign.com/cc/v1/domain/",
	"cloud": "https://rdap.nic.cloud/domain/",
	"co":    "https://rdap.nic.co/domain/",
	"shop":  "https://rdap.nic.shop/domain/",
	"online": "https://rdap.centralnic.com/online/domain/",
	"site":  "https://rdap.centralnic.com/site/domain/",
	"store": "https://rdap.centralnic.com/store/domain/",
	"club":  "https://rdap.nic.club/domain/",
	"live":  "https://rdap.nic.live/domain/",
	"name":  "https://rdap.nic.name/domain/",
}

// StaticLookup returns the compiled-in RDAP base URL for tld, if any.
func StaticLookup(tld string) (string, bool) {
	url, ok := staticRDAP[tld]
	return url, ok
}

// staticTLDs returns the static table's keys, used by GetAllKnownTLDs.
func staticTLDs() []string {
	out := make([]string, 0, len(staticRDAP))
	for tld := range staticRDAP {
		out = append(out, tld)
	}
	return out
}
