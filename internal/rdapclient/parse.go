package rdapclient

import "encoding/json"

// Registration is the registration metadata extracted from a taken
// domain's RDAP response. All fields are optional; RDAP servers vary
// widely in what they populate.
type Registration struct {
	Registrar string

	CreatedAt string
	UpdatedAt string
	ExpiresAt string

	Statuses    []string
	Nameservers []string
}

// domainResponse mirrors the handful of top-level RDAP domain object
// fields this client reads. Unknown fields are ignored by
// encoding/json automatically.
type domainResponse struct {
	Entities    []entity     `json:"entities"`
	Events      []event      `json:"events"`
	Status      []string     `json:"status"`
	Nameservers []nameserver `json:"nameservers"`
}

type entity struct {
	Roles      []string        `json:"roles"`
	VCardArray json.RawMessage `json:"vcardArray"`
	PublicIDs  []publicID      `json:"publicIds"`
	Handle     string          `json:"handle"`
	Name       string          `json:"name"`
}

type publicID struct {
	Identifier string `json:"identifier"`
}

type event struct {
	Action string `json:"eventAction"`
	Date   string `json:"eventDate"`
}

type nameserver struct {
	LDHName string `json:"ldhName"`
}

// parseRegistration decodes an RDAP domain response body into a
// Registration, tolerating any missing field.
func parseRegistration(body []byte) (*Registration, error) {
	var resp domainResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}

	info := &Registration{Statuses: resp.Status}

	for _, ns := range resp.Nameservers {
		if ns.LDHName != "" {
			info.Nameservers = append(info.Nameservers, ns.LDHName)
		}
	}

	for _, ev := range resp.Events {
		switch ev.Action {
		case "registration":
			info.CreatedAt = ev.Date
		case "expiration":
			info.ExpiresAt = ev.Date
		case "last update of RDAP database", "last changed":
			info.UpdatedAt = ev.Date
		}
	}

	info.Registrar = extractRegistrar(resp.Entities)

	return info, nil
}

// extractRegistrar walks the top-level entities array for the first
// entity whose roles contain "registrar", and returns its name via the
// fallback chain: vCard "fn" value, then the first publicIds
// identifier, then handle, then name. The first matching entity wins;
// iteration stops there even if it yields no name.
func extractRegistrar(entities []entity) string {
	for _, e := range entities {
		if !hasRole(e.Roles, "registrar") {
			continue
		}

		if name := vCardFN(e.VCardArray); name != "" {
			return name
		}
		for _, pid := range e.PublicIDs {
			if pid.Identifier != "" {
				return pid.Identifier
			}
		}
		if e.Handle != "" {
			return e.Handle
		}
		return e.Name
	}
	return ""
}

func hasRole(roles []string, target string) bool {
	for _, r := range roles {
		if r == target {
			return true
		}
	}
	return false
}

// vCardFN extracts the "fn" property's value from a jCard array. The
// jCard wire shape is ["vcard", [ [name, params, type, value], ... ]];
// we only ever need the single "fn" (formatted name) property, so this
// walks the raw 4-tuples directly rather than building a general vCard
// model.
func vCardFN(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var outer []json.RawMessage
	if err := json.Unmarshal(raw, &outer); err != nil || len(outer) != 2 {
		return ""
	}

	var properties []json.RawMessage
	if err := json.Unmarshal(outer[1], &properties); err != nil {
		return ""
	}

	for _, prop := range properties {
		var tuple []json.RawMessage
		if err := json.Unmarshal(prop, &tuple); err != nil || len(tuple) != 4 {
			continue
		}
		var name string
		if err := json.Unmarshal(tuple[0], &name); err != nil || name != "fn" {
			continue
		}
		var value string
		if err := json.Unmarshal(tuple[3], &value); err != nil {
			continue
		}
		return value
	}
	return ""
}
