package simclient

import "strings"

// initialisms maps snake_case segments that render fully upper-cased in API
// action names, e.g. list_mfa_devices -> ListMFADevices. Segments that are
// only sometimes upper-cased (like "id": EC2's ModifyIdFormat keeps "Id")
// don't belong here; those operations go in overrides instead.
var initialisms = map[string]string{
	"db":   "DB",
	"mfa":  "MFA",
	"saml": "SAML",
	"ssh":  "SSH",
	"sse":  "SSE",
}

// overrides maps whole operation names whose canonical action the segment
// heuristic cannot produce, currently IAM's OpenID Connect provider family
// (open_id -> OpenID and client_id -> ClientID).
var overrides = map[string]string{
	"add_client_id_to_open_id_connect_provider":      "AddClientIDToOpenIDConnectProvider",
	"create_open_id_connect_provider":                "CreateOpenIDConnectProvider",
	"delete_open_id_connect_provider":                "DeleteOpenIDConnectProvider",
	"get_open_id_connect_provider":                   "GetOpenIDConnectProvider",
	"list_open_id_connect_provider_tags":             "ListOpenIDConnectProviderTags",
	"list_open_id_connect_providers":                 "ListOpenIDConnectProviders",
	"remove_client_id_from_open_id_connect_provider": "RemoveClientIDFromOpenIDConnectProvider",
	"tag_open_id_connect_provider":                   "TagOpenIDConnectProvider",
	"untag_open_id_connect_provider":                 "UntagOpenIDConnectProvider",
	"update_open_id_connect_provider_thumbprint":     "UpdateOpenIDConnectProviderThumbprint",
}

// APIActionName converts an SDK-convention snake_case operation name to the
// canonical PascalCase API action name. Names already in PascalCase pass
// through unchanged, which is the escape hatch for operations with irregular
// capitalization not covered by the override table.
func APIActionName(operation string) string {
	if operation == "" {
		return ""
	}
	if action, ok := overrides[operation]; ok {
		return action
	}
	if !strings.Contains(operation, "_") {
		return strings.ToUpper(operation[:1]) + operation[1:]
	}
	var b strings.Builder
	for _, segment := range strings.Split(operation, "_") {
		if segment == "" {
			continue
		}
		if upper, ok := initialisms[segment]; ok {
			b.WriteString(upper)
			continue
		}
		b.WriteString(strings.ToUpper(segment[:1]))
		b.WriteString(segment[1:])
	}
	return b.String()
}
