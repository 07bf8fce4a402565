package domain

// Capability names a permission checked against a principal's roles.
type Capability string

const (
	CapabilityAuthorContent Capability = "author_content"
)

// capabilityRoles lists, per capability, the roles that grant it. Holding
// any one of them is enough. Author is listed first since it is the more
// common role.
var capabilityRoles = map[Capability][]RoleID{
	CapabilityAuthorContent: {RoleAuthor, RoleAdmin},
}

// HasCapability reports whether id may perform operations gated by c.
// Anonymous identities and unknown capabilities are always denied.
func HasCapability(id Identity, c Capability) bool {
	p, ok := id.Principal()
	if !ok {
		return false
	}
	for _, r := range capabilityRoles[c] {
		if p.HasRole(r) {
			return true
		}
	}
	return false
}

// CanAuthor is shorthand for HasCapability(id, CapabilityAuthorContent).
func CanAuthor(id Identity) bool {
	return HasCapability(id, CapabilityAuthorContent)
}
