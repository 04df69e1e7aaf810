package domain

import "strings"

// Role is a normalized role label carried by an Identity.
type Role string

const (
	RoleAdmin          Role = "ADMIN"
	RoleRepresentative Role = "REPRESENTATIVE"
	RoleClient         Role = "CLIENT"
)

// roleAliases maps the labels the marketplace backend emits to canonical roles.
var roleAliases = map[string]Role{
	"ADMIN":          RoleAdmin,
	"ADMINISTRADOR":  RoleAdmin,
	"REPRESENTATIVE": RoleRepresentative,
	"REPRESENTANTE":  RoleRepresentative,
	"CLIENT":         RoleClient,
	"CLIENTE":        RoleClient,
}

// Identity is the signed-in actor held by the session store.
type Identity struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email,omitempty"`
	FullName     string `json:"fullName"`
	Phone        string `json:"phone"`
	BirthDate    string `json:"birthDate"`
	RegisteredAt string `json:"registeredAt,omitempty"`
	AvatarURL    string `json:"avatarUrl,omitempty"`
	Roles        []Role `json:"roles"`
}

// IdentityPatch carries a partial profile update. Nil fields are left untouched.
type IdentityPatch struct {
	Username  *string
	Email     *string
	FullName  *string
	Phone     *string
	BirthDate *string
	AvatarURL *string
}

// NormalizeRoles maps known aliases to canonical roles, keeps unknown labels
// verbatim and falls back to RoleClient when nothing recognizable is present.
func NormalizeRoles(labels []string) []Role {
	roles := make([]Role, 0, len(labels)+1)
	seen := make(map[Role]struct{}, len(labels))
	recognized := false

	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		r, ok := roleAliases[strings.ToUpper(l)]
		if ok {
			recognized = true
		} else {
			r = Role(l)
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		roles = append(roles, r)
	}

	if !recognized {
		roles = append(roles, RoleClient)
	}
	return roles
}

// Normalized returns a copy of the identity whose role set honours the
// never-empty invariant.
func (i Identity) Normalized() Identity {
	labels := make([]string, len(i.Roles))
	for n, r := range i.Roles {
		labels[n] = string(r)
	}
	i.Roles = NormalizeRoles(labels)
	return i
}

// HasRole reports whether the identity carries role.
func (i Identity) HasRole(role Role) bool {
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Apply merges the non-nil fields of p into a copy of i.
func (i Identity) Apply(p IdentityPatch) Identity {
	if p.Username != nil {
		i.Username = *p.Username
	}
	if p.Email != nil {
		i.Email = *p.Email
	}
	if p.FullName != nil {
		i.FullName = *p.FullName
	}
	if p.Phone != nil {
		i.Phone = *p.Phone
	}
	if p.BirthDate != nil {
		i.BirthDate = *p.BirthDate
	}
	if p.AvatarURL != nil {
		i.AvatarURL = *p.AvatarURL
	}
	return i
}

// Clone returns a deep copy safe to hand out of a store.
func (i Identity) Clone() Identity {
	i.Roles = append([]Role(nil), i.Roles...)
	return i
}
