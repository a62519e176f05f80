// Package auth exposes the boolean capability queries consulted by the
// panels. The authorization engine itself lives in the backend; this is
// only the client-side view of what the current user may do.
package auth

// Capabilities answers permission queries. Passed once to each panel and
// queried by key rather than threading individual booleans.
type Capabilities interface {
	Has(permission string) bool
	HasAny(permissions []string) bool
	IsSystemAdmin() bool
	CanAccessModule(module string) bool
}

// Static is a fixed capability set as reported at login.
type Static struct {
	Admin       bool
	Permissions map[string]bool
	Modules     map[string]bool
}

// NewStatic builds a capability set from granted permission and module keys.
func NewStatic(admin bool, permissions, modules []string) *Static {
	st := &Static{
		Admin:       admin,
		Permissions: map[string]bool{},
		Modules:     map[string]bool{},
	}
	for _, perm := range permissions {
		st.Permissions[perm] = true
	}
	for _, mod := range modules {
		st.Modules[mod] = true
	}
	return st
}

func (st *Static) Has(permission string) bool {
	if permission == "" || st.Admin {
		return true
	}
	return st.Permissions[permission]
}

func (st *Static) HasAny(permissions []string) bool {
	for _, perm := range permissions {
		if st.Has(perm) {
			return true
		}
	}
	return len(permissions) == 0
}

func (st *Static) IsSystemAdmin() bool {
	return st.Admin
}

func (st *Static) CanAccessModule(module string) bool {
	if st.Admin {
		return true
	}
	return st.Modules[module]
}
