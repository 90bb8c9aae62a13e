package roles

import "github.com/gcet-osf/forumctl/pkg/forum"

// Scope selects which role enumeration a picker offers.
type Scope int

const (
	ScopeGlobal Scope = iota
	ScopeProject
)

// Picker tracks the roles a caller may currently offer and the selected
// one. Whenever the caller's role changes the enumeration is recomputed and
// an invalidated selection falls back to the first available option.
type Picker struct {
	scope     Scope
	caller    forum.Role
	available []forum.Role
	selected  forum.Role
}

func NewPicker(scope Scope, caller forum.Role) *Picker {
	p := &Picker{scope: scope}
	p.SetCaller(caller)
	return p
}

func (p *Picker) SetCaller(caller forum.Role) {
	p.caller = caller
	switch p.scope {
	case ScopeGlobal:
		p.available = forum.AvailableGlobalRoles(caller)
	default:
		p.available = forum.AvailableProjectRoles(caller)
	}
	p.selected = forum.SelectRole(p.available, p.selected)
}

func (p *Picker) Available() []forum.Role { return p.available }
func (p *Picker) Selected() forum.Role    { return p.selected }

// Select keeps the current choice when the requested role is not offered.
func (p *Picker) Select(role forum.Role) bool {
	for _, r := range p.available {
		if r == role {
			p.selected = role
			return true
		}
	}
	return false
}
