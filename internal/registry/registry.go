// Package registry keeps the units of the complex and derives their tenancy
// and payment state against a reference day.
package registry

import (
	"condo/internal/core"
)

// Registry is an ordered collection of units. Ids come from a counter that
// only moves forward, so a deleted id is never handed out again.
// A Registry is not safe for concurrent use.
type Registry struct {
	units  []core.Unit
	nextID int64
}

// New returns a registry holding the seed units, numbered from 1 in order.
func New(seed ...core.UnitInput) *Registry {
	r := &Registry{nextID: 1}
	for _, in := range seed {
		r.Add(in)
	}
	return r
}

// Add assigns the next id and appends the unit.
func (r *Registry) Add(in core.UnitInput) core.Unit {
	if r.nextID == 0 {
		r.nextID = 1
	}
	u := in.Unit(r.nextID)
	r.nextID++
	r.units = append(r.units, u)
	return u
}

// Update replaces the unit with the same id, keeping its position.
// It reports whether a unit matched; a miss leaves the registry untouched.
func (r *Registry) Update(u core.Unit) bool {
	for i := range r.units {
		if r.units[i].ID == u.ID {
			r.units[i] = u
			return true
		}
	}
	return false
}

// Delete removes the unit with the given id. Remaining units keep their ids
// and relative order.
func (r *Registry) Delete(id int64) bool {
	for i := range r.units {
		if r.units[i].ID == id {
			r.units = append(r.units[:i], r.units[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Registry) Get(id int64) (core.Unit, bool) {
	for _, u := range r.units {
		if u.ID == id {
			return u, true
		}
	}
	return core.Unit{}, false
}

// List returns a copy of the units in insertion order.
func (r *Registry) List() []core.Unit {
	out := make([]core.Unit, len(r.units))
	copy(out, r.units)
	return out
}

func (r *Registry) Len() int { return len(r.units) }
