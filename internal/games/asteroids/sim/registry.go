package sim

import "slices"

// Pool is an ordered per-kind entity container.
// Pointers returned by At are valid only until the next Insert or Remove.
type Pool[T any] struct {
	items []T
}

// Insert appends v.
func (p *Pool[T]) Insert(v T) {
	p.items = append(p.items, v)
}

// Remove deletes the item at index i, preserving order.
func (p *Pool[T]) Remove(i int) {
	p.items = slices.Delete(p.items, i, i+1)
}

// Len returns the number of live items.
func (p *Pool[T]) Len() int {
	return len(p.items)
}

// At returns a pointer to the item at index i.
func (p *Pool[T]) At(i int) *T {
	return &p.items[i]
}

// Retain keeps only the items for which keep returns true and reports how
// many were removed. keep may mutate the item.
func (p *Pool[T]) Retain(keep func(*T) bool) int {
	before := len(p.items)
	kept := p.items[:0]
	for i := range p.items {
		if keep(&p.items[i]) {
			kept = append(kept, p.items[i])
		}
	}
	clear(p.items[len(kept):])
	p.items = kept
	return before - len(kept)
}

// Clear removes every item.
func (p *Pool[T]) Clear() {
	clear(p.items)
	p.items = p.items[:0]
}

// Items returns the live items. The slice must not be kept past the tick.
func (p *Pool[T]) Items() []T {
	return p.items
}

// Registry owns every live entity, one container per kind.
type Registry struct {
	ship    Ship
	hasShip bool

	Bullets       Pool[Bullet]
	Asteroids     Pool[Asteroid]
	Saucers       Pool[Saucer]
	SaucerBullets Pool[SaucerBullet]
	Particles     Pool[Particle]
}

// Ship returns the ship, or nil before the first session starts.
func (r *Registry) Ship() *Ship {
	if !r.hasShip {
		return nil
	}
	return &r.ship
}

// SetShip replaces the ship.
func (r *Registry) SetShip(s Ship) {
	r.ship = s
	r.hasShip = true
}

// Clear empties every collection, the ship included.
func (r *Registry) Clear() {
	r.ship = Ship{}
	r.hasShip = false
	r.Bullets.Clear()
	r.Asteroids.Clear()
	r.Saucers.Clear()
	r.SaucerBullets.Clear()
	r.Particles.Clear()
}
