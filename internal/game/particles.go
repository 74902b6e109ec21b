package game

import "github.com/mlange-42/ark/ecs"

// ParticleSystem owns the nitro trail. Particles are not pooled: each one is
// an ECS entity created on emit and removed when its life runs out.
type ParticleSystem struct {
	ecs    *ecs.World
	mapper *ecs.Map2[Position, Life]
	filter *ecs.Filter2[Position, Life]
	dead   []ecs.Entity
}

// ParticleView is the read-only copy of a particle handed to renderers.
type ParticleView struct {
	Position
	Life float64
}

// NewParticleSystem creates an empty particle world.
func NewParticleSystem() *ParticleSystem {
	w := ecs.NewWorld(256)
	return &ParticleSystem{
		ecs:    w,
		mapper: ecs.NewMap2[Position, Life](w),
		filter: ecs.NewFilter2[Position, Life](w),
	}
}

// Emit creates a particle at pos with the given lifetime.
func (p *ParticleSystem) Emit(pos Position, life float64) {
	p.mapper.NewEntity(&pos, &Life{Remaining: life})
}

// Update ages every particle by dt and drifts it toward the camera with the
// world. Particles whose life reaches zero are destroyed.
func (p *ParticleSystem) Update(dt, drift float64) {
	query := p.filter.Query()
	for query.Next() {
		pos, life := query.Get()
		life.Remaining -= dt
		pos.Z += drift * dt
		if life.Remaining <= 0 {
			p.dead = append(p.dead, query.Entity())
		}
	}
	// The world is locked while a query is open; remove afterwards.
	p.removeDead()
}

// Clear destroys every particle.
func (p *ParticleSystem) Clear() {
	query := p.filter.Query()
	for query.Next() {
		p.dead = append(p.dead, query.Entity())
	}
	p.removeDead()
}

func (p *ParticleSystem) removeDead() {
	for _, e := range p.dead {
		p.ecs.RemoveEntity(e)
	}
	p.dead = p.dead[:0]
}

// Count returns the number of live particles.
func (p *ParticleSystem) Count() int {
	n := 0
	query := p.filter.Query()
	for query.Next() {
		n++
	}
	return n
}

// AppendViews appends a copy of every live particle to dst.
func (p *ParticleSystem) AppendViews(dst []ParticleView) []ParticleView {
	query := p.filter.Query()
	for query.Next() {
		pos, life := query.Get()
		dst = append(dst, ParticleView{Position: *pos, Life: life.Remaining})
	}
	return dst
}
