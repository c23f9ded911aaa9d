package ecs

// EntityID is an opaque handle: a 32-bit slot index in the lower bits and a
// 32-bit generation in the upper bits. Destroying an entity bumps the slot's
// generation, so stale handles held by bullets or events stop resolving.
// The zero value never names a live entity.
type EntityID uint64

// None is the zero handle.
const None EntityID = 0

func NewEntityID(index uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }
func (id EntityID) IsZero() bool       { return id == None }

// EntityPool hands out generational handles and recycles freed slots.
type EntityPool struct {
	generations []uint32
	freeList    []uint32
	live        int
}

func NewEntityPool() *EntityPool {
	return &EntityPool{
		generations: make([]uint32, 0, 256),
		freeList:    make([]uint32, 0, 64),
	}
}

// Create returns a fresh handle. Generations start at 1 so that no live
// handle ever equals None.
func (p *EntityPool) Create() EntityID {
	p.live++
	if n := len(p.freeList); n > 0 {
		idx := p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
		return NewEntityID(idx, p.generations[idx])
	}
	idx := uint32(len(p.generations))
	p.generations = append(p.generations, 1)
	return NewEntityID(idx, 1)
}

func (p *EntityPool) Alive(id EntityID) bool {
	idx := id.Index()
	if int(idx) >= len(p.generations) {
		return false
	}
	return p.generations[idx] == id.Generation()
}

// Destroy invalidates id. Destroying a stale or unknown handle is a no-op.
func (p *EntityPool) Destroy(id EntityID) {
	if !p.Alive(id) {
		return
	}
	idx := id.Index()
	p.generations[idx]++
	if p.generations[idx] == 0 {
		p.generations[idx] = 1
	}
	p.freeList = append(p.freeList, idx)
	p.live--
}

// Live returns the number of handles currently alive.
func (p *EntityPool) Live() int { return p.live }

// Reset retires every handle at once. Slots are kept and recycled with a
// bumped generation.
func (p *EntityPool) Reset() {
	p.freeList = p.freeList[:0]
	for i := len(p.generations) - 1; i >= 0; i-- {
		p.generations[i]++
		if p.generations[i] == 0 {
			p.generations[i] = 1
		}
		p.freeList = append(p.freeList, uint32(i))
	}
	p.live = 0
}
