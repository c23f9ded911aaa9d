package world

import "github.com/bulletbrawl/arena/internal/core/ecs"

// Category groups collision pairs by the gameplay rule that resolves them.
type Category int

const (
	PlayerPlatform Category = iota
	PlayerPowerUp
	PlayerBullet
	PlayerMysteryBox
	numCategories
)

func (c Category) String() string {
	switch c {
	case PlayerPlatform:
		return "player-platform"
	case PlayerPowerUp:
		return "player-powerup"
	case PlayerBullet:
		return "player-bullet"
	case PlayerMysteryBox:
		return "player-mystery-box"
	}
	return "unknown"
}

// Pair is one detected overlap. A is the entity the event is addressed to.
type Pair struct {
	A, B ecs.EntityID
}

// Collisions holds this frame's detected pairs per category.
type Collisions struct {
	lists [numCategories][]Pair
}

// Record stores both (a,b) and (b,a).
func (c *Collisions) Record(cat Category, a, b ecs.EntityID) {
	c.lists[cat] = append(c.lists[cat], Pair{A: a, B: b}, Pair{A: b, B: a})
}

// Of returns the pairs of one category in detection order.
func (c *Collisions) Of(cat Category) []Pair {
	return c.lists[cat]
}

// Len counts pairs across all categories.
func (c *Collisions) Len() int {
	n := 0
	for _, l := range c.lists {
		n += len(l)
	}
	return n
}

func (c *Collisions) Reset() {
	for i := range c.lists {
		c.lists[i] = c.lists[i][:0]
	}
}
