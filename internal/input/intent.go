package input

import "fmt"

// Intent is the per-frame controller state of one player.
type Intent struct {
	MoveLeft       bool `msgpack:"l"`
	MoveRight      bool `msgpack:"r"`
	Jump           bool `msgpack:"j"`
	Crouch         bool `msgpack:"c"`
	FireHeld       bool `msgpack:"f"`
	FireProjectile bool `msgpack:"p"`
}

// Keymap names the keys bound to each action.
type Keymap struct {
	Up        string `yaml:"up"`
	Down      string `yaml:"down"`
	Left      string `yaml:"left"`
	Right     string `yaml:"right"`
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
}

// Validate rejects unbound actions and keys bound twice.
func (k Keymap) Validate() error {
	seen := make(map[string]string, 6)
	for _, b := range []struct{ action, key string }{
		{"up", k.Up}, {"down", k.Down}, {"left", k.Left},
		{"right", k.Right}, {"primary", k.Primary}, {"secondary", k.Secondary},
	} {
		if b.key == "" {
			return fmt.Errorf("keymap: %s is unbound", b.action)
		}
		if other, dup := seen[b.key]; dup {
			return fmt.Errorf("keymap: key %q bound to both %s and %s", b.key, other, b.action)
		}
		seen[b.key] = b.action
	}
	return nil
}

// Intent translates the set of held keys into controller intent.
func (k Keymap) Intent(pressed func(key string) bool) Intent {
	return Intent{
		MoveLeft:       pressed(k.Left),
		MoveRight:      pressed(k.Right),
		Jump:           pressed(k.Up),
		Crouch:         pressed(k.Down),
		FireHeld:       pressed(k.Primary),
		FireProjectile: pressed(k.Secondary),
	}
}
