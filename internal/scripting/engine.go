package scripting

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/bulletbrawl/arena/internal/combat"
)

// Engine wraps a single gopher-lua VM holding the combat formula hooks.
// Single-goroutine access only (simulation step).
type Engine struct {
	vm       *lua.LState
	log      *zap.Logger
	fallback combat.Calculator
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
// Missing subdirectories are skipped, so an empty scripts dir leaves every
// hook on the built-in formula.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	vm.SetGlobal("FALLOFF_NONE", lua.LString(combat.FalloffNone.String()))
	vm.SetGlobal("FALLOFF_DROPOFF", lua.LString(combat.FalloffDropOff.String()))
	vm.SetGlobal("FALLOFF_BONUS", lua.LString(combat.FalloffBonus.String()))

	e := &Engine{vm: vm, log: log, fallback: combat.Formula{}}

	for _, sub := range []string{"core", "combat"} {
		if err := e.loadDir(filepath.Join(scriptsDir, sub)); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

// LoadString runs a chunk in the engine's VM. Tests and tools use it to
// install hooks without touching disk.
func (e *Engine) LoadString(src string) error {
	return e.vm.DoString(src)
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// HasHook reports whether a global function of that name is defined.
func (e *Engine) HasHook(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// Knockback calls the Lua calc_knockback function. A missing hook, a script
// error or a result that is not a finite non-negative number falls back to
// the built-in formula.
func (e *Engine) Knockback(ctx combat.KnockbackContext) float64 {
	fn, ok := e.vm.GetGlobal("calc_knockback").(*lua.LFunction)
	if !ok {
		return e.fallback.Knockback(ctx)
	}

	t := e.vm.NewTable()
	t.RawSetString("base", lua.LNumber(ctx.Base))
	t.RawSetString("distance", lua.LNumber(ctx.Distance))
	t.RawSetString("coeff", lua.LNumber(ctx.Coeff))
	t.RawSetString("falloff", lua.LString(ctx.Falloff.String()))
	t.RawSetString("hitscan", lua.LBool(ctx.Hitscan))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua calc_knockback error", zap.Error(err))
		return e.fallback.Knockback(ctx)
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	v := float64(n)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		e.log.Warn("lua calc_knockback returned invalid value",
			zap.String("value", result.String()))
		return e.fallback.Knockback(ctx)
	}
	return v
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
