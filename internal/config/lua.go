package config

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"
)

const luaTimeout = 2 * time.Second

// loadLua runs the file in a state without io/os and copies the known
// globals into cfg. It reports whether the file set origin_allowlist.
func loadLua(path string, cfg *Config) (allowSet bool, err error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.LoadLibName, lua.OpenPackage},
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		if err := L.CallByParam(lua.P{Fn: L.NewFunction(lib.open), NRet: 0, Protect: true}, lua.LString(lib.name)); err != nil {
			return false, fmt.Errorf("config: open %s: %w", lib.name, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), luaTimeout)
	defer cancel()
	L.SetContext(ctx)

	if err := L.DoFile(path); err != nil {
		return false, fmt.Errorf("config: %s: %w", path, err)
	}

	g := globals{L: L}
	g.str("port", &cfg.Port)
	g.str("static_dir", &cfg.StaticDir)
	g.str("log_level", &cfg.LogLevel)
	g.boolean("log_dev", &cfg.LogDev)
	g.integer("target_score", &cfg.TargetScore)
	g.millis("next_hand_delay_ms", &cfg.NextHandDelay)
	g.millis("rematch_delay_ms", &cfg.RematchDelay)
	switch v := L.GetGlobal("seed").(type) {
	case *lua.LNilType:
	case lua.LNumber:
		cfg.Seed = int64(v)
	default:
		g.fail("seed", v)
	}
	allowSet = g.list("origin_allowlist", &cfg.OriginAllowlist)
	if g.err != nil {
		return false, fmt.Errorf("config: %s: %w", path, g.err)
	}
	return allowSet, nil
}

// globals reads typed values, keeping the first type error.
type globals struct {
	L   *lua.LState
	err error
}

func (g *globals) fail(name string, v lua.LValue) {
	if g.err == nil {
		g.err = fmt.Errorf("%s: unexpected %s", name, v.Type())
	}
}

func (g *globals) str(name string, dst *string) {
	switch v := g.L.GetGlobal(name).(type) {
	case *lua.LNilType:
	case lua.LString:
		*dst = string(v)
	case lua.LNumber:
		*dst = strconv.Itoa(int(v))
	default:
		g.fail(name, v)
	}
}

func (g *globals) boolean(name string, dst *bool) {
	switch v := g.L.GetGlobal(name).(type) {
	case *lua.LNilType:
	case lua.LBool:
		*dst = bool(v)
	default:
		g.fail(name, v)
	}
}

func (g *globals) integer(name string, dst *int) {
	switch v := g.L.GetGlobal(name).(type) {
	case *lua.LNilType:
	case lua.LNumber:
		*dst = int(v)
	default:
		g.fail(name, v)
	}
}

func (g *globals) millis(name string, dst *time.Duration) {
	switch v := g.L.GetGlobal(name).(type) {
	case *lua.LNilType:
	case lua.LNumber:
		if v < 0 {
			if g.err == nil {
				g.err = fmt.Errorf("%s: must not be negative, got %v", name, v)
			}
			return
		}
		*dst = time.Duration(v) * time.Millisecond
	default:
		g.fail(name, v)
	}
}

// list takes a table of strings or one comma separated string.
func (g *globals) list(name string, dst *[]string) bool {
	switch v := g.L.GetGlobal(name).(type) {
	case *lua.LNilType:
		return false
	case lua.LString:
		*dst = splitList(string(v))
	case *lua.LTable:
		parts := make([]string, 0, v.Len())
		for i := 1; i <= v.Len(); i++ {
			parts = append(parts, lua.LVAsString(v.RawGetInt(i)))
		}
		*dst = splitList(strings.Join(parts, ","))
	default:
		g.fail(name, v)
	}
	return true
}
