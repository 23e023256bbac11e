// Package script runs tengo behavior scripts that drive the timing curves of
// attacks and abilities. The state machine core stays ignorant of the curves;
// it only feeds elapsed time and key state into a runtime once per tick.
package script

import (
	"fmt"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/atmterminated/Pixel-Arena/arena"
)

// Every behavior script defines update(c, elapsed_ms, key_down); this footer
// dispatches into it with the globals the runtime sets before each run.
const dispatchScript = `
update(__char, __elapsed_ms, __key_down)
`

// Engine is the callback surface a behavior script drives. Nil callbacks are
// skipped so runtimes stay usable in headless tests.
type Engine struct {
	BeginAttack   func()
	FinishAttack  func()
	FinishAbility func()
	SetVelocity   func(speed float64, dir arena.Direction)
	Facing        func() arena.Direction
}

// Runtime is one compiled behavior script plus its persistent state map.
type Runtime struct {
	name      string
	compiled  *tengo.Compiled
	stateData *tengo.Map
}

// New compiles a behavior script. params is exposed to the script as the
// immutable `__params` map, carrying tuning numbers from the character spec.
func New(name string, src []byte, params map[string]any) (*Runtime, error) {
	if len(src) == 0 {
		return nil, fmt.Errorf("script: %s: empty source", name)
	}
	if params == nil {
		params = map[string]any{}
	}

	full := string(src) + "\n" + dispatchScript
	s := tengo.NewScript([]byte(full))
	_ = s.Add("__char", map[string]any{})
	_ = s.Add("__state", map[string]any{})
	_ = s.Add("__params", params)
	_ = s.Add("__elapsed_ms", 0)
	_ = s.Add("__key_down", false)

	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}

	return &Runtime{
		name:      name,
		compiled:  compiled,
		stateData: &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

// Name returns the script name the runtime was compiled from.
func (rt *Runtime) Name() string {
	if rt == nil {
		return ""
	}
	return rt.name
}

// Update runs the script's update entry point for one tick.
func (rt *Runtime) Update(eng Engine, elapsed time.Duration, keyDown bool) error {
	if rt == nil || rt.compiled == nil {
		return fmt.Errorf("script: nil runtime")
	}
	if err := rt.compiled.Set("__char", buildEngineMap(eng)); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.stateData); err != nil {
		return err
	}
	if err := rt.compiled.Set("__elapsed_ms", int(elapsed.Milliseconds())); err != nil {
		return err
	}
	if err := rt.compiled.Set("__key_down", keyDown); err != nil {
		return err
	}
	return rt.compiled.Run()
}

// Reset clears the script's persistent state map. Called when a new
// activation starts so one use can't leak state into the next.
func (rt *Runtime) Reset() {
	if rt == nil {
		return
	}
	rt.stateData = &tengo.Map{Value: map[string]tengo.Object{}}
}

func buildEngineMap(eng Engine) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["begin_attack"] = &tengo.UserFunction{Name: "begin_attack", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if eng.BeginAttack == nil {
			return tengo.FalseValue, nil
		}
		eng.BeginAttack()
		return tengo.TrueValue, nil
	}}

	values["finish_attack"] = &tengo.UserFunction{Name: "finish_attack", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if eng.FinishAttack == nil {
			return tengo.FalseValue, nil
		}
		eng.FinishAttack()
		return tengo.TrueValue, nil
	}}

	values["finish_ability"] = &tengo.UserFunction{Name: "finish_ability", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if eng.FinishAbility == nil {
			return tengo.FalseValue, nil
		}
		eng.FinishAbility()
		return tengo.TrueValue, nil
	}}

	values["set_velocity"] = &tengo.UserFunction{Name: "set_velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if eng.SetVelocity == nil || len(args) < 2 {
			return tengo.FalseValue, nil
		}
		speed, ok := objectAsFloat(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		dir, err := arena.ParseDirection(objectAsString(args[1]))
		if err != nil {
			return tengo.FalseValue, nil
		}
		eng.SetVelocity(speed, dir)
		return tengo.TrueValue, nil
	}}

	values["facing"] = &tengo.UserFunction{Name: "facing", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if eng.Facing == nil {
			return &tengo.String{Value: arena.North.String()}, nil
		}
		return &tengo.String{Value: eng.Facing().String()}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	if s, ok := obj.(*tengo.String); ok {
		return s.Value
	}
	out := obj.String()
	if len(out) >= 2 && out[0] == '"' && out[len(out)-1] == '"' {
		out = out[1 : len(out)-1]
	}
	return out
}

func objectAsFloat(obj tengo.Object) (float64, bool) {
	switch v := obj.(type) {
	case *tengo.Float:
		return v.Value, true
	case *tengo.Int:
		return float64(v.Value), true
	default:
		return 0, false
	}
}
