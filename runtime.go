// runtime.go — standard natives installed into Core.
//
// Kotoba's one I/O primitive is print; println, add_two and div
// are the remaining prototype natives, kept because hosts and tests lean
// on them. Natives are registered against the public surface in
// interpreter.go (RegisterNative) and never reach into evaluator internals.
package kotoba

import (
	"fmt"
	"math"
)

func (ip *Interpreter) initCore() {
	// print(value) -> nil: render to the interpreter's output writer.
	// Numbers render in decimal form, booleans as true/false, strings
	// verbatim, nil as "nil". No trailing newline.
	ip.RegisterNative("print", []string{"value"}, func(ip *Interpreter, args []Value) (Value, error) {
		fmt.Fprint(ip.out, Render(args[0]))
		return Nil, nil
	})

	// println(value) -> nil: print with a trailing newline.
	ip.RegisterNative("println", []string{"value"}, func(ip *Interpreter, args []Value) (Value, error) {
		fmt.Fprintln(ip.out, Render(args[0]))
		return Nil, nil
	})

	// add_two(left, right) -> number
	ip.RegisterNative("add_two", []string{"left", "right"}, func(_ *Interpreter, args []Value) (Value, error) {
		if args[0].Tag != VTNumber || args[1].Tag != VTNumber {
			return Nil, &RuntimeError{Kind: ErrType,
				Msg: fmt.Sprintf("add_two requires number arguments, got %s and %s", args[0].Tag, args[1].Tag)}
		}
		return Num(args[0].Data.(float64) + args[1].Data.(float64)), nil
	})

	// div(q, n) -> boolean: whether n is divisible by q.
	ip.RegisterNative("div", []string{"q", "n"}, func(_ *Interpreter, args []Value) (Value, error) {
		if args[0].Tag != VTNumber || args[1].Tag != VTNumber {
			return Nil, &RuntimeError{Kind: ErrType,
				Msg: fmt.Sprintf("div requires number arguments, got %s and %s", args[0].Tag, args[1].Tag)}
		}
		q, n := args[0].Data.(float64), args[1].Data.(float64)
		return Bool(math.Mod(n, q) == 0), nil
	})
}

// Render converts a value to its print form: like Value.String except that
// strings appear verbatim, without quotes.
func Render(v Value) string {
	if v.Tag == VTString {
		return v.Data.(string)
	}
	return v.String()
}
