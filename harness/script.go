package harness

import (
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/hwsim/fp8alu/alu"
	"github.com/hwsim/fp8alu/fp8"
)

// LoadScript executes a starlark vector script and collects the cases
// assigned to its 'vectors' list. Each vector is a tuple:
//
//	(name, a, b, op)                  checked against the reference model
//	(name, a, b, op, want)            exact result, flags all clear
//	(name, a, b, op, want, "o-z-")    exact result and flag mask
//
// The selectors are predeclared as ADD through NOT, and encode(v)
// converts a real value to its 8-bit encoding. src may be nil to read
// from the named file, or a string/reader with the script text (the
// starlark loader's convention).
func LoadScript(filename string, src any) (cases []Case, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}

	pred := starlark.StringDict{
		"encode": starlark.NewBuiltin("encode", encodeBuiltin),
	}
	for op := alu.OP_ADD; op <= alu.OP_NOT; op++ {
		pred[strings.ToUpper(op.String())] = starlark.MakeInt(int(op))
	}

	dict, err := starlark.ExecFileOptions(&opts, &thread, filename, src, pred)
	if err != nil {
		return nil, &ErrScript{File: filename, Err: err}
	}

	value, ok := dict["vectors"]
	if !ok {
		return nil, &ErrScript{File: filename, Err: ErrNoVectors}
	}
	list, ok := value.(*starlark.List)
	if !ok {
		return nil, &ErrScript{File: filename, Err: ErrNoVectors}
	}

	for n := range list.Len() {
		var c Case
		c, err = vectorCase(list.Index(n))
		if err != nil {
			return nil, &ErrScript{File: filename, Err: &ErrVector{Index: n, Err: err}}
		}
		cases = append(cases, c)
	}

	return
}

// ParseFlags converts a compact "ouzi" mask, as printed by
// alu.Flags.String(), back into flags. Dashes and absent letters leave a
// flag clear.
func ParseFlags(s string) (fl alu.Flags, err error) {
	for _, r := range s {
		switch r {
		case 'o':
			fl.Overflow = true
		case 'u':
			fl.Underflow = true
		case 'z':
			fl.Zero = true
		case 'i':
			fl.Invalid = true
		case '-':
		default:
			err = ErrUnknownFlag(string(r))
			return
		}
	}
	return
}

func encodeBuiltin(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var v starlark.Value
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &v); err != nil {
		return nil, err
	}
	f64, ok := starlark.AsFloat(v)
	if !ok {
		return nil, ErrBadNumber(v.String())
	}
	return starlark.MakeInt(int(fp8.Encode(f64))), nil
}

func vectorCase(v starlark.Value) (c Case, err error) {
	tuple, ok := v.(starlark.Tuple)
	if !ok || len(tuple) < 4 || len(tuple) > 6 {
		err = ErrBadVector
		return
	}

	name, ok := starlark.AsString(tuple[0])
	if !ok {
		err = ErrBadVector
		return
	}
	c.Name = name

	var a, b, op uint8
	if a, err = byteOf(tuple[1]); err != nil {
		return
	}
	if b, err = byteOf(tuple[2]); err != nil {
		return
	}
	if op, err = byteOf(tuple[3]); err != nil {
		return
	}
	c.A = fp8.Value(a)
	c.B = fp8.Value(b)
	c.Op = alu.Op(op)

	if len(tuple) < 5 {
		return
	}
	want := alu.Result{}
	var w uint8
	if w, err = byteOf(tuple[4]); err != nil {
		return
	}
	want.Value = fp8.Value(w)
	if len(tuple) == 6 {
		mask, ok := starlark.AsString(tuple[5])
		if !ok {
			err = ErrBadVector
			return
		}
		if want.Flags, err = ParseFlags(mask); err != nil {
			return
		}
	}
	c.Want = &want
	return
}

func byteOf(v starlark.Value) (b uint8, err error) {
	n, err := starlark.AsInt32(v)
	if err != nil || n < 0 || n > 0xff {
		err = ErrBadNumber(v.String())
		return
	}
	b = uint8(n)
	return
}
