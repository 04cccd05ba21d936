// Package argdecode implements the composable positional argument
// decoders spec.md §4.8 describes: small functions over a cursor into an
// argv slice, each consuming zero or more tokens and returning a value or
// an *ArgumentError. None of them use exceptions or panics; every decoder
// is total on well-formed input.
package argdecode

import (
	"fmt"
	"strconv"
)

// ArgumentError reports malformed argv: a missing token, a non-numeric
// token where an integer was expected, or a value outside its allowed
// range. It carries the cursor position at the point of failure. An
// unknown command token is not reported as an ArgumentError: engine's
// Dispatch returns an error wrapping engine.ErrUnknownCommand for it. An
// unknown flag is not an error either: FlagSet stops at the first token
// outside its vocabulary.
type ArgumentError struct {
	Pos int
	Msg string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("argdecode: at argument %d: %s", e.Pos, e.Msg)
}

// Cursor walks an argv slice left to right. It is passed by pointer
// through every decoder in this package.
type Cursor struct {
	Argv []string
	Pos  int
}

// NewCursor wraps argv in a fresh Cursor positioned at 0.
func NewCursor(argv []string) *Cursor {
	return &Cursor{Argv: argv}
}

// Done reports whether the cursor has consumed the whole argv.
func (c *Cursor) Done() bool {
	return c.Pos >= len(c.Argv)
}

// next consumes and returns the token at the cursor, or an ArgumentError
// if the cursor is already at the end.
func (c *Cursor) next(what string) (string, error) {
	if c.Done() {
		return "", &ArgumentError{Pos: c.Pos, Msg: "expected " + what + ", got end of input"}
	}
	tok := c.Argv[c.Pos]
	c.Pos++
	return tok, nil
}

// Scalar consumes one token and applies convert to it.
func Scalar(c *Cursor, what string, convert func(string) (interface{}, error)) (interface{}, error) {
	tok, err := c.next(what)
	if err != nil {
		return nil, err
	}
	v, err := convert(tok)
	if err != nil {
		return nil, &ArgumentError{Pos: c.Pos - 1, Msg: fmt.Sprintf("%s: %v", what, err)}
	}
	return v, nil
}

// String decodes one token verbatim.
func String(c *Cursor, what string) (string, error) {
	return c.next(what)
}

// Int decodes one token as a base-10 int64.
func Int(c *Cursor, what string) (int64, error) {
	tok, err := c.next(what)
	if err != nil {
		return 0, err
	}
	v, perr := strconv.ParseInt(tok, 10, 64)
	if perr != nil {
		return 0, &ArgumentError{Pos: c.Pos - 1, Msg: fmt.Sprintf("%s: not an integer: %q", what, tok)}
	}
	return v, nil
}

// FlagSet greedily consumes tokens that appear in vocabulary, returning
// the set of flags seen. It stops at the first token not in vocabulary
// (or at end of input) without consuming it.
func FlagSet(c *Cursor, vocabulary map[string]struct{}) map[string]struct{} {
	seen := make(map[string]struct{})
	for !c.Done() {
		tok := c.Argv[c.Pos]
		if _, ok := vocabulary[tok]; !ok {
			break
		}
		seen[tok] = struct{}{}
		c.Pos++
	}
	return seen
}

// Repeated decodes a count via Int, then that many items via item.
func Repeated(c *Cursor, what string, item func(*Cursor) error) error {
	n, err := Int(c, what+" count")
	if err != nil {
		return err
	}
	if n < 0 {
		return &ArgumentError{Pos: c.Pos - 1, Msg: fmt.Sprintf("%s count: negative count %d", what, n)}
	}
	for i := int64(0); i < n; i++ {
		if err := item(c); err != nil {
			return err
		}
	}
	return nil
}

// Variadic decodes item repeatedly until the cursor reaches end of argv.
func Variadic(c *Cursor, item func(*Cursor) error) error {
	for !c.Done() {
		if err := item(c); err != nil {
			return err
		}
	}
	return nil
}

// Field is one (name, decoder) pair of an Object schema. decode receives
// the cursor and returns the decoded field value.
type Field struct {
	Name   string
	Decode func(*Cursor) (interface{}, error)
}

// Object decodes schema's fields in order and returns a map keyed by
// field name, matching spec.md §4.8's "ordered [(field, decoder), ...]"
// object schema combinator. A failure on any field aborts with that
// field's ArgumentError; fields already decoded are discarded along with
// the rest of the request.
func Object(c *Cursor, schema []Field) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(schema))
	for _, f := range schema {
		v, err := f.Decode(c)
		if err != nil {
			return nil, err
		}
		out[f.Name] = v
	}
	return out, nil
}

// Tuple decodes a fixed heterogeneous sequence, one decoder per position,
// matching spec.md §4.8's tuple combinator. It returns the decoded values
// in the same order as decoders.
func Tuple(c *Cursor, decoders ...func(*Cursor) (interface{}, error)) ([]interface{}, error) {
	out := make([]interface{}, len(decoders))
	for i, d := range decoders {
		v, err := d(c)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
