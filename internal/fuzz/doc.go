// Package fuzztests houses Go fuzz harnesses that exercise the early
// pipeline (source -> lexer -> parser -> expand) on arbitrary inputs.
// Its goal is to smoke test robustness and guard against panics or
// allocator explosions, not to assert semantics.
package fuzztests
