// Package phc implements the symbolic-expression engine of the Prime
// Harmonics Calculus system: a tokenizer, a precedence parser producing
// immutable expression trees, and an arbitrary-precision evaluator that
// resolves variables from an explicit Scope and functions from an injectable
// registry.
//
// The syntax is ordinary infix arithmetic. "2+3*4" is 14, "(2+3)*4" is 20, and
// "a^b" is exponentiation. Every binary operator is left-associative, so
// "2^3^2" is 64. Function calls need brackets, as in "sqrt(x)" or
// "atan[y / x]"; the function name is looked up only when the expression is
// evaluated.
//
// Parse an expression once and evaluate it against many scopes, or clone
// contexts to evaluate with different precisions or functions. Package
// logic composes truth values into propositions, and package harmonic
// registers the primeharm kernel.
package phc
