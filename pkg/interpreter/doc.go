// Package interpreter gives SIMPLE programs their meaning as a small-step
// rewrite relation. ReduceExpression and ReduceStatement perform exactly one
// step on a syntax tree; Machine applies steps until the statement reaches
// normal form and reports every intermediate state to a TraceSink.
package interpreter
