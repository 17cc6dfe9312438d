// Package argcheck parses and validates single command lines against declared argument shapes.
//
// A [Parser] tokenizes a raw line, looks up the [Command] named by the first token, checks the
// remaining tokens structurally (count and flag order), validates each token against its [Kind],
// and coerces them into typed [Value]s keyed by parameter name. Every failure is an [*Error]
// carrying an [ErrorCode], the offending argument index and, for validation failures, the
// expected schema.
//
// Names and schemas live in an explicit [Registry] owned by the parser rather than in global
// state, so independent parsers never observe each other's registrations.
package argcheck
