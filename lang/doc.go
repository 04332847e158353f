// Package lang implements the BULBA configuration notation: a lexer that
// turns source lines into a flat token stream, and a parser that builds a
// nested document from that stream.
//
// # Format
//
//	BULBA!
//	zZz Comments run to the end of the line
//	app_name ~~~~~~> "Pokedex_API"
//	version  ~~~~~~> 1.5
//	is_production ~> NotVeryEffective
//	missing_data ~> MissingNo
//
//	(o) database (o)
//	    host ~~~~> "127.0.0.1"
//	    (O) pool (O)
//	        max_connections ~~~~> 100
//	        (@) KERNEL_FLAGS (@)
//	            panic_on_fail ~~~~> SuperEffective
//
//	whitelist ~~~~> <| "Prof_Oak", "Mom" |>
//
// The first line must be exactly [Header]. Indentation is made of spaces in
// units of 4; tabs are rejected. Assignments use one or more '~' followed by
// '>'. Values are double-quoted strings (no escapes), integers, floats,
// SuperEffective (true), NotVeryEffective (false), MissingNo (null), and
// arrays delimited by "<|" and "|>".
//
// # Sections
//
// Sections evolve through three stages, (o), (O) and (@). A stage-S header is
// indented S-1 levels and may only appear while its stage S-1 parent is open.
// Keys belong to the innermost open section at their indent level; a key
// indented less than the current section returns to the enclosing one.
//
// # Errors
//
// Parsing is all or nothing. Each failure is an [*Error] of one [ErrorKind]
// whose message is fixed, e.g. "The attack missed!" for bad indentation.
// Match kinds with [errors.Is] against [ErrHeader], [ErrTab],
// [ErrIndentation], [ErrBadges], [ErrSyntax], [ErrType] and
// [ErrReservedKey].
package lang
