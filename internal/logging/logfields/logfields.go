// Package logfields defines logging field keys used across packages.
package logfields

const (
	// LogSubsys is the field denoting the subsystem when logging
	LogSubsys = "subsys"

	// Source is the input source name
	Source = "source"

	// Line is the 1-based input line number
	Line = "line"

	// Col is the 1-based input column number
	Col = "col"

	// Kind is the syntax tree node kind
	Kind = "kind"

	// Code is the flexpeg error or notice code
	Code = "code"

	// Path is a file system path
	Path = "path"

	// Grammar is the target grammar namespace qualifier
	Grammar = "grammar"

	// Notices is the number of notices recorded by translation
	Notices = "notices"
)
