package config

const SourceFileExt = ".rl"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".rl", ".rill"}

// Built-in function names
const (
	PutsFuncName   = "puts"
	PrintFuncName  = "print"
	LenFuncName    = "len"
	TypeOfFuncName = "type_of"
	RaiseFuncName  = "raise"
)

// Well-known method names
const (
	InitMethodName = "init"
	NewMethodName  = "new"
	EachMethodName = "each"
	CallMethodName = "call"
)
