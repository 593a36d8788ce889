package config

// SourceFileExt is the extension appended to module paths on resolve.
const SourceFileExt = ".fip"

// Built-in function names. The suffix is part of the name: '!' marks an
// impure builtin, '?' a boolean-returning one.
const (
	LogFuncName       = "log!"
	TraceFuncName     = "trace!"
	IdentityFuncName  = "identity"
	IncrementFuncName = "increment"
	DecrementFuncName = "decrement"
	AddFuncName       = "add"
	SubtractFuncName  = "subtract"
	MultiplyFuncName  = "multiply"
	DivideFuncName    = "divide"
	MapFuncName       = "map"
	ReduceFuncName    = "reduce"
	FilterFuncName    = "filter"
	EveryFuncName     = "every?"
	SomeFuncName      = "some?"
	NoneFuncName      = "none?"
	AndFuncName       = "and?"
	OrFuncName        = "or?"
	DefinedFuncName   = "defined?"
	IfFuncName        = "if"
	ForEachFuncName   = "for-each!"
)
