package evaluator

import "fmt"

var (
	NULL  = &Null{}
	UNIT  = &Unit{}
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

func newError(format string, a ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, a...)}
}

func isError(obj Object) bool {
	if obj != nil {
		return obj.Type() == ERROR_OBJ
	}
	return false
}

func nativeBoolToBooleanObject(input bool) *Boolean {
	if input {
		return TRUE
	}
	return FALSE
}

// inspect shows a value with its kind, used in error messages.
func inspect(obj Object) string {
	if obj == nil {
		return "null"
	}
	switch obj.Type() {
	case STRING_OBJ:
		return fmt.Sprintf("%q", obj.Inspect())
	default:
		return obj.Inspect()
	}
}
