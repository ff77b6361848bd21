package reader

import "github.com/lucidpdf/core/model"

// isNumber accepts both an integer and a real object, already resolved.
func isNumber(o model.Object) (Fl, bool) {
	switch o := o.(type) {
	case model.ObjFloat:
		return Fl(o), true
	case model.ObjInt:
		return Fl(o), true
	default:
		return 0, false
	}
}

// isString accepts a literal or hexadecimal string, already resolved.
func isString(o model.Object) (string, bool) {
	switch o := o.(type) {
	case model.ObjStringLiteral:
		return string(o), true
	case model.ObjHexLiteral:
		return string(o), true
	default:
		return "", false
	}
}
