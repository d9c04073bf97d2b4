package evaluator

import (
	"fmt"
	"strconv"
	"strings"

	"jal/internals"
	"jal/object"
)

type builtinFunc func(args []*object.Value) (*object.Value, error)

var builtins = map[string]builtinFunc{
	"print":     builtinPrint,
	"len":       builtinLen,
	"type":      builtinType,
	"stringify": builtinStringify,
	"toNumber":  builtinToNumber,
}

func builtinPrint(args []*object.Value) (*object.Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.Stringify()
	}
	fmt.Println(strings.Join(parts, " "))
	return object.NullValue(), nil
}

func builtinLen(args []*object.Value) (*object.Value, error) {
	if len(args) != 1 {
		return nil, &internals.RuntimeError{Message: "'len' expects exactly 1 argument"}
	}
	switch args[0].Kind {
	case object.String:
		return object.NumberValue(float64(len(args[0].Str))), nil
	case object.List:
		return object.NumberValue(float64(len(args[0].List.Elements))), nil
	default:
		return nil, &internals.RuntimeError{Message: "'len' requires a string or list argument"}
	}
}

func builtinType(args []*object.Value) (*object.Value, error) {
	if len(args) != 1 {
		return nil, &internals.RuntimeError{Message: "'type' expects exactly 1 argument"}
	}
	return object.StringValue(args[0].TypeName()), nil
}

func builtinStringify(args []*object.Value) (*object.Value, error) {
	if len(args) != 1 {
		return nil, &internals.RuntimeError{Message: "'stringify' expects exactly 1 argument"}
	}
	return object.StringValue(args[0].Stringify()), nil
}

func builtinToNumber(args []*object.Value) (*object.Value, error) {
	if len(args) != 1 {
		return nil, &internals.RuntimeError{Message: "'toNumber' expects exactly 1 argument"}
	}
	v := args[0]
	switch v.Kind {
	case object.Number:
		return v, nil
	case object.Bool:
		if v.Bool {
			return object.NumberValue(1), nil
		}
		return object.NumberValue(0), nil
	case object.String:
		n, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return nil, &internals.RuntimeError{Message: "'toNumber' cannot parse '" + v.Str + "'"}
		}
		return object.NumberValue(n), nil
	default:
		return nil, &internals.RuntimeError{Message: "'toNumber' cannot convert " + v.TypeName()}
	}
}
