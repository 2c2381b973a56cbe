package ast

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Print produces a deterministic JSON representation of an AST node, used
// for golden snapshot testing. Position info (Pos/Span fields) is omitted so
// output is independent of exact source offsets; every node and nested
// interface-typed field is tagged with its concrete Go type name so sum
// types (Decl, Type, Stmt, Expr, Pattern) stay distinguishable once
// marshaled.
func Print(node Node) string {
	data, err := json.MarshalIndent(simplify(node), "", "  ")
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(data)
}

// Compact is Print without indentation, for one-line diffs.
func Compact(node Node) string {
	data, err := json.Marshal(simplify(node))
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(data)
}

// PrintFile prints a whole parsed file.
func PrintFile(f *File) string {
	data, err := json.MarshalIndent(simplify(f), "", "  ")
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(data)
}

// simplify walks an arbitrary AST value (a node, a slice of nodes, or a
// plain scalar field) into a JSON-marshalable tree, dropping Pos/Span and
// tagging each struct with its type name.
func simplify(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct:
		return simplifyStruct(rv)
	case reflect.Slice, reflect.Array:
		if rv.Len() == 0 {
			return nil
		}
		out := make([]interface{}, rv.Len())
		for i := range out {
			out[i] = simplify(rv.Index(i).Interface())
		}
		return out
	default:
		return v
	}
}

func simplifyStruct(rv reflect.Value) interface{} {
	t := rv.Type()
	m := map[string]interface{}{"type": t.Name()}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Name == "Pos" || field.Name == "Span" || !field.IsExported() {
			continue
		}
		val := rv.Field(i).Interface()
		if s := simplify(val); s != nil {
			m[field.Name] = s
		}
	}
	return m
}
