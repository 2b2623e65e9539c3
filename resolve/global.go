package resolve

import (
	"fmt"

	"github.com/golangee/oxide/ast"
	"github.com/golangee/oxide/internal/diag"
	"github.com/golangee/oxide/types"
)

// Program is the result of the global pass: every top-level
// declaration, keyed and cross-linked (struct <-> impl), ready for the
// per-body pass and then for eval.
type Program struct {
	File      *ast.File
	Functions map[string]*ast.FunctionDecl
	Structs   map[string]*ast.StructDecl
	Enums     map[string]*ast.EnumDecl
	// Consts holds top-level `const` declarations in source order. Eval
	// does not read it; it evaluates each const when it reaches it in
	// Items.
	Consts []*ast.TopConstDecl
	// Items is File.Items verbatim: the file's top-level items (decls
	// and bare statements) in source order, for eval to walk once
	// resolution has annotated every expression's type.
	Items []ast.Node
}

// globalPass collects top-level names, pairs impl blocks with their
// struct, and builds each struct/enum's registered types.StructType /
// types.EnumType shape (§4.3 "Global pass").
func globalPass(file *ast.File) (*Program, *diag.Bag) {
	prog := &Program{
		File:      file,
		Functions: map[string]*ast.FunctionDecl{},
		Structs:   map[string]*ast.StructDecl{},
		Enums:     map[string]*ast.EnumDecl{},
		Items:     file.Items,
	}

	bag := &diag.Bag{}
	declared := map[string]bool{}

	declare := func(name string, node ast.Node) bool {
		if declared[name] {
			bag.Add(node, fmt.Sprintf("%q already declared", name), nil)
			return false
		}

		declared[name] = true

		return true
	}

	var impls []*ast.ImplDecl

	for _, d := range file.Items {
		switch decl := d.(type) {
		case *ast.FunctionDecl:
			if declare(decl.Name, decl) {
				prog.Functions[decl.Name] = decl
			}
		case *ast.StructDecl:
			if declare(decl.Name, decl) {
				decl.Resolved = &types.StructType{Name: decl.Name}
				prog.Structs[decl.Name] = decl
			}
		case *ast.EnumDecl:
			if declare(decl.Name, decl) {
				decl.Resolved = &types.EnumType{Name: decl.Name, Variants: append([]string(nil), decl.Variants...)}
				prog.Enums[decl.Name] = decl
			}
		case *ast.TopConstDecl:
			if declare(decl.Name, decl) {
				prog.Consts = append(prog.Consts, decl)
			}
		case *ast.ImplDecl:
			impls = append(impls, decl)
		}
	}

	for _, impl := range impls {
		sd, ok := prog.Structs[impl.StructName]
		if !ok {
			bag.Add(impl, fmt.Sprintf("impl for undeclared struct %q", impl.StructName), nil)
			continue
		}

		if sd.Impl != nil {
			bag.Add(impl, fmt.Sprintf("struct %q already has an impl block", sd.Name), nil)
			continue
		}

		sd.Impl = impl
	}

	for _, sd := range prog.Structs {
		buildFieldSpecs(prog, sd, bag)
		buildMethodSpecs(prog, sd, bag)
	}

	return prog, bag
}

// buildFieldSpecs fills sd.Resolved.Fields now that every struct/enum
// name is registered, so a field's type may reference any struct
// (including sd itself, via Self or a self-typed field) regardless of
// declaration order.
func buildFieldSpecs(prog *Program, sd *ast.StructDecl, bag *diag.Bag) {
	self := types.Struct(sd.Resolved)

	for i := range sd.Fields {
		f := &sd.Fields[i]

		t, err := resolveTypeExpr(prog, &f.Type, &self)
		if err != nil {
			bag.Add(&f.Type, err.Error(), nil)
			continue
		}

		sd.Resolved.Fields = append(sd.Resolved.Fields, types.FieldSpec{Name: f.Name, Type: t, Vis: f.Vis})
	}
}

// buildMethodSpecs fills sd.Resolved.Methods from sd's impl block, if
// any. Associated consts' types come from their value expression, so
// they are appended by the checker once it type-checks each one.
func buildMethodSpecs(prog *Program, sd *ast.StructDecl, bag *diag.Bag) {
	if sd.Impl == nil {
		return
	}

	self := types.Struct(sd.Resolved)

	for i := range sd.Impl.Methods {
		m := &sd.Impl.Methods[i]

		params := make([]types.Param, 0, len(m.Params))

		for _, p := range m.Params {
			t, err := resolveTypeExpr(prog, p.Type, &self)
			if err != nil {
				bag.Add(sd.Impl, err.Error(), nil)
				continue
			}

			params = append(params, types.Param{Name: p.Name, Type: t, Mut: p.Mut})
		}

		ret, err := resolveTypeExpr(prog, m.Ret, &self)
		if err != nil {
			bag.Add(sd.Impl, err.Error(), nil)
		}

		sd.Resolved.Methods = append(sd.Resolved.Methods, types.MethodSpec{
			Name:     m.Name,
			Vis:      m.Vis,
			IsStatic: m.IsStatic,
			Params:   params,
			Ret:      ret,
		})
	}
}

// resolveTypeExpr translates a parsed TypeExpr into the static type
// universe (§3). self is the enclosing struct's type when resolving a
// field or impl-block signature (so `Self` resolves), or nil at
// top-level scope where `Self` is an error.
func resolveTypeExpr(prog *Program, te *ast.TypeExpr, self *types.Type) (types.Type, error) {
	if te == nil {
		return types.Nil, nil
	}

	switch te.Name {
	case "nil":
		return types.Nil, nil
	case "bool":
		return types.Bool, nil
	case "int":
		return types.Int, nil
	case "float":
		return types.Float, nil
	case "str":
		return types.Str, nil
	case "num":
		return types.Num, nil
	case "any":
		return types.Any, nil
	case "fn":
		return types.Fn, nil
	case "Self":
		if self == nil {
			return types.Type{}, fmt.Errorf("Self used outside an impl block")
		}

		return *self, nil
	case "vec":
		if te.Elem == nil {
			return types.VecAny, nil
		}

		elem, err := resolveTypeExpr(prog, te.Elem, self)
		if err != nil {
			return types.Type{}, err
		}

		return types.Vec(elem), nil
	default:
		if sd, ok := prog.Structs[te.Name]; ok {
			return types.Struct(sd.Resolved), nil
		}

		if ed, ok := prog.Enums[te.Name]; ok {
			return types.Enum(ed.Resolved), nil
		}

		return types.Type{}, fmt.Errorf("unknown type %q", te.Name)
	}
}
