package sema

import (
	"fmt"

	"weave/internal/ast"
	"weave/internal/diag"
	"weave/internal/source"
	"weave/internal/types"
)

func (fc *fileChecker) checkStmt(stmt *ast.Stmt) {
	if stmt == nil {
		return
	}
	var last types.TypeID
	switch stmt.Kind {
	case ast.StmtVal:
		last = fc.checkVal(stmt.Val)
	case ast.StmtFn:
		last = fc.checkFn(stmt.Fn)
	case ast.StmtExpr:
		last = fc.inferExpr(stmt.Expr)
	}
	if fc.result != nil {
		fc.result.LastType = last
	}
}

func (fc *fileChecker) checkVal(v *ast.ValStmt) types.TypeID {
	if v == nil {
		return types.NoTypeID
	}
	valueType := fc.inferExpr(v.Value)
	if v.Type != nil {
		declared := fc.resolveTypeSyn(v.Type)
		if declared != types.NoTypeID && valueType != types.NoTypeID && declared != valueType {
			fc.report(diag.SemaTypeMismatch, v.Value.Span,
				"cannot bind %s value to declared type %s",
				fc.typeLabel(valueType), fc.typeLabel(declared))
		}
		// Bind by the annotation even after a mismatch so later
		// references do not cascade.
		if declared != types.NoTypeID {
			valueType = declared
		}
	}
	fc.bindPattern(v.Pattern, valueType)
	return valueType
}

func (fc *fileChecker) checkFn(fn *ast.FnStmt) types.TypeID {
	if fn == nil {
		return types.NoTypeID
	}
	params := make([]types.TypeID, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = fc.resolveTypeSyn(p.Type)
	}
	result := fc.resolveTypeSyn(fn.Result)

	fnType := types.NoTypeID
	if result != types.NoTypeID && !containsNoType(params) {
		fnType = fc.types.RegisterFn(params, result)
	}
	if fc.result != nil {
		fc.result.FnTypes[fn] = fnType
	}
	// The name is declared before the body so the body can recurse.
	fc.declare(&Symbol{
		Name: fn.Name,
		Kind: SymbolFn,
		Type: fnType,
		Span: fn.NameSpan,
	})

	body := newScope(fc.scope)
	for i, p := range fn.Params {
		if IsReservedName(p.Name) {
			fc.report(diag.SemaReservedName, p.NameSpan,
				"parameter %q uses the reserved %s prefix", p.Name, reservedPrefix)
			continue
		}
		if prev, ok := body.Declare(&Symbol{
			Name: p.Name,
			Kind: SymbolParam,
			Type: params[i],
			Span: p.NameSpan,
		}); !ok {
			fc.reportDuplicate(p.NameSpan, p.Name, prev)
		}
	}

	outer := fc.scope
	fc.scope = body
	bodyType := fc.inferExpr(fn.Body)
	fc.scope = outer

	if bodyType != types.NoTypeID && result != types.NoTypeID && bodyType != result {
		fc.report(diag.SemaTypeMismatch, fn.Body.Span,
			"function %q returns %s, body is %s",
			fn.Name, fc.typeLabel(result), fc.typeLabel(bodyType))
	}
	return fnType
}

func (fc *fileChecker) bindPattern(pat *ast.Pattern, valueType types.TypeID) {
	if pat == nil {
		return
	}
	switch pat.Kind {
	case ast.PatternName:
		fc.declare(&Symbol{
			Name: pat.Name,
			Kind: SymbolVal,
			Type: valueType,
			Span: pat.Span,
		})
	case ast.PatternTuple:
		elems := fc.tupleElemsFor(pat, valueType)
		for i, sub := range pat.Elems {
			elemType := types.NoTypeID
			if i < len(elems) {
				elemType = elems[i]
			}
			fc.bindPattern(sub, elemType)
		}
	}
}

// tupleElemsFor checks that the destructured value is a tuple of the
// pattern's arity and returns its element types. Reports and returns nil
// otherwise; the pattern names still get bound with no type.
func (fc *fileChecker) tupleElemsFor(pat *ast.Pattern, valueType types.TypeID) []types.TypeID {
	if valueType == types.NoTypeID {
		return nil
	}
	info, ok := fc.types.TupleInfo(valueType)
	if !ok {
		fc.report(diag.SemaNotATuple, pat.Span,
			"cannot destructure %s", fc.typeLabel(valueType))
		return nil
	}
	if len(info.Elems) != len(pat.Elems) {
		fc.report(diag.SemaTupleArityMismatch, pat.Span,
			"pattern names %d values, %s has %d", len(pat.Elems),
			fc.typeLabel(valueType), len(info.Elems))
		return nil
	}
	return info.Elems
}

func (fc *fileChecker) declare(sym *Symbol) {
	if IsReservedName(sym.Name) {
		fc.report(diag.SemaReservedName, sym.Span,
			"name %q uses the reserved %s prefix", sym.Name, reservedPrefix)
		return
	}
	if prev, ok := fc.scope.Declare(sym); !ok {
		fc.reportDuplicate(sym.Span, sym.Name, prev)
	}
}

func (fc *fileChecker) reportDuplicate(sp source.Span, name string, prev *Symbol) {
	fc.errors++
	if fc.reporter == nil {
		return
	}
	msg := fmt.Sprintf("%q is already defined", name)
	if prev != nil && (prev.Kind == SymbolBuiltin || prev.Kind == SymbolIntrinsic) {
		msg = fmt.Sprintf("%q shadows a built-in function", name)
	}
	b := diag.ReportError(fc.reporter, diag.SemaDuplicateSymbol, sp, msg)
	if prev != nil && !prev.Span.Empty() {
		b = b.WithNote(prev.Span, "previous definition is here")
	}
	b.Emit()
}

func containsNoType(ids []types.TypeID) bool {
	for _, id := range ids {
		if id == types.NoTypeID {
			return true
		}
	}
	return false
}
