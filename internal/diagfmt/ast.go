package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"weave/internal/ast"
	"weave/internal/source"
)

// ASTNodeOutput is one node of the JSON AST dump.
type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Kind     string          `json:"kind,omitempty"`
	Span     source.Span     `json:"span"`
	Text     string          `json:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

// FormatASTPretty печатает дерево файла с префиксами ├─/└─.
func FormatASTPretty(w io.Writer, file *ast.File, fs *source.FileSet) error {
	if file == nil {
		return fmt.Errorf("nil file")
	}
	fmt.Fprintf(w, "File (span: %s)\n", formatSpan(file.Span, fs))
	for i, stmt := range file.Stmts {
		last := i == len(file.Stmts)-1
		head, prefix := branch("", last)
		fmt.Fprintf(w, "%sStmt[%d]: ", head, i)
		printStmt(w, stmt, fs, prefix)
	}
	return nil
}

func branch(prefix string, last bool) (head, childPrefix string) {
	if last {
		return prefix + "└─ ", prefix + "   "
	}
	return prefix + "├─ ", prefix + "│  "
}

func printStmt(w io.Writer, stmt *ast.Stmt, fs *source.FileSet, prefix string) {
	switch stmt.Kind {
	case ast.StmtVal:
		fmt.Fprintf(w, "Val (span: %s)\n", formatSpan(stmt.Span, fs))
		val := stmt.Val
		hasType := val.Type != nil
		head, _ := branch(prefix, false)
		fmt.Fprintf(w, "%sPattern: %s\n", head, patternLabel(val.Pattern))
		if hasType {
			head, _ = branch(prefix, false)
			fmt.Fprintf(w, "%sType: %s\n", head, typeLabel(val.Type))
		}
		head, childPrefix := branch(prefix, true)
		fmt.Fprintf(w, "%sValue: ", head)
		printExpr(w, val.Value, fs, childPrefix)
	case ast.StmtFn:
		fn := stmt.Fn
		fmt.Fprintf(w, "Fn %s (span: %s)\n", fn.Name, formatSpan(stmt.Span, fs))
		for _, p := range fn.Params {
			head, _ := branch(prefix, false)
			fmt.Fprintf(w, "%sParam: %s: %s\n", head, p.Name, typeLabel(p.Type))
		}
		head, _ := branch(prefix, false)
		fmt.Fprintf(w, "%sResult: %s\n", head, typeLabel(fn.Result))
		head, childPrefix := branch(prefix, true)
		fmt.Fprintf(w, "%sBody: ", head)
		printExpr(w, fn.Body, fs, childPrefix)
	case ast.StmtExpr:
		fmt.Fprintf(w, "Expr (span: %s)\n", formatSpan(stmt.Span, fs))
		head, childPrefix := branch(prefix, true)
		fmt.Fprint(w, head)
		printExpr(w, stmt.Expr, fs, childPrefix)
	}
}

func printExpr(w io.Writer, e *ast.Expr, fs *source.FileSet, prefix string) {
	if e == nil {
		fmt.Fprintln(w, "<nil>")
		return
	}
	switch e.Kind {
	case ast.ExprIdent:
		fmt.Fprintf(w, "Ident %s (span: %s)\n", e.Ident, formatSpan(e.Span, fs))
	case ast.ExprLit:
		fmt.Fprintf(w, "Lit %q (span: %s)\n", e.Lit.Text, formatSpan(e.Span, fs))
	case ast.ExprGroup:
		fmt.Fprintf(w, "Group (span: %s)\n", formatSpan(e.Span, fs))
		head, childPrefix := branch(prefix, true)
		fmt.Fprint(w, head)
		printExpr(w, e.Group, fs, childPrefix)
	case ast.ExprTuple:
		fmt.Fprintf(w, "Tuple (span: %s)\n", formatSpan(e.Span, fs))
		printExprList(w, e.Tuple, fs, prefix)
	case ast.ExprUnary:
		fmt.Fprintf(w, "Unary %s (span: %s)\n", e.Unary.Op.Lexeme(), formatSpan(e.Span, fs))
		head, childPrefix := branch(prefix, true)
		fmt.Fprint(w, head)
		printExpr(w, e.Unary.Operand, fs, childPrefix)
	case ast.ExprBinary:
		fmt.Fprintf(w, "Binary %s (span: %s)\n", e.Binary.Op.Lexeme(), formatSpan(e.Span, fs))
		printExprList(w, []*ast.Expr{e.Binary.Left, e.Binary.Right}, fs, prefix)
	case ast.ExprTernary:
		fmt.Fprintf(w, "Ternary (span: %s)\n", formatSpan(e.Span, fs))
		printExprList(w, []*ast.Expr{e.Ternary.Cond, e.Ternary.Then, e.Ternary.Else}, fs, prefix)
	case ast.ExprCall:
		fmt.Fprintf(w, "Call (span: %s)\n", formatSpan(e.Span, fs))
		printExprList(w, append([]*ast.Expr{e.Call.Callee}, e.Call.Args...), fs, prefix)
	default:
		fmt.Fprintf(w, "Expr(?%d) (span: %s)\n", e.Kind, formatSpan(e.Span, fs))
	}
}

func printExprList(w io.Writer, exprs []*ast.Expr, fs *source.FileSet, prefix string) {
	for i, el := range exprs {
		head, childPrefix := branch(prefix, i == len(exprs)-1)
		fmt.Fprint(w, head)
		printExpr(w, el, fs, childPrefix)
	}
}

// FormatASTJSON сериализует дерево файла в JSON.
func FormatASTJSON(w io.Writer, file *ast.File) error {
	if file == nil {
		return fmt.Errorf("nil file")
	}
	root := ASTNodeOutput{Type: "File", Span: file.Span}
	for _, stmt := range file.Stmts {
		root.Children = append(root.Children, stmtNode(stmt))
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(root)
}

func stmtNode(stmt *ast.Stmt) ASTNodeOutput {
	node := ASTNodeOutput{Type: "Stmt", Span: stmt.Span}
	switch stmt.Kind {
	case ast.StmtVal:
		node.Kind = "Val"
		node.Text = patternLabel(stmt.Val.Pattern)
		if stmt.Val.Type != nil {
			node.Children = append(node.Children, ASTNodeOutput{
				Type: "Type", Span: stmt.Val.Type.Span, Text: typeLabel(stmt.Val.Type),
			})
		}
		node.Children = append(node.Children, exprNode(stmt.Val.Value))
	case ast.StmtFn:
		node.Kind = "Fn"
		node.Text = stmt.Fn.Name
		for _, p := range stmt.Fn.Params {
			node.Children = append(node.Children, ASTNodeOutput{
				Type: "Param", Span: p.Span, Text: p.Name + ": " + typeLabel(p.Type),
			})
		}
		node.Children = append(node.Children, exprNode(stmt.Fn.Body))
	case ast.StmtExpr:
		node.Kind = "Expr"
		node.Children = append(node.Children, exprNode(stmt.Expr))
	}
	return node
}

func exprNode(e *ast.Expr) ASTNodeOutput {
	if e == nil {
		return ASTNodeOutput{Type: "Expr", Kind: "nil"}
	}
	node := ASTNodeOutput{Type: "Expr", Span: e.Span}
	switch e.Kind {
	case ast.ExprIdent:
		node.Kind = "Ident"
		node.Text = e.Ident
	case ast.ExprLit:
		node.Kind = "Lit"
		node.Text = e.Lit.Text
	case ast.ExprGroup:
		node.Kind = "Group"
		node.Children = append(node.Children, exprNode(e.Group))
	case ast.ExprTuple:
		node.Kind = "Tuple"
		for _, el := range e.Tuple {
			node.Children = append(node.Children, exprNode(el))
		}
	case ast.ExprUnary:
		node.Kind = "Unary"
		node.Text = e.Unary.Op.Lexeme()
		node.Children = append(node.Children, exprNode(e.Unary.Operand))
	case ast.ExprBinary:
		node.Kind = "Binary"
		node.Text = e.Binary.Op.Lexeme()
		node.Children = append(node.Children, exprNode(e.Binary.Left), exprNode(e.Binary.Right))
	case ast.ExprTernary:
		node.Kind = "Ternary"
		node.Children = append(node.Children,
			exprNode(e.Ternary.Cond), exprNode(e.Ternary.Then), exprNode(e.Ternary.Else))
	case ast.ExprCall:
		node.Kind = "Call"
		node.Children = append(node.Children, exprNode(e.Call.Callee))
		for _, arg := range e.Call.Args {
			node.Children = append(node.Children, exprNode(arg))
		}
	}
	return node
}

func patternLabel(p *ast.Pattern) string {
	if p == nil {
		return "<nil>"
	}
	switch p.Kind {
	case ast.PatternName:
		return p.Name
	case ast.PatternTuple:
		label := "("
		for i, el := range p.Elems {
			if i > 0 {
				label += ", "
			}
			label += patternLabel(el)
		}
		return label + ")"
	default:
		return "<?>"
	}
}

func typeLabel(t *ast.TypeSyn) string {
	if t == nil {
		return "<inferred>"
	}
	switch t.Kind {
	case ast.TypeSynName:
		return t.Name
	case ast.TypeSynUnit:
		return "()"
	case ast.TypeSynTuple:
		label := "("
		for i, el := range t.Elems {
			if i > 0 {
				label += ", "
			}
			label += typeLabel(el)
		}
		return label + ")"
	case ast.TypeSynFn:
		label := "("
		for i, p := range t.Params {
			if i > 0 {
				label += ", "
			}
			label += typeLabel(p)
		}
		return label + ") -> " + typeLabel(t.Result)
	default:
		return "<?>"
	}
}

func formatSpan(sp source.Span, fs *source.FileSet) string {
	if fs == nil {
		return sp.String()
	}
	start, end := fs.Resolve(sp)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}
