package ast

// Visitor dispatches over every node kind. Used by the prettyprinter
// and the parser snapshot tests.
type Visitor interface {
	VisitProgram(n *Program)
	VisitAssignment(n *AssignmentStatement)
	VisitFunction(n *FunctionStatement)
	VisitExpressionStatement(n *ExpressionStatement)
	VisitUse(n *UseStatement)
	VisitExport(n *ExportStatement)

	VisitIdentifierPattern(n *IdentifierPattern)
	VisitListPattern(n *ListPattern)
	VisitObjectPattern(n *ObjectPattern)

	VisitNumber(n *NumberLiteral)
	VisitString(n *StringLiteral)
	VisitBoolean(n *BooleanLiteral)
	VisitNull(n *NullLiteral)
	VisitIdentifier(n *Identifier)
	VisitBlock(n *BlockExpression)
	VisitLambda(n *LambdaExpression)
	VisitObject(n *ObjectLiteral)
	VisitList(n *ListLiteral)
	VisitCall(n *CallExpression)
	VisitPropertyAccess(n *PropertyAccessExpression)
	VisitBinary(n *BinaryExpression)
	VisitSpread(n *SpreadExpression)
}
