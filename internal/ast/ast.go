// Package ast defines the ESTree-shaped syntax tree proplint analyzes.
//
// Both front ends (ESTree JSON documents and the tree-sitter parser) lower
// their input into this representation. Node kinds use the ESTree and
// typescript-estree type names, so a node built from either source reads the
// same to the analyzer. Fields a given kind does not use are left zero.
package ast

// Node types used by the analyzer. Kinds outside this list may still appear
// in a tree; they are treated as opaque.
const (
	KindProgram                  = "Program"
	KindExportDefaultDeclaration = "ExportDefaultDeclaration"
	KindExportNamedDeclaration   = "ExportNamedDeclaration"
	KindExpressionStatement      = "ExpressionStatement"
	KindVariableDeclaration      = "VariableDeclaration"
	KindVariableDeclarator       = "VariableDeclarator"
	KindFunctionDeclaration      = "FunctionDeclaration"
	KindClassDeclaration         = "ClassDeclaration"
	KindBlockStatement           = "BlockStatement"
	KindReturnStatement          = "ReturnStatement"
	KindIfStatement              = "IfStatement"
	KindSwitchStatement          = "SwitchStatement"
	KindSwitchCase               = "SwitchCase"
	KindTryStatement             = "TryStatement"
	KindCatchClause              = "CatchClause"
	KindForStatement             = "ForStatement"
	KindForInStatement           = "ForInStatement"
	KindForOfStatement           = "ForOfStatement"
	KindWhileStatement           = "WhileStatement"
	KindDoWhileStatement         = "DoWhileStatement"
	KindLabeledStatement         = "LabeledStatement"

	KindIdentifier                = "Identifier"
	KindThisExpression            = "ThisExpression"
	KindLiteral                   = "Literal"
	KindTemplateLiteral           = "TemplateLiteral"
	KindTemplateElement           = "TemplateElement"
	KindObjectExpression          = "ObjectExpression"
	KindArrayExpression           = "ArrayExpression"
	KindProperty                  = "Property"
	KindSpreadElement             = "SpreadElement"
	KindCallExpression            = "CallExpression"
	KindNewExpression             = "NewExpression"
	KindChainExpression           = "ChainExpression"
	KindMemberExpression          = "MemberExpression"
	KindArrowFunctionExpression   = "ArrowFunctionExpression"
	KindFunctionExpression        = "FunctionExpression"
	KindClassExpression           = "ClassExpression"
	KindObjectPattern             = "ObjectPattern"
	KindArrayPattern              = "ArrayPattern"
	KindAssignmentPattern         = "AssignmentPattern"
	KindRestElement               = "RestElement"
	KindUnaryExpression           = "UnaryExpression"
	KindParenthesizedExpression   = "ParenthesizedExpression"
	KindTSAsExpression            = "TSAsExpression"
	KindTSSatisfiesExpression     = "TSSatisfiesExpression"
	KindTSNonNullExpression       = "TSNonNullExpression"
	KindTSTypeAssertion           = "TSTypeAssertion"
	KindTSInstantiationExpression = "TSInstantiationExpression"

	KindTSTypeAnnotation                = "TSTypeAnnotation"
	KindTSTypeParameterInstantiation    = "TSTypeParameterInstantiation"
	KindTSTypeParameterDeclaration      = "TSTypeParameterDeclaration"
	KindTSTypeParameter                 = "TSTypeParameter"
	KindTSTypeAliasDeclaration          = "TSTypeAliasDeclaration"
	KindTSInterfaceDeclaration          = "TSInterfaceDeclaration"
	KindTSInterfaceBody                 = "TSInterfaceBody"
	KindTSInterfaceHeritage             = "TSInterfaceHeritage"
	KindTSEnumDeclaration               = "TSEnumDeclaration"
	KindTSEnumMember                    = "TSEnumMember"
	KindTSTypeLiteral                   = "TSTypeLiteral"
	KindTSPropertySignature             = "TSPropertySignature"
	KindTSMethodSignature               = "TSMethodSignature"
	KindTSCallSignatureDeclaration      = "TSCallSignatureDeclaration"
	KindTSConstructSignatureDeclaration = "TSConstructSignatureDeclaration"
	KindTSIndexSignature                = "TSIndexSignature"
	KindTSTypeReference                 = "TSTypeReference"
	KindTSQualifiedName                 = "TSQualifiedName"
	KindTSUnionType                     = "TSUnionType"
	KindTSIntersectionType              = "TSIntersectionType"
	KindTSLiteralType                   = "TSLiteralType"
	KindTSTemplateLiteralType           = "TSTemplateLiteralType"
	KindTSArrayType                     = "TSArrayType"
	KindTSTupleType                     = "TSTupleType"
	KindTSNamedTupleMember              = "TSNamedTupleMember"
	KindTSOptionalType                  = "TSOptionalType"
	KindTSRestType                      = "TSRestType"
	KindTSFunctionType                  = "TSFunctionType"
	KindTSConstructorType               = "TSConstructorType"
	KindTSParenthesizedType             = "TSParenthesizedType"
	KindTSTypeOperator                  = "TSTypeOperator"
	KindTSTypeQuery                     = "TSTypeQuery"
	KindTSIndexedAccessType             = "TSIndexedAccessType"
	KindTSConditionalType               = "TSConditionalType"
	KindTSMappedType                    = "TSMappedType"
	KindTSImportType                    = "TSImportType"

	KindTSStringKeyword    = "TSStringKeyword"
	KindTSNumberKeyword    = "TSNumberKeyword"
	KindTSBooleanKeyword   = "TSBooleanKeyword"
	KindTSBigIntKeyword    = "TSBigIntKeyword"
	KindTSSymbolKeyword    = "TSSymbolKeyword"
	KindTSObjectKeyword    = "TSObjectKeyword"
	KindTSAnyKeyword       = "TSAnyKeyword"
	KindTSUnknownKeyword   = "TSUnknownKeyword"
	KindTSNullKeyword      = "TSNullKeyword"
	KindTSUndefinedKeyword = "TSUndefinedKeyword"
	KindTSVoidKeyword      = "TSVoidKeyword"
	KindTSNeverKeyword     = "TSNeverKeyword"
)

// Position is a line/column pair. Line is 1-based, Column is 0-based, as in
// ESTree's SourceLocation.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Location is the start/end span of a node.
type Location struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Range is a half-open [start, end) offset pair into the source text.
type Range [2]int

// Regex holds the pattern of a regular expression literal.
type Regex struct {
	Pattern string `json:"pattern"`
	Flags   string `json:"flags"`
}

// Node is a syntax tree node. Its Type is an ESTree node type; the meaning of
// the remaining fields follows the ESTree field of the same name. Where
// ESTree reuses a field name with different shapes (body, value, expression,
// consequent) the variants are split into separate Go fields.
type Node struct {
	Type  string
	Range Range
	Loc   Location

	// Identifier, TSTypeParameter, PrivateIdentifier.
	Name string

	// Literal. LiteralValue holds a string, float64, bool or nil.
	LiteralValue any
	Raw          string
	Bigint       string
	Regex        *Regex

	// TemplateElement.
	Cooked string
	Tail   bool

	// Property, MethodDefinition, TSPropertySignature.
	Key       *Node
	Value     *Node
	Kind      string
	Computed  bool
	Method    bool
	Shorthand bool
	Optional  bool

	// Functions.
	ID             *Node
	Params         []*Node
	Body           *Node
	ExpressionBody bool
	Async          bool
	Generator      bool
	ReturnType     *Node

	// Statement lists: Program, BlockStatement, TSInterfaceBody, ClassBody,
	// SwitchCase consequent.
	Statements []*Node

	Expression   *Node
	Declaration  *Node
	Declarations []*Node
	Init         *Node
	Argument     *Node
	Arguments    []*Node
	Callee       *Node
	Object       *Node
	Property     *Node
	Left         *Node
	Right        *Node
	Operator     string
	Prefix       bool
	Test         *Node
	Consequent   *Node
	Alternate    *Node
	Cases        []*Node
	Block        *Node
	Handler      *Node
	Finalizer    *Node

	Properties  []*Node
	// Elements may contain nil entries for array holes.
	Elements    []*Node
	Quasis      []*Node
	Expressions []*Node

	// TypeScript.
	TypeAnnotation *Node
	TypeArguments  *Node
	TypeParameters *Node
	TypeName       *Node
	Literal        *Node
	Types          []*Node
	Members        []*Node
	ElementType    *Node
	ElementTypes   []*Node
	Extends        []*Node
	Label          *Node
	Constraint     *Node
}

// Is reports whether n is non-nil and has one of the given types.
func (n *Node) Is(types ...string) bool {
	if n == nil {
		return false
	}
	for _, t := range types {
		if n.Type == t {
			return true
		}
	}
	return false
}

// IsFunction reports whether n is a function expression or declaration.
func (n *Node) IsFunction() bool {
	return n.Is(KindArrowFunctionExpression, KindFunctionExpression, KindFunctionDeclaration)
}

// StringValue returns the value of a string literal.
func (n *Node) StringValue() (string, bool) {
	if !n.Is(KindLiteral) {
		return "", false
	}
	s, ok := n.LiteralValue.(string)
	return s, ok
}

// TypeArgs returns the type arguments of a call or type reference, or nil.
func (n *Node) TypeArgs() []*Node {
	if n == nil || n.TypeArguments == nil {
		return nil
	}
	return n.TypeArguments.Params
}

// File is one analyzed source file.
type File struct {
	Path    string
	Source  string
	Program *Node
	// UTF16 reports that Range offsets count UTF-16 code units (ESTree JSON
	// produced by JavaScript parsers) rather than bytes.
	UTF16 bool
}
