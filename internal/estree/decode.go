// Package estree decodes ESTree JSON documents into the proplint syntax tree.
//
// The accepted format is the one JavaScript linters exchange: ESTree nodes as
// produced by espree, acorn, @typescript-eslint/typescript-estree or
// vue-eslint-parser. Both the current (typeArguments) and the older
// (typeParameters) spelling of type arguments are understood. Offsets are
// JavaScript string indices, so decoded files are marked UTF16.
package estree

import (
	"bytes"
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/proplint/proplint/internal/ast"
)

// wireNode mirrors the JSON shape of an ESTree node. Keys whose JSON shape
// depends on the node type are captured raw and sorted out by convert.
type wireNode struct {
	Type  string        `json:"type"`
	Range []int         `json:"range"`
	Start *int          `json:"start"`
	End   *int          `json:"end"`
	Loc   *ast.Location `json:"loc"`

	Name       jsontext.Value `json:"name"`
	Value      jsontext.Value `json:"value"`
	Body       jsontext.Value `json:"body"`
	Expression jsontext.Value `json:"expression"`
	Consequent jsontext.Value `json:"consequent"`

	Raw       string     `json:"raw"`
	Bigint    string     `json:"bigint"`
	Regex     *ast.Regex `json:"regex"`
	Tail      bool       `json:"tail"`
	Kind      string     `json:"kind"`
	Computed  bool       `json:"computed"`
	Method    bool       `json:"method"`
	Shorthand bool       `json:"shorthand"`
	Optional  bool       `json:"optional"`
	Async     bool       `json:"async"`
	Generator bool       `json:"generator"`
	Prefix    bool       `json:"prefix"`
	Operator  string     `json:"operator"`

	Key            *wireNode `json:"key"`
	ID             *wireNode `json:"id"`
	Init           *wireNode `json:"init"`
	Initializer    *wireNode `json:"initializer"`
	Argument       *wireNode `json:"argument"`
	Callee         *wireNode `json:"callee"`
	Object         *wireNode `json:"object"`
	Property       *wireNode `json:"property"`
	Left           *wireNode `json:"left"`
	Right          *wireNode `json:"right"`
	Declaration    *wireNode `json:"declaration"`
	Test           *wireNode `json:"test"`
	Alternate      *wireNode `json:"alternate"`
	Block          *wireNode `json:"block"`
	Handler        *wireNode `json:"handler"`
	Finalizer      *wireNode `json:"finalizer"`
	TypeAnnotation *wireNode `json:"typeAnnotation"`
	TypeArguments  *wireNode `json:"typeArguments"`
	TypeParameters *wireNode `json:"typeParameters"`
	TypeName       *wireNode `json:"typeName"`
	Literal        *wireNode `json:"literal"`
	ElementType    *wireNode `json:"elementType"`
	Label          *wireNode `json:"label"`
	Constraint     *wireNode `json:"constraint"`
	ReturnType     *wireNode `json:"returnType"`

	Params       []*wireNode `json:"params"`
	Arguments    []*wireNode `json:"arguments"`
	Declarations []*wireNode `json:"declarations"`
	Cases        []*wireNode `json:"cases"`
	Properties   []*wireNode `json:"properties"`
	Elements     []*wireNode `json:"elements"`
	Quasis       []*wireNode `json:"quasis"`
	Expressions  []*wireNode `json:"expressions"`
	Types        []*wireNode `json:"types"`
	Members      []*wireNode `json:"members"`
	ElementTypes []*wireNode `json:"elementTypes"`
	Extends      []*wireNode `json:"extends"`
}

// templateValue is the value of a TemplateElement.
type templateValue struct {
	Raw    string  `json:"raw"`
	Cooked *string `json:"cooked"`
}

// document is the envelope form: an AST together with its source text.
type document struct {
	AST    *wireNode `json:"ast"`
	Source string    `json:"source"`
	Text   string    `json:"text"`
}

// typeArgumentHolders are the node types whose legacy typeParameters field
// holds type arguments rather than parameter declarations.
var typeArgumentHolders = map[string]bool{
	ast.KindCallExpression:            true,
	ast.KindNewExpression:             true,
	ast.KindTSTypeReference:           true,
	ast.KindTSInterfaceHeritage:       true,
	ast.KindTSTypeQuery:               true,
	ast.KindTSImportType:              true,
	"TSClassImplements":               true,
	"TaggedTemplateExpression":        true,
	"JSXOpeningElement":               true,
	ast.KindTSInstantiationExpression: true,
}

// Decode decodes a single ESTree node (usually a Program).
func Decode(data []byte) (*ast.Node, error) {
	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("estree: %w", err)
	}
	if w.Type == "" {
		return nil, fmt.Errorf("estree: document is not an ESTree node (missing \"type\")")
	}
	return convert(&w)
}

// DecodeFile decodes an ESTree document into a file. The document is either
// a bare node or an envelope {"ast": node, "source": text}.
func DecodeFile(path string, data []byte) (*ast.File, error) {
	var env document
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("estree: decode %s: %w", path, err)
	}
	if env.AST != nil {
		program, err := convert(env.AST)
		if err != nil {
			return nil, fmt.Errorf("estree: decode %s: %w", path, err)
		}
		source := env.Source
		if source == "" {
			source = env.Text
		}
		return &ast.File{Path: path, Source: source, Program: program, UTF16: true}, nil
	}

	program, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("estree: decode %s: %w", path, err)
	}
	return &ast.File{Path: path, Program: program, UTF16: true}, nil
}

func convert(w *wireNode) (*ast.Node, error) {
	if w == nil {
		return nil, nil
	}
	n := &ast.Node{
		Type:      w.Type,
		Raw:       w.Raw,
		Bigint:    w.Bigint,
		Regex:     w.Regex,
		Tail:      w.Tail,
		Kind:      w.Kind,
		Computed:  w.Computed,
		Method:    w.Method,
		Shorthand: w.Shorthand,
		Optional:  w.Optional,
		Async:     w.Async,
		Generator: w.Generator,
		Prefix:    w.Prefix,
		Operator:  w.Operator,
	}
	switch {
	case len(w.Range) == 2:
		n.Range = ast.Range{w.Range[0], w.Range[1]}
	case w.Start != nil && w.End != nil:
		n.Range = ast.Range{*w.Start, *w.End}
	}
	if w.Loc != nil {
		n.Loc = *w.Loc
	}

	var err error
	if n.Name, err = decodeName(w.Name); err != nil {
		return nil, err
	}
	if err := decodeValue(n, w.Value); err != nil {
		return nil, err
	}
	if err := decodeBody(n, w.Body); err != nil {
		return nil, err
	}
	if err := decodeExpression(n, w.Expression); err != nil {
		return nil, err
	}
	if err := decodeConsequent(n, w.Consequent); err != nil {
		return nil, err
	}

	typeArgs := w.TypeArguments
	typeParams := w.TypeParameters
	if typeArgs == nil && typeArgumentHolders[w.Type] {
		typeArgs, typeParams = typeParams, nil
	}
	init := w.Init
	if init == nil {
		init = w.Initializer
	}

	singles := []struct {
		dst **ast.Node
		src *wireNode
	}{
		{&n.Key, w.Key}, {&n.ID, w.ID}, {&n.Init, init}, {&n.Argument, w.Argument},
		{&n.Callee, w.Callee}, {&n.Object, w.Object}, {&n.Property, w.Property},
		{&n.Left, w.Left}, {&n.Right, w.Right}, {&n.Declaration, w.Declaration},
		{&n.Test, w.Test}, {&n.Alternate, w.Alternate}, {&n.Block, w.Block},
		{&n.Handler, w.Handler}, {&n.Finalizer, w.Finalizer},
		{&n.TypeAnnotation, w.TypeAnnotation}, {&n.TypeArguments, typeArgs},
		{&n.TypeParameters, typeParams}, {&n.TypeName, w.TypeName},
		{&n.Literal, w.Literal}, {&n.ElementType, w.ElementType},
		{&n.Label, w.Label}, {&n.Constraint, w.Constraint}, {&n.ReturnType, w.ReturnType},
	}
	for _, s := range singles {
		if *s.dst, err = convert(s.src); err != nil {
			return nil, err
		}
	}

	lists := []struct {
		dst *[]*ast.Node
		src []*wireNode
	}{
		{&n.Params, w.Params}, {&n.Arguments, w.Arguments},
		{&n.Declarations, w.Declarations}, {&n.Cases, w.Cases},
		{&n.Properties, w.Properties}, {&n.Elements, w.Elements},
		{&n.Quasis, w.Quasis}, {&n.Expressions, w.Expressions},
		{&n.Types, w.Types}, {&n.Members, w.Members},
		{&n.ElementTypes, w.ElementTypes}, {&n.Extends, w.Extends},
	}
	for _, l := range lists {
		if *l.dst, err = convertList(l.src); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// convertList keeps nil entries so that array holes survive.
func convertList(ws []*wireNode) ([]*ast.Node, error) {
	if ws == nil {
		return nil, nil
	}
	out := make([]*ast.Node, len(ws))
	for i, w := range ws {
		n, err := convert(w)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// leading returns the first significant byte of a raw JSON value, or 0 when
// the key was absent.
func leading(v jsontext.Value) byte {
	t := bytes.TrimSpace(v)
	if len(t) == 0 {
		return 0
	}
	return t[0]
}

func decodeNode(v jsontext.Value) (*ast.Node, error) {
	var w wireNode
	if err := json.Unmarshal(v, &w); err != nil {
		return nil, err
	}
	return convert(&w)
}

func decodeNodes(v jsontext.Value) ([]*ast.Node, error) {
	var ws []*wireNode
	if err := json.Unmarshal(v, &ws); err != nil {
		return nil, err
	}
	return convertList(ws)
}

// decodeName accepts both a string name and an Identifier node (newer
// typescript-estree TSTypeParameter).
func decodeName(v jsontext.Value) (string, error) {
	switch leading(v) {
	case '"':
		var s string
		err := json.Unmarshal(v, &s)
		return s, err
	case '{':
		id, err := decodeNode(v)
		if err != nil || id == nil {
			return "", err
		}
		return id.Name, nil
	}
	return "", nil
}

func decodeValue(n *ast.Node, v jsontext.Value) error {
	switch leading(v) {
	case 0, 'n':
		return nil
	case '{':
		if n.Type == ast.KindTemplateElement {
			var tv templateValue
			if err := json.Unmarshal(v, &tv); err != nil {
				return err
			}
			n.Cooked = tv.Raw
			if tv.Cooked != nil {
				n.Cooked = *tv.Cooked
			}
			return nil
		}
		if n.Type == ast.KindLiteral {
			// A serialized RegExp or BigInt object; the regex and bigint
			// fields carry the information.
			return nil
		}
		child, err := decodeNode(v)
		if err != nil {
			return err
		}
		n.Value = child
		return nil
	default:
		var scalar any
		if err := json.Unmarshal(v, &scalar); err != nil {
			return err
		}
		n.LiteralValue = scalar
		return nil
	}
}

func decodeBody(n *ast.Node, v jsontext.Value) error {
	var err error
	switch leading(v) {
	case '[':
		n.Statements, err = decodeNodes(v)
	case '{':
		n.Body, err = decodeNode(v)
	}
	return err
}

func decodeExpression(n *ast.Node, v jsontext.Value) error {
	var err error
	switch leading(v) {
	case 't':
		n.ExpressionBody = true
	case '{':
		n.Expression, err = decodeNode(v)
	}
	return err
}

func decodeConsequent(n *ast.Node, v jsontext.Value) error {
	var err error
	switch leading(v) {
	case '[':
		n.Statements, err = decodeNodes(v)
	case '{':
		n.Consequent, err = decodeNode(v)
	}
	return err
}
