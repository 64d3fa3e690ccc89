package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/proplint/proplint/internal/ast"
)

// ScriptBlock is a top-level <script> element of a single-file component.
// Start and End delimit its content as byte offsets into the file.
type ScriptBlock struct {
	Start int
	End   int
	Lang  string
	Setup bool
}

// Dialect returns the grammar the block's lang attribute asks for.
func (b ScriptBlock) Dialect() Dialect {
	if b.Lang == "ts" {
		return DialectTS
	}
	return DialectTSX
}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// ScriptBlocks returns the top-level script blocks of a .vue file in source
// order. Scripts nested inside other elements (a <template>) are ignored.
func ScriptBlocks(src []byte) ([]ScriptBlock, error) {
	z := html.NewTokenizer(bytes.NewReader(src))
	var (
		blocks []ScriptBlock
		depth  int
		offset int
		open   *ScriptBlock
	)
	for {
		tt := z.Next()
		raw := len(z.Raw())
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("parser: sfc: %w", err)
			}
			if open != nil {
				open.End = len(src)
				blocks = append(blocks, *open)
			}
			return blocks, nil
		case html.StartTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)
			if depth == 0 && tag == "script" {
				b := ScriptBlock{Start: offset + raw, End: offset + raw}
				for hasAttr {
					var key, val []byte
					key, val, hasAttr = z.TagAttr()
					switch string(key) {
					case "lang":
						b.Lang = strings.ToLower(string(val))
					case "setup":
						b.Setup = true
					}
				}
				open = &b
			}
			if !voidElements[tag] {
				depth++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if depth > 0 {
				depth--
			}
			if depth == 0 && open != nil && string(name) == "script" {
				open.End = offset
				blocks = append(blocks, *open)
				open = nil
			}
		}
		offset += raw
	}
}

// MaskScripts returns a copy of src in which every byte outside the given
// blocks is blanked, line breaks excepted, so that the result parses as one
// script whose offsets and line numbers match the original file.
func MaskScripts(src []byte, blocks []ScriptBlock) []byte {
	out := make([]byte, len(src))
	for i, c := range src {
		if c == '\n' || c == '\r' {
			out[i] = c
		} else {
			out[i] = ' '
		}
	}
	for _, b := range blocks {
		copy(out[b.Start:b.End], src[b.Start:b.End])
	}
	return out
}

// ParseSFC parses the script blocks of a Vue single-file component as one
// program. A component without scripts yields an empty program.
func (p *Parser) ParseSFC(path string, source []byte) (*ast.File, error) {
	blocks, err := ScriptBlocks(source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	file := &ast.File{Path: path, Source: string(source)}
	if len(blocks) == 0 {
		file.Program = &ast.Node{Type: ast.KindProgram}
		return file, nil
	}

	dialect := DialectTSX
	for _, b := range blocks {
		if b.Lang == "ts" {
			dialect = DialectTS
		}
	}
	for _, b := range blocks {
		if b.Lang == "tsx" || b.Lang == "jsx" {
			dialect = DialectTSX
		}
	}

	program, err := p.parse(path, MaskScripts(source, blocks), dialect)
	if err != nil {
		return nil, err
	}
	file.Program = program
	return file, nil
}
