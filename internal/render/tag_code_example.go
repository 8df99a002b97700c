package render

import (
	"github.com/flosch/pongo2/v6"
)

// sessionKey is the execution-context key under which Render stores the session.
const sessionKey = "snippetdoc_session"

// {% code_example "counter.js" %}
//
// The argument may be any expression evaluating to a file name relative to
// the examples directory.
type tagCodeExampleNode struct {
	position *pongo2.Token
	filename pongo2.IEvaluator
}

func (node *tagCodeExampleNode) Execute(ctx *pongo2.ExecutionContext, writer pongo2.TemplateWriter) *pongo2.Error {
	s, ok := ctx.Public[sessionKey].(*session)
	if !ok {
		return ctx.Error("code_example used outside a render session", node.position)
	}

	value, perr := node.filename.Evaluate(ctx)
	if perr != nil {
		return perr
	}
	if !value.IsString() || value.String() == "" {
		return ctx.Error("code_example expects a file name", node.position)
	}

	out, err := s.insert(value.String())
	if err != nil {
		return ctx.OrigError(err, node.position)
	}
	if _, err := writer.WriteString(out); err != nil {
		return ctx.OrigError(err, node.position)
	}
	return nil
}

func tagCodeExampleParser(_ *pongo2.Parser, start *pongo2.Token, arguments *pongo2.Parser) (pongo2.INodeTag, *pongo2.Error) {
	node := &tagCodeExampleNode{position: start}

	filename, err := arguments.ParseExpression()
	if err != nil {
		return nil, err
	}
	node.filename = filename

	if arguments.Remaining() > 0 {
		return nil, arguments.Error("code_example takes exactly one argument", nil)
	}
	return node, nil
}

func init() {
	if err := pongo2.RegisterTag("code_example", tagCodeExampleParser); err != nil {
		panic(err)
	}
}
