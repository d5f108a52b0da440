package driver

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cfmeyers/Understanding-Computation/pkg/ast"
	"github.com/cfmeyers/Understanding-Computation/pkg/runtime"
)

// DecodeError points at the YAML node that could not be turned into syntax.
type DecodeError struct {
	Path    string
	Line    int
	Column  int
	Message string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("program: %s:%d:%d: %s", e.Path, e.Line, e.Column, e.Message)
}

var statementKeys = map[string]struct{}{
	"do_nothing": {},
	"assign":     {},
	"if":         {},
	"sequence":   {},
	"while":      {},
}

var expressionKeys = map[string]struct{}{
	"number":    {},
	"boolean":   {},
	"variable":  {},
	"add":       {},
	"multiply":  {},
	"less_than": {},
}

// treeDecoder turns the YAML tree encoding into syntax nodes. Every YAML node
// decodes to a fresh syntax node, so anchors and aliases never make two parts
// of a program share a subtree. active holds the collection nodes on the
// current decoding path; an alias back to one of them is a cycle.
type treeDecoder struct {
	path   string
	active map[*yaml.Node]bool
}

func newTreeDecoder(path string) treeDecoder {
	return treeDecoder{path: path, active: make(map[*yaml.Node]bool)}
}

// enter resolves raw and marks the result as being decoded until release is
// called.
func (d treeDecoder) enter(raw *yaml.Node) (node *yaml.Node, release func(), err error) {
	node = resolve(raw)
	if node.Kind != yaml.MappingNode && node.Kind != yaml.SequenceNode {
		return node, func() {}, nil
	}
	if d.active[node] {
		return nil, nil, d.errorf(raw, "alias refers to an enclosing node")
	}
	d.active[node] = true
	return node, func() { delete(d.active, node) }, nil
}

func (d treeDecoder) errorf(node *yaml.Node, format string, args ...any) error {
	return &DecodeError{Path: d.path, Line: node.Line, Column: node.Column, Message: fmt.Sprintf(format, args...)}
}

func (d treeDecoder) statement(raw *yaml.Node) (ast.Statement, error) {
	node, release, err := d.enter(raw)
	if err != nil {
		return nil, err
	}
	defer release()
	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" || node.Value == "do_nothing" || node.Value == "do-nothing" {
			return ast.NewDoNothing(), nil
		}
		return nil, d.errorf(node, "expected a statement, found expression %q", node.Value)
	case yaml.SequenceNode:
		return d.sequence(node)
	case yaml.MappingNode:
		key, body, err := d.single(node)
		if err != nil {
			return nil, err
		}
		if _, ok := expressionKeys[key]; ok {
			return nil, d.errorf(node, "expected a statement, found %s expression", key)
		}
		switch key {
		case "do_nothing":
			if resolve(body).ShortTag() != "!!null" {
				return nil, d.errorf(body, "do_nothing takes no value")
			}
			return ast.NewDoNothing(), nil
		case "assign":
			fields, err := d.fields(body, []string{"name", "expression"}, nil)
			if err != nil {
				return nil, err
			}
			name, err := d.name(fields["name"])
			if err != nil {
				return nil, err
			}
			expr, err := d.expression(fields["expression"])
			if err != nil {
				return nil, err
			}
			return ast.NewAssign(name, expr), nil
		case "if":
			fields, err := d.fields(body, []string{"condition", "consequence"}, []string{"alternative"})
			if err != nil {
				return nil, err
			}
			cond, err := d.expression(fields["condition"])
			if err != nil {
				return nil, err
			}
			cons, err := d.statement(fields["consequence"])
			if err != nil {
				return nil, err
			}
			var alt ast.Statement = ast.NewDoNothing()
			if raw, ok := fields["alternative"]; ok {
				if alt, err = d.statement(raw); err != nil {
					return nil, err
				}
			}
			return ast.NewIf(cond, cons, alt), nil
		case "sequence":
			if resolve(body).Kind != yaml.SequenceNode {
				return nil, d.errorf(body, "sequence expects a list of statements")
			}
			return d.sequence(body)
		case "while":
			fields, err := d.fields(body, []string{"condition", "body"}, nil)
			if err != nil {
				return nil, err
			}
			cond, err := d.expression(fields["condition"])
			if err != nil {
				return nil, err
			}
			loopBody, err := d.statement(fields["body"])
			if err != nil {
				return nil, err
			}
			return ast.NewWhile(cond, loopBody), nil
		default:
			return nil, d.errorf(node, "unknown statement %q", key)
		}
	default:
		return nil, d.errorf(node, "expected a statement")
	}
}

func (d treeDecoder) sequence(node *yaml.Node) (ast.Statement, error) {
	node = resolve(node)
	stmts := make([]ast.Statement, 0, len(node.Content))
	for _, child := range node.Content {
		stmt, err := d.statement(child)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return ast.Seq(stmts...), nil
}

func (d treeDecoder) expression(raw *yaml.Node) (ast.Expression, error) {
	node, release, err := d.enter(raw)
	if err != nil {
		return nil, err
	}
	defer release()
	switch node.Kind {
	case yaml.ScalarNode:
		switch node.ShortTag() {
		case "!!int":
			return d.number(node)
		case "!!bool":
			return d.boolean(node)
		default:
			return nil, d.errorf(node, "expected an expression, found %q (write variables as {variable: name})", node.Value)
		}
	case yaml.MappingNode:
		key, body, err := d.single(node)
		if err != nil {
			return nil, err
		}
		if _, ok := statementKeys[key]; ok {
			return nil, d.errorf(node, "expected an expression, found %s statement", key)
		}
		switch key {
		case "number":
			return d.number(resolve(body))
		case "boolean":
			return d.boolean(resolve(body))
		case "variable":
			name, err := d.name(body)
			if err != nil {
				return nil, err
			}
			return ast.NewVariable(name), nil
		case "add", "multiply", "less_than":
			left, right, err := d.operands(key, body)
			if err != nil {
				return nil, err
			}
			switch key {
			case "add":
				return ast.NewAdd(left, right), nil
			case "multiply":
				return ast.NewMultiply(left, right), nil
			default:
				return ast.NewLessThan(left, right), nil
			}
		default:
			return nil, d.errorf(node, "unknown expression %q", key)
		}
	default:
		return nil, d.errorf(node, "expected an expression")
	}
}

func (d treeDecoder) operands(op string, node *yaml.Node) (ast.Expression, ast.Expression, error) {
	node = resolve(node)
	if node.Kind != yaml.SequenceNode || len(node.Content) != 2 {
		return nil, nil, d.errorf(node, "%s expects a list of two operands", op)
	}
	left, err := d.expression(node.Content[0])
	if err != nil {
		return nil, nil, err
	}
	right, err := d.expression(node.Content[1])
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func (d treeDecoder) number(node *yaml.Node) (ast.Expression, error) {
	var value int64
	if node.Kind != yaml.ScalarNode || node.ShortTag() != "!!int" {
		return nil, d.errorf(node, "expected an integer")
	}
	if err := node.Decode(&value); err != nil {
		return nil, d.errorf(node, "invalid integer %q: %v", node.Value, err)
	}
	return ast.NewNumber(value), nil
}

func (d treeDecoder) boolean(node *yaml.Node) (ast.Expression, error) {
	var value bool
	if node.Kind != yaml.ScalarNode || node.ShortTag() != "!!bool" {
		return nil, d.errorf(node, "expected a boolean")
	}
	if err := node.Decode(&value); err != nil {
		return nil, d.errorf(node, "invalid boolean %q: %v", node.Value, err)
	}
	return ast.NewBoolean(value), nil
}

func (d treeDecoder) name(node *yaml.Node) (string, error) {
	node = resolve(node)
	if node.Kind != yaml.ScalarNode || node.ShortTag() != "!!str" {
		return "", d.errorf(node, "expected a variable name")
	}
	name := strings.TrimSpace(node.Value)
	if name == "" {
		return "", d.errorf(node, "variable name must not be empty")
	}
	return name, nil
}

// environment decodes a mapping of names to literal values. An absent node is
// the empty environment.
func (d treeDecoder) environment(node *yaml.Node) (*runtime.Environment, error) {
	if isAbsent(node) {
		return runtime.NewEnvironment(nil), nil
	}
	node = resolve(node)
	if node.Kind != yaml.MappingNode {
		return nil, d.errorf(node, "environment must be a mapping of names to values")
	}
	bindings := make(map[string]ast.Value, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		name, err := d.name(keyNode)
		if err != nil {
			return nil, err
		}
		if _, dup := bindings[name]; dup {
			return nil, d.errorf(keyNode, "duplicate binding %q", name)
		}
		expr, err := d.expression(valueNode)
		if err != nil {
			return nil, err
		}
		value, ok := expr.(ast.Value)
		if !ok {
			return nil, d.errorf(valueNode, "binding %q must be a number or boolean, found %s", name, expr)
		}
		bindings[name] = value
	}
	return runtime.NewEnvironment(bindings), nil
}

// single unpacks a one-key mapping that names a node kind.
func (d treeDecoder) single(node *yaml.Node) (string, *yaml.Node, error) {
	if len(node.Content) != 2 {
		keys := make([]string, 0, len(node.Content)/2)
		for i := 0; i < len(node.Content); i += 2 {
			keys = append(keys, node.Content[i].Value)
		}
		return "", nil, d.errorf(node, "expected exactly one node kind, found [%s]", strings.Join(keys, ", "))
	}
	return node.Content[0].Value, node.Content[1], nil
}

// fields unpacks a mapping with the given required and optional keys.
func (d treeDecoder) fields(node *yaml.Node, required, optional []string) (map[string]*yaml.Node, error) {
	node = resolve(node)
	if node.Kind != yaml.MappingNode {
		return nil, d.errorf(node, "expected a mapping with keys %s", strings.Join(required, ", "))
	}
	allowed := make(map[string]bool, len(required)+len(optional))
	for _, key := range required {
		allowed[key] = true
	}
	for _, key := range optional {
		allowed[key] = true
	}
	out := make(map[string]*yaml.Node, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if !allowed[key.Value] {
			return nil, d.errorf(key, "unexpected key %q", key.Value)
		}
		if _, dup := out[key.Value]; dup {
			return nil, d.errorf(key, "duplicate key %q", key.Value)
		}
		out[key.Value] = node.Content[i+1]
	}
	var missing []string
	for _, key := range required {
		if _, ok := out[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, d.errorf(node, "missing %s", strings.Join(missing, ", "))
	}
	return out, nil
}

func resolve(node *yaml.Node) *yaml.Node {
	for node != nil && (node.Kind == yaml.AliasNode || node.Kind == yaml.DocumentNode) {
		if node.Kind == yaml.AliasNode {
			node = node.Alias
			continue
		}
		if len(node.Content) == 0 {
			break
		}
		node = node.Content[0]
	}
	return node
}

func isAbsent(node *yaml.Node) bool {
	return node == nil || node.Kind == 0 || (node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null")
}
