package gopoly

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// ============================================================
// MCP Tool Interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// Tools lists the tool names HandleToolCall understands, sorted.
func Tools() []string {
	names := make([]string, 0, len(toolSpecs))
	for _, s := range toolSpecs {
		names = append(names, s.name)
	}
	sort.Strings(names)
	return names
}

// HandleToolCall runs a single stateless tool call. Expressions are passed
// as text in the calculator grammar, e.g. "4x^3 -6x^1 +8x^0".
func HandleToolCall(req ToolRequest) ToolResponse {
	getString := func(key string) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			return "", fmt.Errorf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("param %s must be a string", key)
		}
		return s, nil
	}
	getPoly := func(key string) (*Polynomial, error) {
		s, err := getString(key)
		if err != nil {
			return nil, err
		}
		p, err := Parse(s)
		if err != nil {
			return nil, fmt.Errorf("param %s: %w", key, err)
		}
		return p, nil
	}
	// JSON numbers decode as float64; only exact integers in int range pass.
	getInt := func(key string) (int, error) {
		v, ok := req.Params[key]
		if !ok {
			return 0, fmt.Errorf("missing param: %s", key)
		}
		switch n := v.(type) {
		case float64:
			if n != math.Trunc(n) || n < math.MinInt64 || n >= math.MaxInt64 {
				return 0, fmt.Errorf("param %s must be an integer", key)
			}
			return int(n), nil
		case int:
			return n, nil
		case json.Number:
			i, err := n.Int64()
			if err != nil {
				return 0, fmt.Errorf("param %s must be an integer", key)
			}
			return int(i), nil
		}
		return 0, fmt.Errorf("param %s must be an integer", key)
	}
	getPair := func() (*Polynomial, *Polynomial, error) {
		a, err := getPoly("a")
		if err != nil {
			return nil, nil, err
		}
		b, err := getPoly("b")
		if err != nil {
			return nil, nil, err
		}
		return a, b, nil
	}
	errResp := func(err error) ToolResponse { return ToolResponse{Error: err.Error()} }
	polyResp := func(p *Polynomial) ToolResponse {
		return ToolResponse{Result: p, String: p.String(), LaTeX: p.LaTeX()}
	}

	switch req.Tool {
	case "parse":
		p, err := getPoly("expr")
		if err != nil {
			return errResp(err)
		}
		return polyResp(p)

	case "add", "sub", "mul":
		a, b, err := getPair()
		if err != nil {
			return errResp(err)
		}
		var r *Polynomial
		switch req.Tool {
		case "add":
			r = Add(a, b)
		case "sub":
			r = Sub(a, b)
		default:
			r = Mul(a, b)
		}
		return polyResp(r)

	case "evaluate":
		p, err := getPoly("expr")
		if err != nil {
			return errResp(err)
		}
		x, err := getInt("x")
		if err != nil {
			return errResp(err)
		}
		v := Evaluate(p, x)
		return ToolResponse{Result: v, String: fmt.Sprintf("p(%d) = %d", x, v), LaTeX: p.LaTeX()}

	case "degree":
		p, err := getPoly("expr")
		if err != nil {
			return errResp(err)
		}
		return ToolResponse{Result: p.Degree(), String: fmt.Sprint(p.Degree())}

	case "equal":
		a, b, err := getPair()
		if err != nil {
			return errResp(err)
		}
		eq := a.Equal(b)
		return ToolResponse{Result: eq, String: fmt.Sprint(eq)}

	case "mcp_spec":
		return ToolResponse{String: MCPToolSpec()}
	}
	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

// ============================================================
// MCP spec
// ============================================================

type toolSpec struct {
	name, description string
	required          []string
	props             map[string]string
}

var toolSpecs = []toolSpec{
	{"parse", "Parse a polynomial into canonical form", []string{"expr"}, map[string]string{"expr": "string"}},
	{"add", "Add two polynomials (a + b)", []string{"a", "b"}, map[string]string{"a": "string", "b": "string"}},
	{"sub", "Subtract two polynomials (a - b)", []string{"a", "b"}, map[string]string{"a": "string", "b": "string"}},
	{"mul", "Multiply two polynomials (a * b)", []string{"a", "b"}, map[string]string{"a": "string", "b": "string"}},
	{"evaluate", "Evaluate a polynomial at integer x", []string{"expr", "x"}, map[string]string{"expr": "string", "x": "integer"}},
	{"degree", "Degree of a polynomial (-1 for zero)", []string{"expr"}, map[string]string{"expr": "string"}},
	{"equal", "Check whether two polynomials are identical", []string{"a", "b"}, map[string]string{"a": "string", "b": "string"}},
	{"mcp_spec", "Return this tool schema", []string{}, map[string]string{}},
}

func MCPToolSpec() string {
	tools := make([]map[string]interface{}, 0, len(toolSpecs))
	for _, s := range toolSpecs {
		tools = append(tools, ts(s.name, s.description, s.required, s.props))
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
