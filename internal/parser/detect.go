package parser

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// functionStartRe reconhece "<tipo> <nome>(<params>) {" no início da linha.
var functionStartRe = regexp.MustCompile(`^(\w+)\s+(\w+)\s*\([^)]*\)\s*\{`)

// ReadSource lê um arquivo C inteiro.
func ReadSource(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ler código %s: %w", path, err)
	}
	return NewSource(string(data)), nil
}

// IsLineComment indica se a linha, sem espaços, começa com "//".
func IsLineComment(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "//")
}

// FunctionStart devolve o nome da função se a linha abre uma definição.
func FunctionStart(line string) (string, bool) {
	m := functionStartRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[2], true
}

// NestingDepth devolve a profundidade máxima de chaves do texto inteiro.
// Strings, caracteres e comentários não são ignorados.
func NestingDepth(text string) int {
	depth, maxDepth := 0, 0
	for _, c := range text {
		switch c {
		case '{':
			depth++
			if depth > maxDepth {
				maxDepth = depth
			}
		case '}':
			depth--
		}
	}
	return maxDepth
}

// Functions varre o código e devolve as funções detectadas em ordem de abertura.
func (s *Source) Functions(mode BoundaryMode) []FunctionRecord {
	ctx := &ScanContext{mode: mode}
	var out []FunctionRecord
	for i, line := range s.Lines {
		closed, done := ctx.step(i+1, line)
		if rec, ok := ctx.abandoned(); ok {
			out = append(out, rec)
		}
		if done {
			out = append(out, closed)
		}
	}
	if ctx.Active != nil {
		ctx.Active.EndLine = len(s.Lines)
		out = append(out, *ctx.Active)
	}
	return out
}

// BodyEnd devolve a última linha do corpo da função cuja assinatura está em start.
func (s *Source) BodyEnd(start int, mode BoundaryMode) int {
	if mode == Strict {
		depth, opened := 0, false
		for n := start; n <= s.Len(); n++ {
			depth += braceDelta(s.Line(n))
			if strings.Contains(s.Line(n), "{") {
				opened = true
			}
			if opened && depth <= 0 {
				return n
			}
		}
		return s.Len()
	}
	for n := start + 1; n <= s.Len(); n++ {
		if strings.TrimSpace(s.Line(n)) == "}" {
			return n
		}
	}
	return s.Len()
}

func braceDelta(line string) int {
	return strings.Count(line, "{") - strings.Count(line, "}")
}

// step avança o contexto uma linha; devolve a função fechada nesta linha, se houver.
func (c *ScanContext) step(n int, line string) (FunctionRecord, bool) {
	c.Line = n
	before := c.Depth
	c.trackDepth(line)

	if name, ok := FunctionStart(line); ok && (c.mode == Heuristic || c.Active == nil) {
		if c.Active != nil {
			c.Active.EndLine = n - 1
			c.pending = c.Active
		}
		c.Active = &FunctionRecord{Name: name, StartLine: n}
		c.openDepth = before
		if c.mode == Strict && c.Depth <= c.openDepth {
			return c.close(n)
		}
		return FunctionRecord{}, false
	}

	if c.Active == nil {
		return FunctionRecord{}, false
	}
	c.Active.LineCount++
	if strings.Contains(line, "return") && !IsLineComment(line) {
		c.Active.ReturnCount++
	}

	switch c.mode {
	case Strict:
		if c.Depth <= c.openDepth {
			return c.close(n)
		}
	default:
		if strings.TrimSpace(line) == "}" {
			return c.close(n)
		}
	}
	return FunctionRecord{}, false
}

// abandoned devolve a função substituída por uma nova assinatura antes de fechar.
func (c *ScanContext) abandoned() (FunctionRecord, bool) {
	if c.pending == nil {
		return FunctionRecord{}, false
	}
	rec := *c.pending
	c.pending = nil
	return rec, true
}

func (c *ScanContext) close(n int) (FunctionRecord, bool) {
	rec := *c.Active
	rec.EndLine = n
	rec.Closed = true
	c.Active = nil
	return rec, true
}

func (c *ScanContext) trackDepth(line string) {
	for _, ch := range line {
		switch ch {
		case '{':
			c.Depth++
			if c.Depth > c.MaxDepth {
				c.MaxDepth = c.Depth
			}
		case '}':
			c.Depth--
		}
	}
}
