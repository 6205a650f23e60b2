package parser

import "strings"

// BoundaryMode escolhe como o fim de uma função é detectado.
type BoundaryMode int

const (
	// Heuristic fecha a função na primeira linha que é exatamente "}".
	Heuristic BoundaryMode = iota
	// Strict fecha a função quando a profundidade de chaves volta ao nível de abertura.
	Strict
)

func (m BoundaryMode) String() string {
	if m == Strict {
		return "strict"
	}
	return "heuristic"
}

// Source é o código C dividido em linhas (1-indexed para quem chama).
type Source struct {
	Text  string
	Lines []string
}

// FunctionRecord descreve uma função detectada por heurística de linha.
type FunctionRecord struct {
	Name        string
	StartLine   int  // linha da assinatura
	EndLine     int  // linha de fechamento ou última linha do corpo
	Closed      bool // false quando o corpo nunca foi fechado ou foi abandonado
	ReturnCount int
	LineCount   int // linhas do corpo, incluindo a de fechamento
}

// ScanContext é o estado transitório de uma varredura linha a linha.
type ScanContext struct {
	Line     int
	Depth    int
	MaxDepth int
	Active   *FunctionRecord

	mode      BoundaryMode
	openDepth int
	pending   *FunctionRecord
}

// NewSource divide o texto em linhas. Texto vazio produz uma única linha vazia.
func NewSource(text string) *Source {
	return &Source{Text: text, Lines: strings.Split(text, "\n")}
}

// Len devolve o número de linhas.
func (s *Source) Len() int { return len(s.Lines) }

// Line devolve a linha n (1-based) ou "" fora do intervalo.
func (s *Source) Line(n int) string {
	if n < 1 || n > len(s.Lines) {
		return ""
	}
	return s.Lines[n-1]
}

// Snippet devolve a linha n sem espaços nas pontas.
func (s *Source) Snippet(n int) string {
	return strings.TrimSpace(s.Line(n))
}
