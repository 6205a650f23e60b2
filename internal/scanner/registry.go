package scanner

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"

	"go.uber.org/zap"
)

// Stream indica de onde vem a saída que o parser consome.
type Stream int

const (
	Stdout Stream = iota
	Both // stdout seguido de stderr
)

// Spec descreve como provar e executar uma ferramenta.
type Spec struct {
	Name        string   // chave no relatório, ex: "clang_tidy"
	Binary      string   // executável
	VersionArgs []string // usado no probe
	Args        []string // flags fixas; o arquivo vai ao final
	OKExitCodes []int    // códigos aceitos como sucesso
	Output      Stream
}

var specs = map[string]Spec{
	"cppcheck": {
		Name:        "cppcheck",
		Binary:      "cppcheck",
		VersionArgs: []string{"--version"},
		Args: []string{
			"--enable=all",
			"--xml",
			"--xml-version=2",
			"--suppress=missingIncludeSystem",
			"--suppress=unusedFunction",
		},
		// cppcheck devolve 1 quando há avisos
		OKExitCodes: []int{0, 1},
		// o XML sai em stderr
		Output: Both,
	},
	"clang_tidy": {
		Name:        "clang_tidy",
		Binary:      "clang-tidy",
		VersionArgs: []string{"--version"},
		Args:        []string{"--checks=*", "--warnings-as-errors=*", "--format-style=json"},
		OKExitCodes: []int{0, 1},
		Output:      Stdout,
	},
	"splint": {
		Name:        "splint",
		Binary:      "splint",
		VersionArgs: []string{"--version"},
		Args:        []string{"+all", "+bounds", "+strict", "+unrecog"},
		OKExitCodes: []int{0, 1},
		Output:      Stdout,
	},
	"flawfinder": {
		Name:        "flawfinder",
		Binary:      "flawfinder",
		VersionArgs: []string{"--version"},
		Args:        []string{"--html", "--context", "--minlevel", "1"},
		OKExitCodes: []int{0},
		Output:      Stdout,
	},
}

// Lookup devolve a Spec padrão de uma ferramenta.
func Lookup(name string) (Spec, error) {
	spec, ok := specs[name]
	if !ok {
		return Spec{}, fmt.Errorf("scanner '%s' não suportado", name)
	}
	spec.Args = slices.Clone(spec.Args)
	return spec, nil
}

// Names lista as ferramentas conhecidas em ordem alfabética.
func Names() []string {
	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Probe roda o comando de versão. Qualquer falha significa indisponível.
func Probe(ctx context.Context, r Runner, spec Spec, timeout time.Duration, log *zap.SugaredLogger) bool {
	log = orNop(log)
	res, err := RunWithTimeout(ctx, r, timeout, spec.Binary, spec.VersionArgs...)
	if err != nil {
		log.Debugw("Ferramenta indisponível", "tool", spec.Name, "erro", err)
		return false
	}
	if res.ExitCode != 0 {
		log.Debugw("Probe com código de saída inesperado", "tool", spec.Name, "exit", res.ExitCode)
		return false
	}
	return true
}

// Execute roda a ferramenta sobre filePath e devolve a saída bruta.
// Timeout, falha ou código de saída não aceito resultam em saída vazia.
func Execute(ctx context.Context, r Runner, spec Spec, filePath string, timeout time.Duration, log *zap.SugaredLogger) []byte {
	log = orNop(log)
	args := append(slices.Clone(spec.Args), filePath)
	res, err := RunWithTimeout(ctx, r, timeout, spec.Binary, args...)
	if err != nil {
		if errors.Is(err, ErrTimeout) {
			log.Errorw("Ferramenta excedeu o tempo limite", "tool", spec.Name, "file", filePath, "timeout", timeout)
		} else {
			log.Errorw("Erro ao executar ferramenta", "tool", spec.Name, "file", filePath, "erro", err)
		}
		return nil
	}
	if !slices.Contains(spec.OKExitCodes, res.ExitCode) {
		log.Warnw("Ferramenta terminou com falha", "tool", spec.Name, "file", filePath,
			"exit", res.ExitCode, "stderr", string(res.Stderr))
		return nil
	}

	switch spec.Output {
	case Both:
		out := append(slices.Clone(res.Stdout), '\n')
		return append(out, res.Stderr...)
	default:
		return res.Stdout
	}
}

func orNop(log *zap.SugaredLogger) *zap.SugaredLogger {
	if log == nil {
		return zap.NewNop().Sugar()
	}
	return log
}
