package scanner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// ErrTimeout é devolvido quando o processo excede o prazo.
var ErrTimeout = errors.New("tempo limite excedido")

// Result é a saída bruta de um processo que chegou a executar.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner executa um binário externo. Implementações de teste substituem o exec real.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// RunnerFunc adapta uma função para Runner.
type RunnerFunc func(ctx context.Context, name string, args ...string) (Result, error)

func (f RunnerFunc) Run(ctx context.Context, name string, args ...string) (Result, error) {
	return f(ctx, name, args...)
}

// ExecRunner roda processos reais via os/exec.
// O grupo de processos inteiro é morto quando o contexto expira.
type ExecRunner struct {
	// WaitDelay limita a espera por pipes após o kill.
	WaitDelay time.Duration
}

// Run executa name com args. Código de saída diferente de zero não é erro;
// falha ao iniciar (binário ausente) e estouro de prazo são.
func (r ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	setProcGroup(cmd)
	cmd.Cancel = func() error {
		return killProcGroup(cmd)
	}
	cmd.WaitDelay = r.WaitDelay
	if cmd.WaitDelay == 0 {
		cmd.WaitDelay = 2 * time.Second
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}

	if ctx.Err() != nil {
		return Result{}, fmt.Errorf("%s: %w", name, ErrTimeout)
	}
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return Result{}, fmt.Errorf("executar %s: %w", name, runErr)
	}
	return res, nil
}

// RunWithTimeout aplica um prazo próprio à execução.
func RunWithTimeout(ctx context.Context, r Runner, timeout time.Duration, name string, args ...string) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	res, err := r.Run(ctx, name, args...)
	if err == nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return Result{}, fmt.Errorf("%s: %w", name, ErrTimeout)
	}
	return res, err
}
