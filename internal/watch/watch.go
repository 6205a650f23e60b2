package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce agrupa rajadas de escrita de editores.
const DefaultDebounce = 200 * time.Millisecond

// File observa path até ctx terminar e chama fn após cada rajada de eventos de
// escrita ou criação. Observa o diretório pai para cobrir editores que
// substituem o arquivo via rename.
func File(ctx context.Context, path string, debounce time.Duration, log *zap.SugaredLogger, fn func()) error {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolver caminho %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("criar watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("observar %s: %w", filepath.Dir(abs), err)
	}
	log.Infow("Observando alterações", "file", abs)

	var (
		timer   *time.Timer
		trigger <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			log.Debugw("Alteração detectada", "file", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			trigger = timer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Warnw("Erro no watcher", "erro", err)

		case <-trigger:
			trigger = nil
			fn()
		}
	}
}
