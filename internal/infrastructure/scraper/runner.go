// Package scraper ejecuta los scripts de scraping como procesos hijos.
package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/jhoicas/scoreking-api/internal/application/ports"
)

var _ ports.ScriptRunner = (*PythonRunner)(nil)

// PythonRunner lanza `<bin> <script>` con el directorio del script como cwd.
type PythonRunner struct {
	bin string
}

// NewPythonRunner bin suele ser "python" o "python3".
func NewPythonRunner(bin string) *PythonRunner {
	if bin == "" {
		bin = "python"
	}
	return &PythonRunner{bin: bin}
}

// Run espera a que el proceso termine o ctx se cancele (en cuyo caso el proceso se mata).
func (r *PythonRunner) Run(ctx context.Context, scriptPath string) (*ports.ScriptResult, error) {
	cmd := exec.CommandContext(ctx, r.bin, scriptPath)
	cmd.Dir = filepath.Dir(scriptPath)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := &ports.ScriptResult{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return res, nil
	}
	if ctx.Err() != nil {
		return nil, fmt.Errorf("scraper: timeout o cancelación: %w", ctx.Err())
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	return nil, fmt.Errorf("scraper: iniciar %s: %w", r.bin, err)
}
