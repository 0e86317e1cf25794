package ports

import "context"

// ScriptResult salida de un proceso externo.
type ScriptResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// ScriptRunner ejecuta un script externo y espera a que termine.
// Un código de salida distinto de cero no es un error de Run.
type ScriptRunner interface {
	Run(ctx context.Context, scriptPath string) (*ScriptResult, error)
}
