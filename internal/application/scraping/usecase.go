package scraping

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/scoreking-api/internal/application/dto"
	"github.com/jhoicas/scoreking-api/internal/application/ports"
)

// ErrScriptNotConfigured la ruta del script no está definida en la configuración.
var ErrScriptNotConfigured = errors.New("scraping: script no configurado")

// ScriptError el script terminó con código distinto de cero.
type ScriptError struct {
	Code   int
	Stderr string
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("scraping: el script terminó con código %d", e.Code)
}

// Config rutas de los scripts y límite de ejecución.
type Config struct {
	MatchesPath string
	LeaguesPath string
	Timeout     time.Duration
}

// ScrapingUseCase ejecuta los scripts externos de partidos y ligas.
type ScrapingUseCase struct {
	runner ports.ScriptRunner
	cfg    Config
	now    func() time.Time
}

// NewScrapingUseCase construye el caso de uso.
func NewScrapingUseCase(runner ports.ScriptRunner, cfg Config) *ScrapingUseCase {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	return &ScrapingUseCase{runner: runner, cfg: cfg, now: time.Now}
}

// RunMatches ejecuta el script de partidos y normaliza su salida a JSON.
func (uc *ScrapingUseCase) RunMatches(ctx context.Context) (*dto.ScrapingResponse, error) {
	res, err := uc.run(ctx, uc.cfg.MatchesPath)
	if err != nil {
		return nil, err
	}
	return &dto.ScrapingResponse{
		Message: "Scraping ejecutado correctamente",
		Data:    ParseOutput(res.Stdout, uc.now()),
	}, nil
}

// RunLeagues ejecuta el script de ligas y devuelve la salida sin procesar.
func (uc *ScrapingUseCase) RunLeagues(ctx context.Context) (*dto.ScrapingResponse, error) {
	res, err := uc.run(ctx, uc.cfg.LeaguesPath)
	if err != nil {
		return nil, err
	}
	return &dto.ScrapingResponse{Message: "Scraping ejecutado correctamente", Output: res.Stdout}, nil
}

func (uc *ScrapingUseCase) run(ctx context.Context, path string) (*ports.ScriptResult, error) {
	if path == "" {
		return nil, ErrScriptNotConfigured
	}
	ctx, cancel := context.WithTimeout(ctx, uc.cfg.Timeout)
	defer cancel()

	res, err := uc.runner.Run(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("scraping: ejecutar %s: %w", path, err)
	}
	if res.ExitCode != 0 {
		return nil, &ScriptError{Code: res.ExitCode, Stderr: res.Stderr}
	}
	return res, nil
}

// ParseOutput devuelve el JSON emitido por el script o, si no es JSON, el resultado de
// convertir el formato de texto "Liga:/Logo:/nombre:".
func ParseOutput(output string, now time.Time) any {
	var data any
	if err := json.Unmarshal([]byte(output), &data); err == nil {
		return data
	}
	return map[string][]dto.League{"leagues": ConvertRawOutput(output, now)}
}
