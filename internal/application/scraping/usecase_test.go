package scraping_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/scoreking-api/internal/application/ports"
	"github.com/jhoicas/scoreking-api/internal/application/scraping"
)

type fakeRunner struct {
	res  *ports.ScriptResult
	err  error
	path string
	dl   bool
}

func (f *fakeRunner) Run(ctx context.Context, path string) (*ports.ScriptResult, error) {
	f.path = path
	_, f.dl = ctx.Deadline()
	return f.res, f.err
}

func cfg() scraping.Config {
	return scraping.Config{MatchesPath: "/opt/scripts/matches.py", LeaguesPath: "/opt/scripts/leagues.py", Timeout: time.Second}
}

func TestRunMatches(t *testing.T) {
	r := &fakeRunner{res: &ports.ScriptResult{Stdout: `{"ok":true}`}}
	uc := scraping.NewScrapingUseCase(r, cfg())

	res, err := uc.RunMatches(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/opt/scripts/matches.py", r.path)
	assert.True(t, r.dl)
	assert.Equal(t, map[string]any{"ok": true}, res.Data)
	assert.Equal(t, "Scraping ejecutado correctamente", res.Message)
}

func TestRunLeagues_DevuelveSalidaCruda(t *testing.T) {
	r := &fakeRunner{res: &ports.ScriptResult{Stdout: "Liga: X\n"}}
	uc := scraping.NewScrapingUseCase(r, cfg())

	res, err := uc.RunLeagues(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/opt/scripts/leagues.py", r.path)
	assert.Equal(t, "Liga: X\n", res.Output)
	assert.Nil(t, res.Data)
}

func TestRun_Errores(t *testing.T) {
	t.Run("sin configurar", func(t *testing.T) {
		uc := scraping.NewScrapingUseCase(&fakeRunner{}, scraping.Config{})
		_, err := uc.RunMatches(context.Background())
		assert.ErrorIs(t, err, scraping.ErrScriptNotConfigured)
	})
	t.Run("código de salida", func(t *testing.T) {
		uc := scraping.NewScrapingUseCase(&fakeRunner{res: &ports.ScriptResult{ExitCode: 2, Stderr: "boom"}}, cfg())
		_, err := uc.RunMatches(context.Background())
		var se *scraping.ScriptError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, 2, se.Code)
		assert.Equal(t, "boom", se.Stderr)
	})
	t.Run("no arranca", func(t *testing.T) {
		cause := errors.New("python: not found")
		uc := scraping.NewScrapingUseCase(&fakeRunner{err: cause}, cfg())
		_, err := uc.RunLeagues(context.Background())
		assert.ErrorIs(t, err, cause)
	})
}
