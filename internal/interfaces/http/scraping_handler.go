package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/scoreking-api/internal/application/scraping"
)

// ScrapingHandler dispara los scripts externos de scraping.
type ScrapingHandler struct {
	uc   *scraping.ScrapingUseCase
	errs *ErrorMapper
}

// NewScrapingHandler construye el handler.
func NewScrapingHandler(uc *scraping.ScrapingUseCase, errs *ErrorMapper) *ScrapingHandler {
	return &ScrapingHandler{uc: uc, errs: errs}
}

// RunMatches godoc
// @Summary      Ejecutar scraping de partidos
// @Tags         scraping
// @Produce      json
// @Success      200  {object}  dto.ScrapingResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/scraping/run [post]
func (h *ScrapingHandler) RunMatches(c *fiber.Ctx) error {
	out, err := h.uc.RunMatches(c.UserContext())
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(out)
}

// RunLeagues godoc
// @Summary      Ejecutar scraping de ligas
// @Tags         scraping
// @Produce      json
// @Success      200  {object}  dto.ScrapingResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/scraping/run-ligas [post]
func (h *ScrapingHandler) RunLeagues(c *fiber.Ctx) error {
	out, err := h.uc.RunLeagues(c.UserContext())
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(out)
}
