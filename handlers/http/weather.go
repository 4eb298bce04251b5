package httpHandler

import (
	"context"
	"errors"
	"net/http"
	"todo-server/services"
	"todo-server/views"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

type WeatherProvider interface {
	Current(ctx context.Context, city string) (*services.WeatherReport, error)
}

type WeatherHandler struct {
	provider WeatherProvider
	log      *log.Logger
}

func NewWeatherHandler(provider WeatherProvider, l *log.Logger) *WeatherHandler {
	return &WeatherHandler{provider: provider, log: l.With("handler", "weather")}
}

// Show handles POST /weather
func (h *WeatherHandler) Show(c *gin.Context) {
	city := c.PostForm("city")
	report, err := h.provider.Current(c.Request.Context(), city)
	switch {
	case errors.Is(err, services.ErrUpstreamStatus):
		h.log.Info("weather lookup rejected", "city", city, "err", err)
		c.Redirect(http.StatusFound, "/")
		return
	case err != nil:
		h.log.Error("weather lookup failed", "city", city, "err", err)
		renderError(c, http.StatusBadGateway, "Weather unavailable", "The weather service could not be reached.")
		return
	}

	c.HTML(http.StatusOK, views.Weather, gin.H{"weatherObject": report})
}
