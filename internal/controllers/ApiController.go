package controllers

import (
	"bytes"
	"chatstat/internal/charts"
	"chatstat/internal/models"
	"chatstat/internal/providers"
	"chatstat/internal/services"
	"errors"
	"net/http"
	"strconv"

	json "github.com/goccy/go-json"
)

const (
	contentTypeJSON = "application/json"
	contentTypeHTML = "text/html; charset=utf-8"
)

type ApiController struct {
	logger   providers.Logger
	service  services.AnalysisServiceInterface
	renderer charts.RendererInterface
	cache    providers.CacheProviderInterface
}

func NewApiController(logger providers.Logger, service services.AnalysisServiceInterface, renderer charts.RendererInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:   logger,
		service:  service,
		renderer: renderer,
		cache:    cache,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	gson, _ := json.Marshal(errorResponse{Error: msg})
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func (ac *ApiController) writeQueryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNoDataForPeriod), errors.Is(err, charts.ErrEmptyChart):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		ac.logger.Errorf(providers.TypeQuery, "Query failed: %s", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

// generationKey prefixes key with the load time of the current table, so
// entries computed from a replaced table are never served again.
func (ac *ApiController) generationKey(key string) string {
	return strconv.FormatInt(ac.service.LoadedAt().UnixNano(), 10) + "|" + key
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, key, contentType string, compute func() ([]byte, error)) {
	cacheKey := ac.generationKey(key)
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	data, err := compute()
	if err != nil {
		ac.writeQueryError(w, err)
		return
	}

	ac.cache.Set(cacheKey, data)

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func marshal(v any, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

func parsePeriod(r *http.Request, withMonth bool) (models.Period, bool) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year <= 0 {
		return models.Period{}, false
	}
	if !withMonth {
		return models.YearPeriod(year), true
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		return models.Period{}, false
	}
	return models.MonthPeriod(year, month), true
}

func (ac *ApiController) matrix(p models.Period) (*models.Matrix, error) {
	if p.IsMonth() {
		return ac.service.Month(p.Year, p.Month)
	}
	return ac.service.Year(p.Year)
}

func (ac *ApiController) GetPeriods(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "periods", contentTypeJSON, func() ([]byte, error) {
		return json.Marshal(ac.service.Periods())
	})
}

func (ac *ApiController) GetMonth(w http.ResponseWriter, r *http.Request) {
	p, ok := parsePeriod(r, true)
	if !ok {
		writeError(w, http.StatusBadRequest, "year and month (1-12) are required")
		return
	}
	ac.serveFromCacheOrCompute(w, "month:"+p.String(), contentTypeJSON, func() ([]byte, error) {
		return marshal(ac.matrix(p))
	})
}

func (ac *ApiController) GetYear(w http.ResponseWriter, r *http.Request) {
	p, ok := parsePeriod(r, false)
	if !ok {
		writeError(w, http.StatusBadRequest, "year is required")
		return
	}
	ac.serveFromCacheOrCompute(w, "year:"+p.String(), contentTypeJSON, func() ([]byte, error) {
		return marshal(ac.matrix(p))
	})
}

func (ac *ApiController) chart(w http.ResponseWriter, r *http.Request, withMonth bool) {
	p, ok := parsePeriod(r, withMonth)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid period")
		return
	}
	ac.serveFromCacheOrCompute(w, "chart:"+p.String(), contentTypeHTML, func() ([]byte, error) {
		m, err := ac.matrix(p)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := ac.renderer.Render(m, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
}

func (ac *ApiController) GetMonthChart(w http.ResponseWriter, r *http.Request) {
	ac.chart(w, r, true)
}

func (ac *ApiController) GetYearChart(w http.ResponseWriter, r *http.Request) {
	ac.chart(w, r, false)
}
