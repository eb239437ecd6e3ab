package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/etnz/forecast"
	"github.com/julienschmidt/httprouter"
)

type metricModel struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Group string `json:"group"`
}

type editionModel struct {
	Name      string `json:"name"`
	Published string `json:"published,omitempty"`
}

type horizonModel struct {
	Metric string `json:"metric"`
	First  int    `json:"first"`
	Last   int    `json:"last"`
}

type editionDetailModel struct {
	editionModel
	Metrics []horizonModel `json:"metrics"`
}

type seriesModel struct {
	Edition string           `json:"edition"`
	Metric  string           `json:"metric"`
	Title   string           `json:"title"`
	Points  []forecast.Point `json:"points"`
}

type valueModel struct {
	Edition string  `json:"edition"`
	Metric  string  `json:"metric"`
	Year    int     `json:"year"`
	Value   float64 `json:"value"`
}

type comparisonModel struct {
	Metric     string         `json:"metric"`
	Base       string         `json:"base"`
	Comparison string         `json:"comparison"`
	Rows       []forecast.Row `json:"rows"`
}

func newEditionModel(e forecast.Edition) editionModel {
	return editionModel{Name: e.Name(), Published: e.Published().String()}
}

func (s *Server) metricsHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	list := []metricModel{}
	for _, m := range forecast.Metrics() {
		list = append(list, metricModel{Name: m.String(), Title: m.Title(), Group: m.Group()})
	}
	s.sendResponse(w, r, list)
}

func (s *Server) editionsHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	editions, err := s.store.Editions()
	if err != nil {
		s.failure(w, r, err)
		return
	}
	list := []editionModel{}
	for _, e := range editions {
		list = append(list, newEditionModel(e))
	}
	s.sendResponse(w, r, list)
}

func (s *Server) editionHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	f, err := s.open(ps.ByName("edition"))
	if err != nil {
		s.failure(w, r, err)
		return
	}
	detail := editionDetailModel{editionModel: newEditionModel(f.Edition()), Metrics: []horizonModel{}}
	for _, m := range f.AvailableMetrics() {
		first, last, _ := f.Horizon(m)
		detail.Metrics = append(detail.Metrics, horizonModel{Metric: m.String(), First: first, Last: last})
	}
	s.sendResponse(w, r, detail)
}

func (s *Server) seriesHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	m, err := forecast.ParseMetric(ps.ByName("metric"))
	if err != nil {
		s.failure(w, r, err)
		return
	}
	years, err := queryYears(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	f, err := s.open(ps.ByName("edition"))
	if err != nil {
		s.failure(w, r, err)
		return
	}
	series, err := f.Series(m, years...)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.sendResponse(w, r, seriesModel{
		Edition: series.Edition.Name(),
		Metric:  m.String(),
		Title:   m.Title(),
		Points:  series.Points,
	})
}

func (s *Server) valueHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	m, err := forecast.ParseMetric(ps.ByName("metric"))
	if err != nil {
		s.failure(w, r, err)
		return
	}
	year, err := strconv.Atoi(ps.ByName("year"))
	if err != nil {
		s.failure(w, r, &badRequestError{fmt.Errorf("invalid year %q", ps.ByName("year"))})
		return
	}
	f, err := s.open(ps.ByName("edition"))
	if err != nil {
		s.failure(w, r, err)
		return
	}
	v, err := f.Get(m, year)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.sendResponse(w, r, valueModel{Edition: f.Edition().Name(), Metric: m.String(), Year: year, Value: v})
}

func (s *Server) compareHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	m, err := forecast.ParseMetric(ps.ByName("metric"))
	if err != nil {
		s.failure(w, r, err)
		return
	}
	years, err := queryYears(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	base, err := s.open(ps.ByName("base"))
	if err != nil {
		s.failure(w, r, err)
		return
	}
	comparison, err := s.open(ps.ByName("comparison"))
	if err != nil {
		s.failure(w, r, err)
		return
	}
	c, err := comparison.CompareTo(base, m, years...)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	rows := c.Rows
	if rows == nil {
		rows = []forecast.Row{}
	}
	s.sendResponse(w, r, comparisonModel{
		Metric:     m.String(),
		Base:       c.Base.Name(),
		Comparison: c.Comparison.Name(),
		Rows:       rows,
	})
}

// queryYears parses the optional years query parameter.
func queryYears(r *http.Request) ([]int, error) {
	years, err := forecast.ParseYears(r.URL.Query().Get("years"))
	if err != nil {
		return nil, &badRequestError{err}
	}
	return years, nil
}
