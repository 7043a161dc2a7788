package http

import (
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "x13adjust/internal/errors"
	"x13adjust/internal/infrastructure"
	"x13adjust/internal/series"
	"x13adjust/internal/x13"
)

const dateLayout = "2006-01-02"

// AdjustHandler serves seasonal adjustment requests.
type AdjustHandler struct {
	cfg      x13.Config
	validate *validator.Validate
	logger   *slog.Logger
}

// NewAdjustHandler creates a new adjustment handler using cfg as the
// base engine configuration.
func NewAdjustHandler(cfg x13.Config, logger *slog.Logger) *AdjustHandler {
	return &AdjustHandler{
		cfg:      cfg,
		validate: validator.New(),
		logger:   logger.With(slog.String("handler", "adjust")),
	}
}

// Routes returns the adjustment routes.
func (h *AdjustHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Post("/", h.Adjust)
	return r
}

// Observation is one dated value on the wire. A null value marks a
// missing observation.
type Observation struct {
	Date  string   `json:"date" validate:"required"`
	Value *float64 `json:"value"`
}

// AdjustRequest is the body of POST /api/adjust.
type AdjustRequest struct {
	SeriesID     string        `json:"series_id"`
	Observations []Observation `json:"observations" validate:"required,min=1,dive"`

	// Optional per-request overrides of the engine defaults.
	SpanYears       *int    `json:"span_years,omitempty" validate:"omitempty,min=1"`
	MinObservations *int    `json:"min_observations,omitempty" validate:"omitempty,min=1"`
	Transform       *string `json:"transform,omitempty" validate:"omitempty,oneof=auto log none"`
	Interventions   *string `json:"interventions,omitempty"`
}

// Bind implements render.Binder.
func (req *AdjustRequest) Bind(r *http.Request) error {
	return nil
}

// AdjustResponse is the body returned for an adjustment request.
type AdjustResponse struct {
	SeriesID     string        `json:"series_id"`
	Adjusted     bool          `json:"adjusted"`
	Reason       string        `json:"reason,omitempty"`
	Observations []Observation `json:"observations"`
}

// Adjust handles POST /api/adjust.
func (h *AdjustHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := &AdjustRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, apierrors.InvalidRequestWithError(err).WithTrace(infrastructure.GetTraceID(ctx)))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		render.Render(w, r, validationError(err).WithTrace(infrastructure.GetTraceID(ctx)))
		return
	}

	input, err := toSeries(req)
	if err != nil {
		render.Render(w, r, apierrors.InvalidRequestWithError(err).WithTrace(infrastructure.GetTraceID(ctx)))
		return
	}

	outcome := x13.Adjust(ctx, input, req.SeriesID, h.engineConfig(req))

	h.logger.InfoContext(ctx, "Adjustment request served",
		slog.String("series_id", req.SeriesID),
		slog.Int("observations", input.Len()),
		slog.Bool("adjusted", outcome.Adjusted),
		slog.String("reason", string(outcome.Reason)))

	render.JSON(w, r, &AdjustResponse{
		SeriesID:     req.SeriesID,
		Adjusted:     outcome.Adjusted,
		Reason:       string(outcome.Reason),
		Observations: fromSeries(outcome.Series),
	})
}

// engineConfig applies per-request overrides onto the base config.
func (h *AdjustHandler) engineConfig(req *AdjustRequest) x13.Config {
	cfg := h.cfg
	if req.SpanYears != nil {
		cfg.SpanYears = *req.SpanYears
	}
	if req.MinObservations != nil {
		cfg.MinObservations = *req.MinObservations
	}
	if req.Transform != nil {
		cfg.Transform = x13.Transform(*req.Transform)
	}
	if req.Interventions != nil {
		cfg.Interventions = *req.Interventions
	}
	return cfg
}

func toSeries(req *AdjustRequest) (*series.Series, error) {
	s := series.New(req.SeriesID, len(req.Observations))
	for _, obs := range req.Observations {
		date, err := time.Parse(dateLayout, obs.Date)
		if err != nil {
			return nil, err
		}
		value := math.NaN()
		if obs.Value != nil {
			value = *obs.Value
		}
		s.Append(date, value)
	}
	return s, nil
}

func fromSeries(s *series.Series) []Observation {
	out := make([]Observation, 0, s.Len())
	for i, d := range s.Dates {
		obs := Observation{Date: d.Format(dateLayout)}
		if !math.IsNaN(s.Values[i]) {
			v := s.Values[i]
			obs.Value = &v
		}
		out = append(out, obs)
	}
	return out
}

func validationError(err error) *apierrors.APIError {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apierrors.InvalidRequestWithError(err)
	}
	fields := make([]apierrors.ValidationError, 0, len(verrs))
	for _, ve := range verrs {
		fields = append(fields, apierrors.ValidationError{
			Field:   ve.Field(),
			Message: ve.Tag(),
		})
	}
	return apierrors.ValidationFailed(fields)
}
