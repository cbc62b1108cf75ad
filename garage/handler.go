package garage

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/km-arc/go-eustace/framework/config"
	"github.com/km-arc/go-eustace/framework/container"
	gohttp "github.com/km-arc/go-eustace/framework/http"
	"github.com/km-arc/go-eustace/framework/http/validation"
	"github.com/km-arc/go-eustace/framework/observability"
	"github.com/km-arc/go-eustace/framework/routing"
)

const (
	powerRule     = "required|in:standard,sports,supersports"
	optionalsRule = "nullable|in:standard,medium,luxury"
	serialRule    = "nullable|alpha_dash|max:64"
)

// CarView is the JSON rendering of a built car.
type CarView struct {
	ID            uuid.UUID `json:"id"`
	ChassisSerial string    `json:"chassis_serial"`
	PowerHP       float64   `json:"power_hp"`
	Wheels        string    `json:"wheels"`
	GearBox       string    `json:"gearbox"`
	Seats         string    `json:"seats"`
	SteeringWheel string    `json:"steering_wheel"`
}

// NewCarView renders car.
func NewCarView(car *Car) CarView {
	return CarView{
		ID:            car.ID,
		ChassisSerial: car.Chassis.SerialNumber,
		PowerHP:       car.Engine.PowerHP(),
		Wheels:        car.Wheels.Size(),
		GearBox:       car.GearBox.Kind(),
		Seats:         car.Interiors.Seats().Description(),
		SteeringWheel: car.Interiors.SteeringWheel().Material(),
	}
}

// Handler serves car builds over HTTP. Every request gets its own container
// from newContainer, because Setup replaces the recipes of the one it is
// given.
type Handler struct {
	newContainer func() *container.Container
	defaults     Spec
	logger       *slog.Logger
}

// NewHandler returns a Handler building from defaults when a request leaves
// fields out.
func NewHandler(newContainer func() *container.Container, defaults Spec, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = observability.Discard()
	}
	return &Handler{newContainer: newContainer, defaults: defaults, logger: logger}
}

// Routes mounts the garage endpoints on r.
func (h *Handler) Routes(r *routing.Router) {
	r.Get("/healthz", h.Health)
	r.Get("/cars/{power}", h.Show)
	r.Post("/cars", h.Store)
	r.Get("/chassis/{serial}", h.Chassis)
}

// Health answers GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	gohttp.NewResponse(w).Success(map[string]string{"status": "ok"})
}

// Show answers GET /cars/{power}?optionals=&serial= with a freshly built car.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	req, res := gohttp.NewRequest(r), gohttp.NewResponse(w)

	input := map[string]string{
		"power":          req.RouteParam("power"),
		"optionals":      req.Query("optionals"),
		"chassis_serial": req.Query("serial"),
	}
	spec, ok := h.specFrom(res, input)
	if !ok {
		return
	}
	h.build(r, res, spec, http.StatusOK)
}

type orderRequest struct {
	Power         string `json:"power"`
	Optionals     string `json:"optionals"`
	ChassisSerial string `json:"chassis_serial"`
}

// Store answers POST /cars with a JSON body naming power, optionals and an
// optional chassis serial.
func (h *Handler) Store(w http.ResponseWriter, r *http.Request) {
	req, res := gohttp.NewRequest(r), gohttp.NewResponse(w)

	var body orderRequest
	if err := req.Bind(&body); err != nil {
		res.Error(http.StatusBadRequest, err.Error())
		return
	}
	spec, ok := h.specFrom(res, map[string]string{
		"power":          body.Power,
		"optionals":      body.Optionals,
		"chassis_serial": body.ChassisSerial,
	})
	if !ok {
		return
	}
	h.build(r, res, spec, http.StatusCreated)
}

// Chassis answers GET /chassis/{serial} with an unmounted chassis built by
// the serial-parameterized recipe.
func (h *Handler) Chassis(w http.ResponseWriter, r *http.Request) {
	req, res := gohttp.NewRequest(r), gohttp.NewResponse(w)

	serial := req.RouteParam("serial")
	v := validation.Make(map[string]string{"serial": serial}, validation.Rules{"serial": "required|alpha_dash|max:64"})
	if v.Fails() {
		res.ValidationError(v.Errors())
		return
	}

	c := h.newContainer()
	Setup(c, h.defaults)
	chassis, ok, err := container.ResolveWithContext[*Chassis](r.Context(), c, serial)
	if err != nil {
		h.logger.Error("chassis lookup failed", slog.String("serial", serial), slog.Any("error", err))
		res.ServerError(err.Error())
		return
	}
	if !ok {
		res.NotFound("No chassis recipe.")
		return
	}
	res.Success(map[string]any{
		"serial_number": chassis.SerialNumber,
		"mounted":       chassis.Car() != nil,
	})
}

// specFrom validates input and fills in defaults. On failure it has already
// written the 422 reply.
func (h *Handler) specFrom(res *gohttp.Response, input map[string]string) (Spec, bool) {
	v := validation.Make(input, validation.Rules{
		"power":          powerRule,
		"optionals":      optionalsRule,
		"chassis_serial": serialRule,
	})
	if v.Fails() {
		res.ValidationError(v.Errors())
		return Spec{}, false
	}

	spec := h.defaults
	// Validated above, so parsing cannot fail.
	spec.Power, _ = ParsePower(input["power"])
	if o := input["optionals"]; o != "" {
		spec.Optionals, _ = ParseOptionals(o)
	}
	if s := input["chassis_serial"]; s != "" {
		spec.ChassisSerial = s
	}
	return spec, true
}

func (h *Handler) build(r *http.Request, res *gohttp.Response, spec Spec, status int) {
	car, err := Assemble(r.Context(), h.newContainer(), spec)
	if err != nil {
		h.logger.Error("car build failed", slog.String("power", spec.Power.String()), slog.Any("error", err))
		res.ServerError(err.Error())
		return
	}
	h.logger.Info("car built",
		slog.String("id", car.ID.String()),
		slog.String("power", spec.Power.String()),
		slog.String("optionals", spec.Optionals.String()),
	)
	if status == http.StatusCreated {
		res.Created(NewCarView(car))
		return
	}
	res.Success(NewCarView(car))
}

// HTTPProvider binds a *Handler whose defaults come from the bound
// *config.Config.
type HTTPProvider struct {
	container.BaseProvider
	NewContainer func() *container.Container
}

func (p *HTTPProvider) Register(c *container.Container) {
	newContainer := p.NewContainer
	container.Register(c, func(r container.Resolver) (*Handler, error) {
		cfg, err := need[*config.Config](r)
		if err != nil {
			return nil, err
		}
		defaults, err := SpecFromConfig(cfg.Garage)
		if err != nil {
			return nil, err
		}
		logger, _, err := container.Resolve[*slog.Logger](r)
		if err != nil && !errors.Is(err, container.ErrUnregisteredService) {
			return nil, err
		}
		return NewHandler(newContainer, defaults, logger), nil
	})
}
