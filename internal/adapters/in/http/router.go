package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"jobmatch/internal/generated/servers"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/cors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// RouterConfig configures the HTTP surface around the API handlers.
type RouterConfig struct {
	// AllowedOrigins lists the browser origins allowed by CORS. Empty disables CORS headers.
	AllowedOrigins []string
	// ValidateRequests checks every API request against the OpenAPI document before
	// it reaches a handler.
	ValidateRequests bool
}

// NewRouter builds the echo instance serving the API, the Swagger UI and /health.
func NewRouter(server servers.ServerInterface, cfg RouterConfig, logger *slog.Logger) (*echo.Echo, error) {
	doc, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	if err := registerSwaggerDoc(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(logger)

	if len(cfg.AllowedOrigins) > 0 {
		c := cors.New(cors.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", HeaderActorRole, HeaderActorID},
		})
		e.Pre(echo.WrapMiddleware(c.Handler))
	}
	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))

	if cfg.ValidateRequests {
		validate, err := requestValidator(doc)
		if err != nil {
			return nil, err
		}
		e.Use(validate)
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	servers.RegisterHandlers(e, server)

	return e, nil
}

// requestValidator rejects API requests that do not match the OpenAPI document.
// Requests outside the document (health, swagger) pass through.
func requestValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}
	options := &openapi3filter.Options{AuthenticationFunc: openapi3filter.NoopAuthenticationFunc}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				return next(c)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, validationMessage(err))
			}
			return next(c)
		}
	}, nil
}

func validationMessage(err error) string {
	switch e := err.(type) {
	case *openapi3filter.RequestError:
		if e.Parameter != nil {
			return fmt.Sprintf("parameter %q: %s", e.Parameter.Name, e.Reason)
		}
		if e.RequestBody != nil {
			return "request body: " + e.Error()
		}
		return e.Error()
	case *routers.RouteError:
		return e.Reason
	default:
		return err.Error()
	}
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	log := logger.With("component", "http")
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				log.WarnContext(c.Request().Context(), "Request", append(attrs, "error", v.Error)...)
				return nil
			}
			log.InfoContext(c.Request().Context(), "Request", attrs...)
			return nil
		},
	})
}

type swaggerDoc string

func (d swaggerDoc) ReadDoc() string { return string(d) }

var registerOnce sync.Once

// registerSwaggerDoc publishes the document to swag so the echo-swagger UI serves it
// as doc.json. swag allows one registration per name per process.
func registerSwaggerDoc(doc *openapi3.T) error {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode openapi document: %w", err)
	}
	registerOnce.Do(func() {
		if swag.GetSwagger(swag.Name) == nil {
			swag.Register(swag.Name, swaggerDoc(raw))
		}
	})
	return nil
}
