package http

import (
	"errors"
	"net/http"
	"strings"

	"fulfillment/internal/adapters/in/auth"
	"fulfillment/internal/generated/servers"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
)

const (
	apiPrefix   = "/api/"
	adminPrefix = "/api/v1/admin/"

	identityContextKey = "fulfillment.identity"
)

type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// Authenticate requires a valid bearer token on every API route and an admin role on the
// admin routes. Other routes pass through.
func Authenticate(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			path := ctx.Request().URL.Path
			if !strings.HasPrefix(path, apiPrefix) {
				return next(ctx)
			}

			identity, err := verifier.Verify(ctx.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, servers.Error{
					Code:    http.StatusUnauthorized,
					Message: "Authentication required",
				})
			}

			if strings.HasPrefix(path, adminPrefix) && !identity.IsAdmin() {
				return ctx.JSON(http.StatusForbidden, servers.Error{
					Code:    http.StatusForbidden,
					Message: "Admin role required",
				})
			}

			ctx.Set(identityContextKey, identity)
			return next(ctx)
		}
	}
}

func identityFrom(ctx echo.Context) auth.Identity {
	identity, _ := ctx.Get(identityContextKey).(auth.Identity)
	return identity
}

// ValidateRequests checks API requests against the OpenAPI document. Routes the document does
// not describe, such as /health and the websocket endpoints, are not validated.
func ValidateRequests(swagger *openapi3.T) (echo.MiddlewareFunc, error) {
	// Requests arrive on whatever host the process is bound to.
	swagger.Servers = nil

	router, err := gorillamux.NewRouter(swagger)
	if err != nil {
		return nil, err
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()

			route, pathParams, err := router.FindRoute(req)
			if errors.Is(err, routers.ErrPathNotFound) {
				return next(ctx)
			}
			if errors.Is(err, routers.ErrMethodNotAllowed) {
				return ctx.JSON(http.StatusMethodNotAllowed, servers.Error{
					Code:    http.StatusMethodNotAllowed,
					Message: "Method not allowed",
				})
			}
			if err != nil {
				return ctx.JSON(http.StatusBadRequest, servers.Error{
					Code:    http.StatusBadRequest,
					Message: err.Error(),
				})
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return ctx.JSON(http.StatusBadRequest, servers.Error{
					Code:    http.StatusBadRequest,
					Message: validationMessage(err),
				})
			}

			return next(ctx)
		}
	}, nil
}

// validationMessage keeps the first line; kin-openapi appends the offending schema below it.
func validationMessage(err error) string {
	message, _, _ := strings.Cut(err.Error(), "\n")
	return message
}
