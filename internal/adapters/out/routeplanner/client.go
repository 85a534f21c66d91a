// Package routeplanner calls the tour optimization service (Google Route Optimization
// REST shape) to turn awaiting orders into vehicle routes.
package routeplanner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/routing"
	"fulfillment/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"
)

const (
	PlanningHorizon  = 30 * 24 * time.Hour
	CostPerHour      = 50.0
	CostPerKilometer = 5.0

	maxResponseBytes = 16 << 20
)

// Client implements ports.RoutePlanner. Transient failures (transport errors, 429, 5xx)
// are retried with exponential backoff until the caller's context expires.
type Client struct {
	endpoint   string
	httpClient *http.Client
	backoff    func() backoff.BackOff
	now        func() time.Time
	logger     *slog.Logger
}

// NewClient builds a planner client for {baseURL}/v1/projects/{projectID}:optimizeTours.
// A non-empty accessToken is sent as a bearer token.
func NewClient(baseURL, projectID, accessToken string, logger *slog.Logger) *Client {
	httpClient := &http.Client{}
	if accessToken != "" {
		httpClient = oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: accessToken,
			TokenType:   "Bearer",
		}))
	}

	return &Client{
		endpoint:   strings.TrimRight(baseURL, "/") + "/v1/projects/" + url.PathEscape(projectID) + ":optimizeTours",
		httpClient: httpClient,
		backoff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			b.MaxInterval = 2 * time.Second
			b.MaxElapsedTime = 0
			return b
		},
		now:    time.Now,
		logger: logger.With("component", "route_planner"),
	}
}

// Plan returns one route per used vehicle. Every failure matches errs.ErrRouteUnavailable.
func (c *Client) Plan(ctx context.Context, depot kernel.GeoLocation, stops []routing.Stop) ([]routing.Route, error) {
	if len(stops) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(c.buildRequest(depot, stops))
	if err != nil {
		return nil, errs.NewRouteUnavailableError(err)
	}

	var response []byte
	operation := func() error {
		response, err = c.post(ctx, body)
		return err
	}
	notify := func(err error, wait time.Duration) {
		c.logger.WarnContext(ctx, "route planner call failed, retrying", "error", err, "wait", wait)
	}

	if err = backoff.RetryNotify(operation, backoff.WithContext(c.backoff(), ctx), notify); err != nil {
		return nil, errs.NewRouteUnavailableError(err)
	}

	routes, err := c.parseResponse(ctx, response)
	if err != nil {
		return nil, errs.NewRouteUnavailableError(err)
	}
	return routes, nil
}

func (c *Client) post(ctx context.Context, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("optimizeTours: status %d", resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, backoff.Permanent(fmt.Errorf("optimizeTours: status %d: %s",
			resp.StatusCode, strings.TrimSpace(gjson.GetBytes(payload, "error.message").String())))
	}

	return payload, nil
}

func (c *Client) parseResponse(ctx context.Context, payload []byte) ([]routing.Route, error) {
	if !gjson.ValidBytes(payload) {
		return nil, fmt.Errorf("optimizeTours: malformed response")
	}

	var routes []routing.Route
	for _, r := range gjson.GetBytes(payload, "routes").Array() {
		labels := r.Get("visits.#.shipmentLabel").Array()
		if len(labels) == 0 {
			continue
		}

		ids := make([]kernel.UUID, 0, len(labels))
		for _, label := range labels {
			id, err := kernel.UUIDFromString(label.String())
			if err != nil {
				c.logger.WarnContext(ctx, "ignoring visit with unparsable label", "label", label.String())
				continue
			}
			ids = append(ids, id)
		}
		if len(ids) == 0 {
			continue
		}

		route, err := routing.NewRoute(ids, r.Get("routePolyline.points").String())
		if err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}

	return routes, nil
}
