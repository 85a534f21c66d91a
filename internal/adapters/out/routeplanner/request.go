package routeplanner

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/routing"
)

type optimizeToursRequest struct {
	Model                       shipmentModel `json:"model"`
	PopulatePolylines           bool          `json:"populatePolylines"`
	PopulateTransitionPolylines bool          `json:"populateTransitionPolylines"`
}

type shipmentModel struct {
	GlobalStartTime string         `json:"globalStartTime"`
	GlobalEndTime   string         `json:"globalEndTime"`
	Shipments       []shipment     `json:"shipments"`
	Vehicles        []vehicleModel `json:"vehicles"`
}

type shipment struct {
	Deliveries []visitRequest `json:"deliveries"`
	Label      string         `json:"label"`
}

type visitRequest struct {
	ArrivalWaypoint waypoint `json:"arrivalWaypoint"`
}

type waypoint struct {
	Location location `json:"location"`
}

type location struct {
	LatLng latLng `json:"latLng"`
}

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type vehicleModel struct {
	StartLocation    latLng  `json:"startLocation"`
	EndLocation      latLng  `json:"endLocation"`
	CostPerHour      float64 `json:"costPerHour"`
	CostPerKilometer float64 `json:"costPerKilometer"`
}

// buildRequest models one vehicle that starts and ends at the depot. Each stop becomes a
// shipment labelled with its order id so visits can be matched back by label.
func (c *Client) buildRequest(depot kernel.GeoLocation, stops []routing.Stop) optimizeToursRequest {
	start := c.now().UTC().Truncate(time.Second)
	home := latLng{Latitude: depot.Latitude(), Longitude: depot.Longitude()}

	shipments := make([]shipment, 0, len(stops))
	for _, stop := range stops {
		shipments = append(shipments, shipment{
			Deliveries: []visitRequest{{
				ArrivalWaypoint: waypoint{Location: location{LatLng: latLng{
					Latitude:  stop.Location.Latitude(),
					Longitude: stop.Location.Longitude(),
				}}},
			}},
			Label: stop.OrderID.String(),
		})
	}

	return optimizeToursRequest{
		Model: shipmentModel{
			GlobalStartTime: start.Format(time.RFC3339),
			GlobalEndTime:   start.Add(PlanningHorizon).Format(time.RFC3339),
			Shipments:       shipments,
			Vehicles: []vehicleModel{{
				StartLocation:    home,
				EndLocation:      home,
				CostPerHour:      CostPerHour,
				CostPerKilometer: CostPerKilometer,
			}},
		},
		PopulatePolylines:           true,
		PopulateTransitionPolylines: true,
	}
}
