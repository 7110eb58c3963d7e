// Package docs Pudu Field Gateway API.
//
// Local gateway for the Reciclaje Pudu map page. Holds the client-side
// state of the waste collection points (collection, filter, view mode,
// edit session, notifications) and synchronizes it against the remote
// /api/puntos/ REST resource.
//
// Main capabilities:
// - Full view-state snapshot for the page to render from
// - Marker and table projections of the point collection
// - Edit session lifecycle: create, edit, confirmed delete
// - Device position reports and map bootstrap config
//
//	Schemes: http
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
