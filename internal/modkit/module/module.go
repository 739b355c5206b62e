// Package module is the contract every vesselq service module satisfies, plus
// helpers for handing one module's ports to another at composition time
package module

import (
	phttp "vesselq/internal/platform/net/http"
)

// Module is what the api composition root mounts. Ports returns the module's
// exported port set (vessels exports Resolver, Catalog and Tracks) or nil
type Module interface {
	Name() string
	Ports() any
	MountRoutes(r phttp.Router)
}
