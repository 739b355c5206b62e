// Package module wires vessels into the API using modkit
package module

import (
	"net/http"

	modkit "vesselq/internal/modkit"
	"vesselq/internal/modkit/httpkit"
	str "vesselq/internal/platform/strings"
	"vesselq/internal/services/vessels/domain"
	vhttp "vesselq/internal/services/vessels/http"
	"vesselq/internal/services/vessels/repo"
	"vesselq/internal/services/vessels/service"
)

// Module implements the vessels module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws      []func(http.Handler) http.Handler
	ports    domain.Ports
	register func(httpkit.Router)

	svc *service.Service
}

// New constructs the vessels module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("vessels"), modkit.WithPrefix("/vessels")}, opts...)...)

	cfg := FromConfig(deps.Cfg)
	svc := service.New(deps.DB, repo.New(), cfg)

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    svc,
		ports:  domain.Ports{Resolver: svc, Catalog: svc, Tracks: svc},
	}

	external := b.Register
	limit := cfg.PrefixLimit
	if limit <= 0 {
		limit = service.DefaultPrefixLimit
	}
	m.register = func(r httpkit.Router) {
		vhttp.Register(r, m.svc, limit)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.Prefix(), m.mws, m.register)
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports returns domain.Ports
func (m *Module) Ports() any { return m.ports }

// Service exposes the concrete service to sibling packages such as the importer
func (m *Module) Service() *service.Service { return m.svc }
