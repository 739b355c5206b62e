// Package module wires free text queries into the API using modkit
package module

import (
	"net/http"

	modkit "vesselq/internal/modkit"
	"vesselq/internal/modkit/httpkit"
	str "vesselq/internal/platform/strings"
	"vesselq/internal/services/query/domain"
	qhttp "vesselq/internal/services/query/http"
	"vesselq/internal/services/query/service"
)

// Ports declares the upstream ports this module needs injected
type Ports = service.Ports

// Module implements the query module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws      []func(http.Handler) http.Handler
	ports    domain.Ports
	register func(httpkit.Router)

	svc *service.Service
}

// New constructs the query module. Upstream ports come in via modkit.WithPorts(Ports{...})
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("query"), modkit.WithPrefix("/query")}, opts...)...)

	injected, ok := b.Ports.(Ports)
	if !ok {
		panic("query module requires vessels and trajectory ports")
	}
	svc := service.New(injected, FromConfig(deps.Cfg))

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    svc,
		ports:  domain.Ports{Asker: svc},
	}
	external := b.Register
	m.register = func(r httpkit.Router) {
		qhttp.Register(r, m.svc)
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

// Service exposes the concrete service, used by the CLI
func (m *Module) Service() *service.Service { return m.svc }
