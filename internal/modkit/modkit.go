package modkit

import "vesselq/internal/modkit/module"

// Module is what every service New returns; api.Mount mounts it and reads its
// ports. It aliases module.Module so ports helpers accept it directly
type Module = module.Module
