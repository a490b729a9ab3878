package module

import (
	"supercut/internal/services/api/curation/domain"
)

// Ports is what the curation module exports to other modules
type Ports struct {
	Curation domain.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
