package soapserver

import "github.com/byjg/go-soap-server/internal/meta"

// ExportedOperation contains metadata about a registered operation for
// tooling and code generation.
type ExportedOperation struct {
	Name    string
	Doc     string
	Params  []meta.ParameterMetadata
	Returns string
}

// ExportOperations returns all registered operations in registration
// order, for tooling purposes.
func (s *Server) ExportOperations() []ExportedOperation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exported := make([]ExportedOperation, 0, len(s.opOrder))
	for _, name := range s.opOrder {
		m := s.ops[name].Metadata()
		exported = append(exported, ExportedOperation{
			Name:    m.Name,
			Doc:     m.Doc,
			Params:  m.Params,
			Returns: m.Returns,
		})
	}
	return exported
}
