package mocks

import "slotlink/infras/otel"

type scopeImpl struct {
	name   string
	parent *Otel
}

// AddEvent implements otel.Scope.
func (s *scopeImpl) AddEvent(_ string) {

}

// End implements otel.Scope.
func (s *scopeImpl) End() {

}

// SetAttribute implements otel.Scope.
func (s *scopeImpl) SetAttribute(_ string, _ any) {

}

// SetAttributes implements otel.Scope.
func (s *scopeImpl) SetAttributes(_ map[string]any) {

}

// TraceError implements otel.Scope.
func (s *scopeImpl) TraceError(err error) {
	if err != nil && s.parent != nil {
		s.parent.trace(s.name)
	}
}

// TraceIfError implements otel.Scope.
func (s *scopeImpl) TraceIfError(err error) {
	s.TraceError(err)
}

func NewScope() otel.Scope {
	return &scopeImpl{}
}
