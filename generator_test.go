package soapserver

import "testing"

func TestExportOperations(t *testing.T) {
	s := newUserServer()
	exported := s.ExportOperations()
	if len(exported) != 1 {
		t.Fatalf("got %d operations", len(exported))
	}

	op := exported[0]
	if op.Name != "createUser" {
		t.Errorf("name = %q", op.Name)
	}
	if op.Returns != "UserRecord" {
		t.Errorf("returns = %q", op.Returns)
	}
	if len(op.Params) != 1 || op.Params[0].Name != "u" || op.Params[0].Type != "UserRecord" {
		t.Errorf("params = %+v", op.Params)
	}
}

func TestExportOperations_RegistrationOrder(t *testing.T) {
	s := NewServer("X", "urn:x")
	for _, name := range []string{"zeta", "alpha", "mid"} {
		s.Register(name, NewOperation(noopHandler))
	}

	exported := s.ExportOperations()
	want := []string{"zeta", "alpha", "mid"}
	for i, e := range exported {
		if e.Name != want[i] {
			t.Fatalf("order = %v, want %v", exported, want)
		}
	}
}
