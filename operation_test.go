package soapserver

import (
	"context"
	"testing"
)

func noopHandler(ctx context.Context, args map[string]any) (any, error) {
	return nil, nil
}

func TestOperationBuilder(t *testing.T) {
	op := NewOperation(noopHandler).
		Param("id", Simple(Integer)).
		OptionalParam("verbose", Simple(Boolean)).
		ParamOccurs("tag", Simple(String), 0, Unbounded).
		Returns(Record("UserRecord")).
		Doc("Fetches a user.")

	spec := op.Spec()
	if len(spec.Params) != 3 {
		t.Fatalf("params = %+v", spec.Params)
	}
	if !spec.Params[0].Required() {
		t.Error("id should be required")
	}
	if spec.Params[1].Required() {
		t.Error("verbose should be optional")
	}
	if spec.Params[2].MaxOccurs != Unbounded {
		t.Errorf("tag maxOccurs = %d", spec.Params[2].MaxOccurs)
	}
	if spec.Returns != Record("UserRecord") {
		t.Errorf("returns = %v", spec.Returns)
	}
	if spec.Doc != "Fetches a user." {
		t.Errorf("doc = %q", spec.Doc)
	}
}

func TestOperation_DefaultReturnIsVoid(t *testing.T) {
	if got := NewOperation(noopHandler).Spec().Returns; !got.IsVoid() {
		t.Errorf("default return = %v, want void", got)
	}
}

func TestParameterSpec_OccursAttrs(t *testing.T) {
	tests := []struct {
		p       ParameterSpec
		wantMin string
		wantMax string
	}{
		{ParameterSpec{MinOccurs: 1, MaxOccurs: 1}, "1", "1"},
		{ParameterSpec{MinOccurs: 0, MaxOccurs: 3}, "0", "3"},
		{ParameterSpec{MinOccurs: 0, MaxOccurs: Unbounded}, "0", "unbounded"},
	}
	for _, tt := range tests {
		if got := tt.p.MinOccursAttr(); got != tt.wantMin {
			t.Errorf("min = %q, want %q", got, tt.wantMin)
		}
		if got := tt.p.MaxOccursAttr(); got != tt.wantMax {
			t.Errorf("max = %q, want %q", got, tt.wantMax)
		}
	}
}

func TestOperationSpec_Signature(t *testing.T) {
	tests := []struct {
		name string
		op   *Operation
		want string
	}{
		{
			name: "no parameters",
			op:   NewOperation(noopHandler),
			want: "ping()",
		},
		{
			name: "mixed types",
			op: NewOperation(noopHandler).
				Param("a", Simple(Integer)).
				Param("tags", ArrayOf(Simple(String))),
			want: "ping(a: int, tags: string[])",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := tt.op.Spec()
			spec.Name = "ping"
			if got := spec.Signature(); got != tt.want {
				t.Errorf("signature = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOperation_Metadata(t *testing.T) {
	s := NewServer("X", "urn:x")
	op := NewOperation(noopHandler).
		Param("a", Simple(Integer)).
		Returns(ArrayOf(Simple(String))).
		Doc("Lists things.")
	s.Register("list", op)

	md := op.Metadata()
	if md.Name != "list" {
		t.Errorf("name = %q", md.Name)
	}
	if md.Returns != "string[]" {
		t.Errorf("returns = %q", md.Returns)
	}
	if len(md.Params) != 1 || md.Params[0].Type != "int" {
		t.Errorf("params = %+v", md.Params)
	}
}
