package soapserver

// SchemaField is one resolved field of a record complex type.
type SchemaField struct {
	// Name is the field's element name.
	Name string

	// Base is the field's base type name with array markers stripped:
	// a canonical simple name or a record name.
	Base string

	// Dims is the array nesting depth, 0 for scalars.
	Dims int

	// IsRecord reports whether Base references a record type rather than
	// a simple type.
	IsRecord bool
}

// WireName returns the type name the field is declared with in the
// schema: the base name for scalars, the ArrayOf form otherwise.
func (f SchemaField) WireName() string {
	return ArrayName(f.Base, f.Dims)
}

// SchemaTable is the resolved, deduplicated set of record and array
// complex-type declarations needed to describe a service's operations.
// It is built fresh for each contract request and discarded afterwards;
// it is never shared across requests.
type SchemaTable struct {
	recordOrder []string
	records     map[string][]SchemaField

	arrayOrder []string
	arrays     map[string]string // ArrayOf^k T -> ArrayOf^(k-1) T
}

func newSchemaTable() *SchemaTable {
	return &SchemaTable{
		records: make(map[string][]SchemaField),
		arrays:  make(map[string]string),
	}
}

// Records returns the resolved record names in first-encounter order.
func (t *SchemaTable) Records() []string { return t.recordOrder }

// Fields returns the resolved field list for a record name.
func (t *SchemaTable) Fields(record string) ([]SchemaField, bool) {
	f, ok := t.records[record]
	return f, ok
}

// Arrays returns the registered array type names in first-encounter order.
func (t *SchemaTable) Arrays() []string { return t.arrayOrder }

// ElementOf returns the element type name of a registered array type,
// one nesting level shallower.
func (t *SchemaTable) ElementOf(array string) (string, bool) {
	e, ok := t.arrays[array]
	return e, ok
}

// HasRecord reports whether a record name has been resolved.
func (t *SchemaTable) HasRecord(name string) bool {
	_, ok := t.records[name]
	return ok
}

// registerArrays records every intermediate array level for dims levels of
// nesting over base, each pointing at its one-level-shallower element type.
func (t *SchemaTable) registerArrays(base string, dims int) {
	for k := dims; k >= 1; k-- {
		name := ArrayName(base, k)
		if _, ok := t.arrays[name]; ok {
			continue
		}
		t.arrays[name] = ArrayName(base, k-1)
		t.arrayOrder = append(t.arrayOrder, name)
	}
}

// SchemaResolver walks operation parameter, return, and record field types
// and produces the flat SchemaTable the contract is rendered from. The
// record set it reads must be immutable for the duration of a resolve.
type SchemaResolver struct {
	records map[string]*RecordType
}

// NewSchemaResolver creates a resolver over the given record descriptors.
func NewSchemaResolver(records map[string]*RecordType) *SchemaResolver {
	return &SchemaResolver{records: records}
}

// Resolve walks every operation's parameters and return type and returns
// the deduplicated schema table. Identical input yields a table with
// identical key and field ordering on every invocation.
func (r *SchemaResolver) Resolve(ops []*OperationSpec) (*SchemaTable, error) {
	table := newSchemaTable()
	for _, op := range ops {
		for _, p := range op.Params {
			if err := r.resolveRef(p.Type, table); err != nil {
				return nil, err
			}
		}
		if op.Returns.IsVoid() {
			continue
		}
		if err := r.resolveRef(op.Returns, table); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// resolveRef normalizes one type reference, expands it when it names a
// record, and registers its array levels.
func (r *SchemaResolver) resolveRef(ref TypeRef, table *SchemaTable) error {
	ref = ref.normalize()
	base := ref.Name
	if _, simple := IsSimpleType(base); !simple {
		if err := r.expandRecord(base, table); err != nil {
			return err
		}
	}
	if ref.Dims >= 1 {
		table.registerArrays(base, ref.Dims)
	}
	return nil
}

// expandRecord resolves a record's fields into the table. It is
// idempotent: a name already present returns immediately, which both
// deduplicates and guards against self-referential records. The record's
// entry is inserted before recursing into nested records so partial
// cycles do not re-enter expansion.
func (r *SchemaResolver) expandRecord(name string, table *SchemaTable) error {
	if table.HasRecord(name) {
		return nil
	}
	rec, ok := r.records[name]
	if !ok {
		return &UnresolvableTypeError{Name: name}
	}

	fields := make([]SchemaField, 0, len(rec.Fields))
	for _, f := range rec.Fields {
		ref := f.Type.normalize()
		_, simple := IsSimpleType(ref.Name)
		fields = append(fields, SchemaField{
			Name:     f.Name,
			Base:     ref.Name,
			Dims:     ref.Dims,
			IsRecord: !simple,
		})
	}
	table.records[name] = fields
	table.recordOrder = append(table.recordOrder, name)

	for _, f := range fields {
		if f.IsRecord {
			if err := r.expandRecord(f.Base, table); err != nil {
				return err
			}
		}
		if f.Dims >= 1 {
			table.registerArrays(f.Base, f.Dims)
		}
	}
	return nil
}
