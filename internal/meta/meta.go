package meta

// ParameterMetadata mirrors one declared parameter for export consumers.
type ParameterMetadata struct {
	Name      string
	Type      string
	MinOccurs int
	MaxOccurs int
}

// OperationMetadata holds the runtime metadata for a registered operation.
// This type is internal so it cannot be instantiated by external packages,
// which keeps registration going through the Operation builder.
type OperationMetadata struct {
	Name    string
	Doc     string
	Params  []ParameterMetadata
	Returns string
}
