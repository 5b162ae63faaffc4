package soapserver

import (
	"encoding/xml"
	"fmt"

	"github.com/byjg/go-soap-server/internal/wsdl"
)

// GenerateWSDL renders the service contract. The document is rebuilt from
// the operations and the schema table on every call; the section order
// (types, messages, portType, binding, service) and the ordering within
// each section are fixed and must not change between releases.
func GenerateWSDL(serviceName, namespace string, ops []*OperationSpec, table *SchemaTable, baseURL string) ([]byte, error) {
	def := wsdl.Definitions{
		Name:            serviceName,
		TargetNamespace: namespace,
		XmlnsXSD:        wsdl.XSDNS,
		XmlnsSOAP:       wsdl.SOAPNS,
		XmlnsSOAPEnc:    wsdl.SOAPEncNS,
		XmlnsWSDL:       wsdl.WSDLNS,
		XmlnsTypens:     namespace,
		Xmlns:           wsdl.WSDLNS,
	}

	def.Types = wsdl.Types{Schema: buildSchema(namespace, ops, table)}
	def.Messages = buildMessages(ops)
	def.PortType = buildPortType(serviceName, ops)
	def.Binding = buildBinding(serviceName, namespace, ops)
	def.Service = wsdl.Service{
		Name: serviceName,
		Port: wsdl.Port{
			Name:    serviceName + "Port",
			Binding: "typens:" + serviceName + "Binding",
			Address: wsdl.Address{Location: baseURL},
		},
	}

	out, err := xml.MarshalIndent(def, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal wsdl: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

// qualifiedType renders a type reference with its namespace prefix: the
// XML Schema prefix for simple types, the service's own type-namespace
// prefix for records and all array types.
func qualifiedType(ref TypeRef) string {
	ref = ref.normalize()
	if ref.Dims > 0 {
		return "typens:" + ArrayName(ref.Name, ref.Dims)
	}
	if t, ok := IsSimpleType(ref.Name); ok {
		return "xsd:" + string(t)
	}
	return "typens:" + ref.Name
}

// qualifiedElement is qualifiedType for an array element one level down,
// used in wsdl:arrayType attribute values.
func qualifiedElement(name string) string {
	if base, dims := ParseTypeName(name); dims > 0 {
		return "typens:" + ArrayName(base, dims)
	}
	if t, ok := IsSimpleType(name); ok {
		return "xsd:" + string(t)
	}
	return "typens:" + name
}

// buildSchema emits complex types in three groups, preserving table
// order within each: SOAP-encoded array declarations, per-operation
// request wrappers, record field lists.
func buildSchema(namespace string, ops []*OperationSpec, table *SchemaTable) wsdl.Schema {
	schema := wsdl.Schema{TargetNamespace: namespace}

	for _, name := range table.Arrays() {
		elem, _ := table.ElementOf(name)
		schema.ComplexTypes = append(schema.ComplexTypes, wsdl.ComplexType{
			Name: name,
			ComplexContent: &wsdl.ComplexContent{
				Restriction: wsdl.Restriction{
					Base: "soapenc:Array",
					Attribute: wsdl.ArrayTypeAttr{
						Ref:       "soapenc:arrayType",
						ArrayType: qualifiedElement(elem) + "[]",
					},
				},
			},
		})
	}

	for _, op := range ops {
		all := &wsdl.All{}
		for _, p := range op.Params {
			all.Elements = append(all.Elements, wsdl.Element{
				Name:      p.Name,
				Type:      qualifiedType(p.Type),
				MinOccurs: p.MinOccursAttr(),
				MaxOccurs: p.MaxOccursAttr(),
			})
		}
		schema.ComplexTypes = append(schema.ComplexTypes, wsdl.ComplexType{
			Name: op.Name + "Request",
			All:  all,
		})
	}

	for _, name := range table.Records() {
		fields, _ := table.Fields(name)
		all := &wsdl.All{}
		for _, f := range fields {
			all.Elements = append(all.Elements, wsdl.Element{
				Name: f.Name,
				Type: qualifiedType(TypeRef{Name: f.Base, Dims: f.Dims}),
			})
		}
		schema.ComplexTypes = append(schema.ComplexTypes, wsdl.ComplexType{
			Name: name,
			All:  all,
		})
	}

	return schema
}

// buildMessages emits the request/response message pair per operation.
// The response carries a single "return" part unless the operation is
// void, in which case the response message is empty.
func buildMessages(ops []*OperationSpec) []wsdl.Message {
	messages := make([]wsdl.Message, 0, len(ops)*2)
	for _, op := range ops {
		req := wsdl.Message{Name: op.Name + "Request"}
		for _, p := range op.Params {
			req.Parts = append(req.Parts, wsdl.Part{
				Name: p.Name,
				Type: qualifiedType(p.Type),
			})
		}
		res := wsdl.Message{Name: op.Name + "Response"}
		if !op.Returns.IsVoid() {
			res.Parts = append(res.Parts, wsdl.Part{
				Name: "return",
				Type: qualifiedType(op.Returns),
			})
		}
		messages = append(messages, req, res)
	}
	return messages
}

func buildPortType(serviceName string, ops []*OperationSpec) wsdl.PortType {
	pt := wsdl.PortType{Name: serviceName + "PortType"}
	for _, op := range ops {
		pt.Operations = append(pt.Operations, wsdl.PortTypeOperation{
			Name:          op.Name,
			Documentation: op.Doc,
			Input:         wsdl.IOParam{Message: "typens:" + op.Name + "Request"},
			Output:        wsdl.IOParam{Message: "typens:" + op.Name + "Response"},
		})
	}
	return pt
}

func buildBinding(serviceName, namespace string, ops []*OperationSpec) wsdl.Binding {
	b := wsdl.Binding{
		Name: serviceName + "Binding",
		Type: "typens:" + serviceName + "PortType",
		SOAPBinding: wsdl.SOAPBinding{
			Style:     "rpc",
			Transport: wsdl.HTTPTransport,
		},
	}
	for _, op := range ops {
		body := wsdl.SOAPBody{
			Use:           "encoded",
			Namespace:     namespace,
			EncodingStyle: wsdl.SOAPEncNS,
		}
		b.Operations = append(b.Operations, wsdl.BindingOperation{
			Name:          op.Name,
			SOAPOperation: wsdl.SOAPOperation{SOAPAction: namespace + "#" + op.Name},
			Input:         wsdl.BindingBody{Body: body},
			Output:        wsdl.BindingBody{Body: body},
		})
	}
	return b
}
