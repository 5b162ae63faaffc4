// Package wsdl defines the XML document structure of generated WSDL and
// DISCO documents. Struct field order is load-bearing: some SOAP clients
// parse the contract positionally, so the marshaled element and attribute
// sequence must never change.
package wsdl

import "encoding/xml"

// Namespace URIs bound in generated documents.
const (
	WSDLNS      = "http://schemas.xmlsoap.org/wsdl/"
	SOAPNS      = "http://schemas.xmlsoap.org/wsdl/soap/"
	SOAPEncNS   = "http://schemas.xmlsoap.org/soap/encoding/"
	XSDNS       = "http://www.w3.org/2001/XMLSchema"
	DiscoNS     = "http://schemas.xmlsoap.org/disco/"
	SCLNS       = "http://schemas.xmlsoap.org/disco/scl/"
	SOAPDiscoNS = "http://schemas.xmlsoap.org/disco/soap/"

	// HTTPTransport is the SOAP-over-HTTP binding transport URI.
	HTTPTransport = "http://schemas.xmlsoap.org/soap/http"
)

// Definitions is the WSDL document root. The xmlns attributes bind the
// five prefixes the rest of the document uses; typens is bound to the
// service's own type namespace.
type Definitions struct {
	XMLName         xml.Name `xml:"definitions"`
	Name            string   `xml:"name,attr"`
	TargetNamespace string   `xml:"targetNamespace,attr"`
	XmlnsXSD        string   `xml:"xmlns:xsd,attr"`
	XmlnsSOAP       string   `xml:"xmlns:soap,attr"`
	XmlnsSOAPEnc    string   `xml:"xmlns:soapenc,attr"`
	XmlnsWSDL       string   `xml:"xmlns:wsdl,attr"`
	XmlnsTypens     string   `xml:"xmlns:typens,attr"`
	Xmlns           string   `xml:"xmlns,attr"`

	Types    Types     `xml:"types"`
	Messages []Message `xml:"message"`
	PortType PortType  `xml:"portType"`
	Binding  Binding   `xml:"binding"`
	Service  Service   `xml:"service"`
}

// Types holds the embedded XML Schema.
type Types struct {
	Schema Schema `xml:"xsd:schema"`
}

// Schema is the service's type schema. Complex types appear in the order
// they were registered: array types first, then per-operation request
// wrappers, then record types.
type Schema struct {
	TargetNamespace string        `xml:"targetNamespace,attr"`
	ComplexTypes    []ComplexType `xml:"xsd:complexType"`
}

// ComplexType is either a SOAP-encoded array declaration (ComplexContent
// set) or a field/parameter list (All set).
type ComplexType struct {
	Name           string          `xml:"name,attr"`
	ComplexContent *ComplexContent `xml:"xsd:complexContent,omitempty"`
	All            *All            `xml:"xsd:all,omitempty"`
}

// ComplexContent wraps the array restriction.
type ComplexContent struct {
	Restriction Restriction `xml:"xsd:restriction"`
}

// Restriction declares a SOAP-encoded array by restricting soapenc:Array
// and naming the element type through the wsdl:arrayType attribute.
type Restriction struct {
	Base      string        `xml:"base,attr"`
	Attribute ArrayTypeAttr `xml:"xsd:attribute"`
}

// ArrayTypeAttr carries the element type of a SOAP-encoded array, e.g.
// wsdl:arrayType="xsd:int[]".
type ArrayTypeAttr struct {
	Ref       string `xml:"ref,attr"`
	ArrayType string `xml:"wsdl:arrayType,attr"`
}

// All lists schema elements in declaration order.
type All struct {
	Elements []Element `xml:"xsd:element"`
}

// Element is one schema element. MinOccurs/MaxOccurs are literal attribute
// strings so "unbounded" renders verbatim; empty strings omit the
// attribute (record fields carry no occurrence bounds).
type Element struct {
	Name      string `xml:"name,attr"`
	Type      string `xml:"type,attr"`
	MinOccurs string `xml:"minOccurs,attr,omitempty"`
	MaxOccurs string `xml:"maxOccurs,attr,omitempty"`
}

// Message is a WSDL message with one part per parameter or return value.
type Message struct {
	Name  string `xml:"name,attr"`
	Parts []Part `xml:"part"`
}

// Part is one typed message part.
type Part struct {
	Name string `xml:"name,attr"`
	Type string `xml:"type,attr"`
}

// PortType lists the abstract operations.
type PortType struct {
	Name       string              `xml:"name,attr"`
	Operations []PortTypeOperation `xml:"operation"`
}

// PortTypeOperation binds an operation name to its message pair.
type PortTypeOperation struct {
	Name          string  `xml:"name,attr"`
	Documentation string  `xml:"documentation,omitempty"`
	Input         IOParam `xml:"input"`
	Output        IOParam `xml:"output"`
}

// IOParam references a message.
type IOParam struct {
	Message string `xml:"message,attr"`
}

// Binding declares the RPC/encoded SOAP binding over HTTP transport.
type Binding struct {
	Name        string             `xml:"name,attr"`
	Type        string             `xml:"type,attr"`
	SOAPBinding SOAPBinding        `xml:"soap:binding"`
	Operations  []BindingOperation `xml:"operation"`
}

// SOAPBinding carries the binding style and transport.
type SOAPBinding struct {
	Style     string `xml:"style,attr"`
	Transport string `xml:"transport,attr"`
}

// BindingOperation is the concrete binding of one operation.
type BindingOperation struct {
	Name          string        `xml:"name,attr"`
	SOAPOperation SOAPOperation `xml:"soap:operation"`
	Input         BindingBody   `xml:"input"`
	Output        BindingBody   `xml:"output"`
}

// SOAPOperation names the SOAPAction for an operation.
type SOAPOperation struct {
	SOAPAction string `xml:"soapAction,attr"`
}

// BindingBody wraps the soap:body of an input or output.
type BindingBody struct {
	Body SOAPBody `xml:"soap:body"`
}

// SOAPBody declares encoded use with the SOAP encoding style.
type SOAPBody struct {
	Use           string `xml:"use,attr"`
	Namespace     string `xml:"namespace,attr"`
	EncodingStyle string `xml:"encodingStyle,attr"`
}

// Service exposes one port at the server's externally visible address.
type Service struct {
	Name string `xml:"name,attr"`
	Port Port   `xml:"port"`
}

// Port binds the service address to the binding.
type Port struct {
	Name    string  `xml:"name,attr"`
	Binding string  `xml:"binding,attr"`
	Address Address `xml:"soap:address"`
}

// Address is the service endpoint location.
type Address struct {
	Location string `xml:"location,attr"`
}

// Discovery is the DISCO document root.
type Discovery struct {
	XMLName     xml.Name    `xml:"discovery"`
	Xmlns       string      `xml:"xmlns,attr"`
	ContractRef ContractRef `xml:"contractRef"`
}

// ContractRef points clients at the WSDL contract location.
type ContractRef struct {
	Ref    string      `xml:"ref,attr"`
	DocRef string      `xml:"docRef,attr"`
	Xmlns  string      `xml:"xmlns,attr"`
	SOAP   SOAPAddress `xml:"soap"`
}

// SOAPAddress names the SOAP binding inside a contractRef. The q1 prefix
// is bound to the service namespace so the binding attribute can be
// namespace-qualified.
type SOAPAddress struct {
	Address string `xml:"address,attr"`
	XmlnsQ1 string `xml:"xmlns:q1,attr"`
	Binding string `xml:"binding,attr"`
	Xmlns   string `xml:"xmlns,attr"`
}
