package soapserver

import (
	"encoding/xml"
	"fmt"

	"github.com/byjg/go-soap-server/internal/wsdl"
)

// GenerateDISCO renders the discovery document pointing clients at the
// WSDL contract. Pure templating from service identity and URL; no schema
// resolution happens here.
func GenerateDISCO(serviceName, namespace, baseURL string) ([]byte, error) {
	doc := wsdl.Discovery{
		Xmlns: wsdl.DiscoNS,
		ContractRef: wsdl.ContractRef{
			Ref:    baseURL + "?wsdl",
			DocRef: baseURL,
			Xmlns:  wsdl.SCLNS,
			SOAP: wsdl.SOAPAddress{
				Address: baseURL,
				XmlnsQ1: namespace,
				Binding: "q1:" + serviceName,
				Xmlns:   wsdl.SOAPDiscoNS,
			},
		},
	}
	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal disco: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}
