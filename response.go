package soapserver

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// Response is the triple handed back to the transport layer for sending.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// xmlResponse wraps a generated document body.
func xmlResponse(body []byte) Response {
	return Response{
		Status:      200,
		ContentType: "text/xml; charset=utf-8",
		Body:        body,
	}
}

// textResult encodes a dispatch result for the plain HTTP-form protocol:
// scalars are stringified, ordered collections join their stringified
// elements with newlines.
func textResult(value any) Response {
	return Response{
		Status:      200,
		ContentType: "text/plain; charset=utf-8",
		Body:        []byte(stringify(value)),
	}
}

// textError encodes a failure for the plain HTTP-form protocol.
func textError(svcErr *Error) Response {
	return Response{
		Status:      svcErr.Code.HTTPStatus(),
		ContentType: "text/plain; charset=utf-8",
		Body:        []byte(svcErr.Message),
	}
}

// soapResult wraps a dispatch result in a minimal RPC/encoded response
// envelope: a {operation}Response element holding one return element.
func soapResult(namespace, operation string, value any) Response {
	var b bytes.Buffer
	b.WriteString(xml.Header)
	b.WriteString(`<SOAP-ENV:Envelope xmlns:SOAP-ENV="http://schemas.xmlsoap.org/soap/envelope/">` + "\n")
	b.WriteString("  <SOAP-ENV:Body>\n")
	fmt.Fprintf(&b, "    <ns1:%sResponse xmlns:ns1=%q>\n", operation, namespace)
	writeReturnValue(&b, value)
	fmt.Fprintf(&b, "    </ns1:%sResponse>\n", operation)
	b.WriteString("  </SOAP-ENV:Body>\n")
	b.WriteString("</SOAP-ENV:Envelope>\n")
	return Response{
		Status:      200,
		ContentType: "text/xml; charset=utf-8",
		Body:        b.Bytes(),
	}
}

func writeReturnValue(b *bytes.Buffer, value any) {
	if items, ok := value.([]any); ok {
		b.WriteString("      <return>\n")
		for _, item := range items {
			fmt.Fprintf(b, "        <item>%s</item>\n", escapeXML(stringify(item)))
		}
		b.WriteString("      </return>\n")
		return
	}
	fmt.Fprintf(b, "      <return>%s</return>\n", escapeXML(stringify(value)))
}

// soapFault wraps an error in a SOAP 1.1 fault envelope.
func soapFault(svcErr *Error) Response {
	var b bytes.Buffer
	b.WriteString(xml.Header)
	b.WriteString(`<SOAP-ENV:Envelope xmlns:SOAP-ENV="http://schemas.xmlsoap.org/soap/envelope/">` + "\n")
	b.WriteString("  <SOAP-ENV:Body>\n")
	b.WriteString("    <SOAP-ENV:Fault>\n")
	fmt.Fprintf(&b, "      <faultcode>SOAP-ENV:%s</faultcode>\n", svcErr.Code.SOAPFaultCode())
	fmt.Fprintf(&b, "      <faultstring>%s</faultstring>\n", escapeXML(svcErr.Message))
	b.WriteString("    </SOAP-ENV:Fault>\n")
	b.WriteString("  </SOAP-ENV:Body>\n")
	b.WriteString("</SOAP-ENV:Envelope>\n")
	return Response{
		Status:      svcErr.Code.HTTPStatus(),
		ContentType: "text/xml; charset=utf-8",
		Body:        b.Bytes(),
	}
}

// stringify renders a scalar result; collections are newline-joined.
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = stringify(item)
		}
		return strings.Join(parts, "\n")
	case []string:
		return strings.Join(v, "\n")
	default:
		s, _ := castString(v)
		if str, ok := s.(string); ok {
			return str
		}
		return fmt.Sprint(v)
	}
}

func escapeXML(s string) string {
	var b bytes.Buffer
	// EscapeText only fails on a failed write; bytes.Buffer cannot.
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
