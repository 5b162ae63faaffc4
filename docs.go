package soapserver

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
)

// ParamDoc is one row of the documentation parameter table.
type ParamDoc struct {
	Name     string
	Type     string
	Required bool
}

// OperationDoc is the rendering-ready description of one operation. The
// core computes every string; the template collaborator is responsible
// purely for layout.
type OperationDoc struct {
	Name           string
	Signature      string
	ReturnType     string
	Description    string
	HasParams      bool
	Params         []ParamDoc
	ExampleRequest string
}

// DocModel returns one rendering-ready record per registered operation,
// in registration order.
func (s *Server) DocModel() []OperationDoc {
	specs := s.specs()
	docs := make([]OperationDoc, 0, len(specs))
	for _, spec := range specs {
		doc := OperationDoc{
			Name:           spec.Name,
			Signature:      spec.Signature(),
			ReturnType:     spec.Returns.normalize().String(),
			Description:    spec.Doc,
			HasParams:      len(spec.Params) > 0,
			ExampleRequest: exampleRequest(s.namespace, spec),
		}
		for _, p := range spec.Params {
			doc.Params = append(doc.Params, ParamDoc{
				Name:     p.Name,
				Type:     p.Type.normalize().String(),
				Required: p.Required(),
			})
		}
		docs = append(docs, doc)
	}
	return docs
}

// exampleRequest synthesizes a sample SOAP request body for an operation,
// with one placeholder element per parameter.
func exampleRequest(namespace string, spec *OperationSpec) string {
	var b bytes.Buffer
	b.WriteString(`<SOAP-ENV:Envelope xmlns:SOAP-ENV="http://schemas.xmlsoap.org/soap/envelope/">` + "\n")
	b.WriteString("  <SOAP-ENV:Body>\n")
	fmt.Fprintf(&b, "    <ns1:%s xmlns:ns1=%q>\n", spec.Name, namespace)
	for _, p := range spec.Params {
		fmt.Fprintf(&b, "      <%s>%s</%s>\n", p.Name, placeholder(p.Type), p.Name)
	}
	fmt.Fprintf(&b, "    </ns1:%s>\n", spec.Name)
	b.WriteString("  </SOAP-ENV:Body>\n")
	b.WriteString("</SOAP-ENV:Envelope>")
	return b.String()
}

// placeholder picks a sample literal for a parameter type.
func placeholder(ref TypeRef) string {
	ref = ref.normalize()
	if ref.Dims > 0 {
		return "..."
	}
	t, ok := IsSimpleType(ref.Name)
	if !ok {
		return "..."
	}
	switch t {
	case Integer:
		return "1"
	case Float, Double:
		return "1.0"
	case Boolean:
		return "true"
	case String:
		return "value"
	default:
		return "..."
	}
}

// docsTemplate is the built-in layout for the documentation page. It is a
// default collaborator; consumers wanting their own layout read DocModel
// and render it themselves.
var docsTemplate = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.Name}}</title></head>
<body>
<h1>{{.Name}}</h1>
<p>WSDL: <a href="{{.BaseURL}}?wsdl">{{.BaseURL}}?wsdl</a></p>
{{range .Operations}}
<h2>{{.Signature}}</h2>
{{if .Description}}<p>{{.Description}}</p>{{end}}
<p>Returns: <code>{{.ReturnType}}</code></p>
{{if .HasParams}}
<table border="1">
<tr><th>Parameter</th><th>Type</th><th>Required</th></tr>
{{range .Params}}<tr><td>{{.Name}}</td><td>{{.Type}}</td><td>{{if .Required}}yes{{else}}no{{end}}</td></tr>
{{end}}</table>
{{end}}
<pre>{{.ExampleRequest}}</pre>
{{end}}
</body>
</html>
`))

// docsResponse renders the documentation page through the built-in
// template.
func (s *Server) docsResponse(baseURL string) Response {
	data := struct {
		Name       string
		BaseURL    string
		Operations []OperationDoc
	}{
		Name:       s.name,
		BaseURL:    baseURL,
		Operations: s.DocModel(),
	}
	var b bytes.Buffer
	if err := docsTemplate.Execute(&b, data); err != nil {
		return textError(s.transform(err))
	}
	return Response{
		Status:      http.StatusOK,
		ContentType: "text/html; charset=utf-8",
		Body:        b.Bytes(),
	}
}
