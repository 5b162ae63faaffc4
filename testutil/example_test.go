package testutil_test

import (
	"context"
	"net/http"
	"testing"

	soapserver "github.com/byjg/go-soap-server"
	"github.com/byjg/go-soap-server/testutil"
)

func exampleServer() *soapserver.Server {
	s := soapserver.NewServer("Echo", "urn:echo")
	s.Register("echo", soapserver.NewOperation(func(ctx context.Context, args map[string]any) (any, error) {
		return args["message"], nil
	}).
		Param("message", soapserver.Simple(soapserver.String)).
		Returns(soapserver.Simple(soapserver.String)))
	return s
}

// TestRequestBuilder demonstrates the fluent API for exercising a service
// end to end.
func TestRequestBuilder(t *testing.T) {
	req, w := testutil.NewRequest().
		GET("/soap").
		WithQuery("call", "echo").
		WithQuery("message", "hello").
		Build()
	exampleServer().Handler().ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertContentType(t, w, "text/plain")
	testutil.AssertBodyContains(t, w, "hello")
}

// TestRequestBuilder_Form demonstrates form-encoded POST dispatch.
func TestRequestBuilder_Form(t *testing.T) {
	req, w := testutil.NewRequest().
		POST("/soap").
		WithQuery("call", "echo").
		WithForm("message", "from a form").
		Build()
	exampleServer().Handler().ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertBodyContains(t, w, "from a form")
}

// TestRequestBuilder_Contract demonstrates the XML assertions against a
// generated contract.
func TestRequestBuilder_Contract(t *testing.T) {
	req, w := testutil.NewRequest().
		GET("/soap").
		WithQuery("wsdl", "").
		Build()
	exampleServer().Handler().ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertWellFormedXML(t, w)
	testutil.AssertBodyContains(t, w, `name="Echo"`)
}
