package soapserver

import (
	"context"
	"fmt"
)

// newCalcServer builds the service used across tests: one add operation
// over integer parameters and no record types.
func newCalcServer() *Server {
	s := NewServer("Calculator", "urn:calculator")
	s.Register("add", NewOperation(func(ctx context.Context, args map[string]any) (any, error) {
		a, ok := args["a"].(int)
		if !ok {
			return nil, fmt.Errorf("a is not an int")
		}
		b, ok := args["b"].(int)
		if !ok {
			return nil, fmt.Errorf("b is not an int")
		}
		return a + b, nil
	}).
		Param("a", Simple(Integer)).
		Param("b", Simple(Integer)).
		Returns(Simple(Integer)).
		Doc("Adds two integers."))
	return s
}

// newUserServer builds a service with nested record types: createUser
// takes and returns a UserRecord whose address field is an AddressRecord.
func newUserServer() *Server {
	s := NewServer("UserService", "urn:users")
	s.RegisterRecord(NewRecord("UserRecord").
		Field("name", Simple(String)).
		Field("address", Record("AddressRecord")).
		Field("tags", ArrayOf(Simple(String))))
	s.RegisterRecord(NewRecord("AddressRecord").
		Field("street", Simple(String)).
		Field("zip", Simple(String)))
	s.Register("createUser", NewOperation(func(ctx context.Context, args map[string]any) (any, error) {
		return args["u"], nil
	}).
		Param("u", Record("UserRecord")).
		Returns(Record("UserRecord")).
		Doc("Creates a user."))
	return s
}

// userRecords returns the record registry of newUserServer for direct
// resolver tests.
func userRecords() map[string]*RecordType {
	return map[string]*RecordType{
		"UserRecord": NewRecord("UserRecord").
			Field("name", Simple(String)).
			Field("address", Record("AddressRecord")),
		"AddressRecord": NewRecord("AddressRecord").
			Field("street", Simple(String)).
			Field("zip", Simple(String)),
	}
}
