package fault_test

import (
	"errors"
	"testing"

	"calendly-soap-api/internal/fault"
)

func TestClassification(t *testing.T) {
	clientKinds := []*fault.Fault{
		fault.BadRequest("x"),
		fault.Unauthorized("x"),
		fault.Forbidden("x"),
		fault.NotFound("x"),
	}
	for _, f := range clientKinds {
		if f.Server() {
			t.Errorf("%s should be a client fault", f.Code)
		}
	}
	if !fault.Database().Server() {
		t.Error("DatabaseError should be a server fault")
	}
	if !fault.Parsing().Server() {
		t.Error("ParsingError should be a server fault")
	}
}

func TestErrorString(t *testing.T) {
	f := fault.NotFound("Event not found")
	if f.Error() != "NotFound: Event not found" {
		t.Errorf("got %q", f.Error())
	}
}

func TestErrorsAs(t *testing.T) {
	var err error = fault.Forbidden("You can only modify your own data")
	var f *fault.Fault
	if !errors.As(err, &f) {
		t.Fatal("errors.As should unwrap *fault.Fault")
	}
	if f.Code != fault.CodeForbidden {
		t.Errorf("code = %s", f.Code)
	}
}

func TestFixedReasons(t *testing.T) {
	if fault.Database().Reason != "Database error" {
		t.Errorf("database reason = %q", fault.Database().Reason)
	}
	if fault.Parsing().Reason != "Failed to parse availability data" {
		t.Errorf("parsing reason = %q", fault.Parsing().Reason)
	}
}
