// Package fault defines the error taxonomy every operation answers with.
// The transport maps these onto its protocol-native fault representation;
// the codes and reason strings are the contract.
package fault

type Code string

const (
	CodeBadRequest    Code = "BadRequest"
	CodeUnauthorized  Code = "Unauthorized"
	CodeForbidden     Code = "Forbidden"
	CodeNotFound      Code = "NotFound"
	CodeDatabaseError Code = "DatabaseError"
	CodeParsingError  Code = "ParsingError"
)

type Fault struct {
	Code   Code
	Reason string
}

func (f *Fault) Error() string {
	return string(f.Code) + ": " + f.Reason
}

// Server reports whether the fault indicates an infrastructure failure
// rather than a caller mistake. Server faults get logged; client faults
// do not.
func (f *Fault) Server() bool {
	return f.Code == CodeDatabaseError || f.Code == CodeParsingError
}

func BadRequest(reason string) *Fault {
	return &Fault{Code: CodeBadRequest, Reason: reason}
}

func Unauthorized(reason string) *Fault {
	return &Fault{Code: CodeUnauthorized, Reason: reason}
}

func Forbidden(reason string) *Fault {
	return &Fault{Code: CodeForbidden, Reason: reason}
}

func NotFound(reason string) *Fault {
	return &Fault{Code: CodeNotFound, Reason: reason}
}

func Database() *Fault {
	return &Fault{Code: CodeDatabaseError, Reason: "Database error"}
}

func Parsing() *Fault {
	return &Fault{Code: CodeParsingError, Reason: "Failed to parse availability data"}
}
