// Package soap binds the operation handlers to a SOAP endpoint: it decodes
// request envelopes, dispatches on the body's payload element, and encodes
// responses or faults. The fault taxonomy rides on faultcode (soap:Client
// vs soap:Server) with the taxonomy kind in the detail block.
package soap

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"calendly-soap-api/internal/fault"
	"calendly-soap-api/internal/middleware"
	"calendly-soap-api/internal/service"
)

const envelopeNS = "http://schemas.xmlsoap.org/soap/envelope/"

// maxBodyBytes caps request bodies; envelopes here are small.
const maxBodyBytes = 1 << 20

type handlerFunc func(ctx context.Context, payload []byte) (any, error)

type Server struct {
	svc     *service.Service
	limiter *middleware.RateLimiter
	log     *logrus.Logger
	ops     map[string]handlerFunc
}

// limited names the operations subject to the per-IP rate limit: the two
// unauthenticated credential paths.
var limited = map[string]bool{
	"CreateUser":    true,
	"CreateSession": true,
}

func NewServer(svc *service.Service, limiter *middleware.RateLimiter, log *logrus.Logger) *Server {
	s := &Server{svc: svc, limiter: limiter, log: log}
	s.ops = map[string]handlerFunc{
		"CreateUser": op(svc.CreateUser),
		"GetUsers":   op(svc.GetUsers),
		"GetUser":    op(svc.GetUser),
		"UpdateUser": op(svc.UpdateUser),
		"DeleteUser": op(svc.DeleteUser),

		"CreateSession": op(svc.CreateSession),
		"DeleteSession": op(svc.DeleteSession),

		"CreateEvent": op(svc.CreateEvent),
		"GetEvents":   op(svc.GetEvents),
		"GetEvent":    op(svc.GetEvent),
		"UpdateEvent": op(svc.UpdateEvent),
		"DeleteEvent": op(svc.DeleteEvent),

		"CreateSchedule": op(svc.CreateSchedule),
		"GetSchedules":   op(svc.GetSchedules),
		"GetSchedule":    op(svc.GetSchedule),
		"UpdateSchedule": op(svc.UpdateSchedule),
		"DeleteSchedule": op(svc.DeleteSchedule),

		"CreateAppointment": op(svc.CreateAppointment),
		"GetAppointments":   op(svc.GetAppointments),
		"GetAppointment":    op(svc.GetAppointment),
		"UpdateAppointment": op(svc.UpdateAppointment),
		"DeleteAppointment": op(svc.DeleteAppointment),
	}
	return s
}

func op[Req any, Resp any](fn func(context.Context, *Req) (*Resp, error)) handlerFunc {
	return func(ctx context.Context, payload []byte) (any, error) {
		var req Req
		if err := xml.Unmarshal(payload, &req); err != nil {
			return nil, fault.BadRequest("Malformed request body")
		}
		return fn(ctx, &req)
	}
}

type envelope struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    struct {
		Inner []byte `xml:",innerxml"`
	} `xml:"Body"`
}

// payloadName returns the local name of the body's first element.
func payloadName(inner []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(inner))
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start.Name.Local, nil
		}
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.writeFault(w, fault.BadRequest("Malformed SOAP envelope"))
		return
	}

	var env envelope
	if err := xml.Unmarshal(body, &env); err != nil {
		s.writeFault(w, fault.BadRequest("Malformed SOAP envelope"))
		return
	}

	name, err := payloadName(env.Body.Inner)
	if err != nil {
		s.writeFault(w, fault.BadRequest("Malformed SOAP envelope"))
		return
	}
	opName := strings.TrimSuffix(name, "Request")

	handle, ok := s.ops[opName]
	if !ok {
		s.writeFault(w, fault.BadRequest("Unknown operation: "+name))
		return
	}

	if limited[opName] && !s.limiter.Allow(clientIP(r)) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
		return
	}

	resp, err := handle(r.Context(), env.Body.Inner)
	if err != nil {
		var f *fault.Fault
		if !errors.As(err, &f) {
			f = fault.Database()
		}
		s.log.WithFields(logrus.Fields{"op": opName, "code": f.Code}).Debug("fault")
		s.writeFault(w, f)
		return
	}
	s.writeResponse(w, resp)
}

type soapFault struct {
	XMLName     xml.Name `xml:"soap:Fault"`
	Code        string   `xml:"faultcode"`
	FaultString string   `xml:"faultstring"`
	Detail      struct {
		Subcode string `xml:"subcode"`
	} `xml:"detail"`
}

func (s *Server) writeFault(w http.ResponseWriter, f *fault.Fault) {
	body := soapFault{FaultString: f.Reason}
	if f.Server() {
		body.Code = "soap:Server"
	} else {
		body.Code = "soap:Client"
	}
	body.Detail.Subcode = string(f.Code)

	// SOAP carries faults on a 500 regardless of class
	s.writeEnvelope(w, http.StatusInternalServerError, body)
}

func (s *Server) writeResponse(w http.ResponseWriter, payload any) {
	s.writeEnvelope(w, http.StatusOK, payload)
}

func (s *Server) writeEnvelope(w http.ResponseWriter, status int, payload any) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString(`<soap:Envelope xmlns:soap="` + envelopeNS + `"><soap:Body>`)
	enc := xml.NewEncoder(&buf)
	if err := enc.Encode(payload); err != nil {
		s.log.WithError(err).Error("encode response")
		http.Error(w, "encoding failure", http.StatusInternalServerError)
		return
	}
	buf.WriteString(`</soap:Body></soap:Envelope>`)

	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
