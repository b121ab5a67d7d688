package goStats

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/http"
	"os"
)

// noMetric marks an Endpoint slot the catalog has no counter for.
const noMetric = MetricID(^uint16(0))

// Endpoint bundles the per-route counters of one REST operation.
type Endpoint struct {
	Name        string
	Total       MetricID
	Count       MetricID
	SystemError MetricID
}

// HasSystemError reports whether the endpoint has its own system_error counter.
func (e Endpoint) HasSystemError() bool {
	return e.SystemError != noMetric
}

// Notification plugin REST operations.
var (
	EndpointConfigCreate        = Endpoint{"config.create", MetricConfigCreateTotal, MetricConfigCreateCount, MetricConfigCreateSystemError}
	EndpointConfigUpdate        = Endpoint{"config.update", MetricConfigUpdateTotal, MetricConfigUpdateCount, MetricConfigUpdateSystemError}
	EndpointConfigDelete        = Endpoint{"config.delete", MetricConfigDeleteTotal, MetricConfigDeleteCount, MetricConfigDeleteSystemError}
	EndpointConfigDeleteList    = Endpoint{"config.delete_list", MetricConfigDeleteListTotal, MetricConfigDeleteListCount, MetricConfigDeleteListSystemError}
	EndpointConfigInfo          = Endpoint{"config.info", MetricConfigInfoTotal, MetricConfigInfoCount, MetricConfigInfoSystemError}
	EndpointConfigList          = Endpoint{"config.list", MetricConfigListTotal, MetricConfigListCount, MetricConfigListSystemError}
	EndpointEventsInfo          = Endpoint{"events.info", MetricEventsInfoTotal, MetricEventsInfoCount, MetricEventsInfoSystemError}
	EndpointEventsList          = Endpoint{"events.list", MetricEventsListTotal, MetricEventsListCount, MetricEventsListSystemError}
	EndpointFeatureChannelsInfo = Endpoint{"feature_channels.info", MetricFeatureChannelsInfoTotal, MetricFeatureChannelsInfoCount, MetricFeatureChannelsInfoSystemError}
	EndpointFeaturesInfo        = Endpoint{"features.info", MetricFeaturesInfoTotal, MetricFeaturesInfoCount, MetricFeaturesInfoSystemError}
	EndpointSendMessage         = Endpoint{"send_message", MetricSendMessageTotal, MetricSendMessageCount, MetricSendMessageSystemError}
	EndpointSendTestMessage     = Endpoint{"send_test_message", MetricSendTestMessageTotal, MetricSendTestMessageCount, noMetric}
)

// Endpoints lists every REST operation in route-table order.
func Endpoints() []Endpoint {
	return []Endpoint{
		EndpointConfigCreate,
		EndpointConfigUpdate,
		EndpointConfigDelete,
		EndpointConfigDeleteList,
		EndpointConfigInfo,
		EndpointConfigList,
		EndpointEventsInfo,
		EndpointEventsList,
		EndpointFeatureChannelsInfo,
		EndpointFeaturesInfo,
		EndpointSendMessage,
		EndpointSendTestMessage,
	}
}

// RecordRequest counts an incoming request plugin-wide and for ep.
func (r *Registry) RecordRequest(ep Endpoint) {
	r.Inc(MetricRequestTotal)
	r.Inc(MetricRequestCount)
	r.Inc(ep.Total)
	r.Inc(ep.Count)
}

// RecordOutcome counts the response status of a request to ep: 2xx and 3xx
// as success, 4xx as a user error, 5xx as a system error (plugin-wide and,
// when the endpoint has one, on its own system_error counter).
func (r *Registry) RecordOutcome(ep Endpoint, status int) {
	switch {
	case status >= 500:
		r.Inc(MetricRequestSystemError)
		if ep.HasSystemError() {
			r.Inc(ep.SystemError)
		}
	case status >= 400:
		r.Inc(MetricRequestUserError)
	default:
		r.Inc(MetricRequestSuccess)
	}
}

// StatusError is a failure that already knows its HTTP status.
type StatusError struct {
	Status int
	Err    error
}

// NewStatusError wraps err with an explicit status.
func NewStatusError(status int, err error) *StatusError {
	return &StatusError{Status: status, Err: err}
}

func (e *StatusError) Error() string {
	if e.Err == nil {
		return http.StatusText(e.Status)
	}
	return fmt.Sprintf("%d %s: %v", e.Status, http.StatusText(e.Status), e.Err)
}

func (e *StatusError) Unwrap() error { return e.Err }

// Is makes every StatusError match [ErrStatus].
func (e *StatusError) Is(target error) bool { return target == ErrStatus }

// ClassifyError maps err to the exception.* metric it is counted under and
// the HTTP status the plugin answers with. Classes are checked in a fixed
// order, so an error wrapping several classes lands in the first match.
func ClassifyError(err error) (MetricID, int) {
	var statusErr *StatusError
	switch {
	case errors.As(err, &statusErr):
		return MetricExceptionOSStatus, statusErr.Status
	case errors.Is(err, ErrSecurity):
		return MetricExceptionOSSecurity, http.StatusForbidden
	case errors.Is(err, ErrVersionConflict):
		return MetricExceptionVersionConflictEngine, http.StatusConflict
	case errors.Is(err, ErrIndexNotFound):
		return MetricExceptionIndexNotFound, http.StatusNotFound
	case errors.Is(err, ErrInvalidIndexName):
		return MetricExceptionInvalidIndexName, http.StatusBadRequest
	case errors.Is(err, ErrIllegalArgument):
		return MetricExceptionIllegalArgument, http.StatusBadRequest
	case errors.Is(err, ErrIllegalState):
		return MetricExceptionIllegalState, http.StatusServiceUnavailable
	case isIOError(err):
		return MetricExceptionIO, http.StatusFailedDependency
	default:
		return MetricExceptionInternalServerError, http.StatusInternalServerError
	}
}

// RecordError counts err under its exception.* metric and returns the
// response status. A nil error records nothing and returns 200.
func (r *Registry) RecordError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	id, status := ClassifyError(err)
	r.Inc(id)
	return status
}

func isIOError(err error) bool {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// DestinationKind is the channel type a message was delivered to.
type DestinationKind string

const (
	DestinationSlack       DestinationKind = "slack"
	DestinationChime       DestinationKind = "chime"
	DestinationWebhook     DestinationKind = "webhook"
	DestinationEmail       DestinationKind = "email"
	DestinationSESAccount  DestinationKind = "ses_account"
	DestinationSMTPAccount DestinationKind = "smtp_account"
	DestinationEmailGroup  DestinationKind = "email_group"
	DestinationSNS         DestinationKind = "sns"
)

var destinationMetrics = map[DestinationKind]MetricID{
	DestinationSlack:       MetricMessageDestinationSlack,
	DestinationChime:       MetricMessageDestinationChime,
	DestinationWebhook:     MetricMessageDestinationWebhook,
	DestinationEmail:       MetricMessageDestinationEmail,
	DestinationSESAccount:  MetricMessageDestinationSESAccount,
	DestinationSMTPAccount: MetricMessageDestinationSMTPAccount,
	DestinationEmailGroup:  MetricMessageDestinationEmailGroup,
	DestinationSNS:         MetricMessageDestinationSNS,
}

// RecordDestination counts one message sent to a destination of the given
// kind. An unknown kind panics with [ErrUnknownMetric].
func (r *Registry) RecordDestination(kind DestinationKind) {
	id, ok := destinationMetrics[kind]
	if !ok {
		panic(fmt.Errorf("%w: destination %q", ErrUnknownMetric, kind))
	}
	r.Inc(id)
}
