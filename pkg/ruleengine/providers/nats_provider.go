package providers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/open-regels/ruleengine/pkg/ruleengine"
)

// NatsProvider resolves cross-service lookups by issuing a NATS
// request/reply on subject "law.<service>.<law>", modeling §1's "another
// engine invocation" reached over the network: the responder is expected
// to be another instance of this same engine (or a compatible law
// service) fronting its own Evaluate call.
type NatsProvider struct {
	conn          *nats.Conn
	referenceDate string
}

var _ ruleengine.ServiceProvider = (*NatsProvider)(nil)
var _ ruleengine.ReferenceDated = (*NatsProvider)(nil)

// NewNatsProvider wraps an already-connected NATS connection.
func NewNatsProvider(conn *nats.Conn, referenceDate string) *NatsProvider {
	return &NatsProvider{conn: conn, referenceDate: referenceDate}
}

// ReferenceDate returns the date this provider anchors its lookups to.
func (p *NatsProvider) ReferenceDate() string {
	return p.referenceDate
}

// natsRequest is the wire shape of a cross-service lookup request.
type natsRequest struct {
	Field          string                 `json:"field"`
	Temporal       interface{}            `json:"temporal,omitempty"`
	ServiceContext map[string]interface{} `json:"service_context,omitempty"`
	OverwriteInput map[string]interface{} `json:"overwrite_input,omitempty"`
	ReferenceDate  string                 `json:"reference_date"`
}

// natsResponse is the wire shape of the responder's reply.
type natsResponse struct {
	Value interface{} `json:"value"`
	Error string      `json:"error,omitempty"`
}

// GetValue implements ruleengine.ServiceProvider over NATS request/reply.
func (p *NatsProvider) GetValue(
	ctx context.Context,
	service, law, field string,
	temporal interface{},
	serviceContext map[string]interface{},
	overwriteInput map[string]interface{},
) (interface{}, error) {
	subject := fmt.Sprintf("law.%s.%s", service, law)

	payload, err := json.Marshal(natsRequest{
		Field:          field,
		Temporal:       temporal,
		ServiceContext: serviceContext,
		OverwriteInput: overwriteInput,
		ReferenceDate:  p.referenceDate,
	})
	if err != nil {
		return nil, fmt.Errorf("nats provider: encoding request for %s: %w", subject, err)
	}

	msg, err := p.conn.RequestWithContext(ctx, subject, payload)
	if err != nil {
		return nil, fmt.Errorf("nats provider: request to %s: %w", subject, err)
	}

	var resp natsResponse
	if err := json.Unmarshal(msg.Data, &resp); err != nil {
		return nil, fmt.Errorf("nats provider: decoding reply from %s: %w", subject, err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("nats provider: %s reported: %s", subject, resp.Error)
	}
	return resp.Value, nil
}
