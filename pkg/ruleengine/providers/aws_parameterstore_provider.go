package providers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ssm"
	"github.com/aws/aws-sdk-go/service/ssm/ssmiface"

	"github.com/open-regels/ruleengine/internal/rlog"
	"github.com/open-regels/ruleengine/pkg/ruleengine"
)

// decodeParameterValue parses the JSON object a parameter's SecureString
// value is expected to hold, mirroring VaultProvider's secret-as-map shape.
func decodeParameterValue(raw string) (map[string]interface{}, error) {
	var value map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, err
	}
	return value, nil
}

// AWSParameterStoreProvider resolves a cross-service field from an SSM
// Parameter Store document at "/<service>/<law>", a centrally-managed
// external parameter concern equivalent to VaultProvider but backed by AWS
// rather than Vault. The document is stored as a JSON-encoded
// SecureString; GetValue decrypts and extracts field from it.
type AWSParameterStoreProvider struct {
	client        ssmiface.SSMAPI
	referenceDate string
}

var _ ruleengine.ServiceProvider = (*AWSParameterStoreProvider)(nil)
var _ ruleengine.ReferenceDated = (*AWSParameterStoreProvider)(nil)

// NewAWSParameterStoreProvider wraps an already-constructed SSM client.
func NewAWSParameterStoreProvider(client ssmiface.SSMAPI, referenceDate string) *AWSParameterStoreProvider {
	return &AWSParameterStoreProvider{client: client, referenceDate: referenceDate}
}

// NewAWSParameterStoreProviderFromSession builds an SSM client from an
// existing AWS session, the same session-then-service-client pattern the
// teacher's AwsClientPool uses for its parameter store and secrets manager
// clients.
func NewAWSParameterStoreProviderFromSession(sess *session.Session, referenceDate string) *AWSParameterStoreProvider {
	return NewAWSParameterStoreProvider(ssm.New(sess), referenceDate)
}

// ReferenceDate returns the date this provider anchors its lookups to.
func (p *AWSParameterStoreProvider) ReferenceDate() string {
	return p.referenceDate
}

// GetValue implements ruleengine.ServiceProvider by reading the parameter
// at /<service>/<law> and extracting field from its decoded value map.
func (p *AWSParameterStoreProvider) GetValue(
	_ context.Context,
	service, law, field string,
	_ interface{},
	_ map[string]interface{},
	_ map[string]interface{},
) (interface{}, error) {
	name := fmt.Sprintf("/%s/%s", service, law)

	out, err := p.client.GetParameter(&ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("aws parameter store provider: reading %s: %w", name, err)
	}

	secret, err := decodeParameterValue(aws.StringValue(out.Parameter.Value))
	if err != nil {
		return nil, fmt.Errorf("aws parameter store provider: decoding %s: %w", name, err)
	}

	value, ok := secret[field]
	if !ok {
		rlog.WARN("aws parameter store provider: %s has no field %q", name, field)
		return nil, nil
	}
	return value, nil
}
