package providers

import (
	"context"
	"fmt"

	"github.com/cloudfoundry-community/vaultkv"

	"github.com/open-regels/ruleengine/internal/rlog"
	"github.com/open-regels/ruleengine/pkg/ruleengine"
)

// VaultProvider resolves a cross-service field from a Vault KV secret at
// "secret/<service>/<law>", used where centrally-managed regulatory
// parameters (rates, thresholds) live outside any single law's own
// specification.
type VaultProvider struct {
	client        *vaultkv.KV
	referenceDate string
}

var _ ruleengine.ServiceProvider = (*VaultProvider)(nil)
var _ ruleengine.ReferenceDated = (*VaultProvider)(nil)

// NewVaultProvider wraps an already-authenticated Vault KV client.
func NewVaultProvider(client *vaultkv.KV, referenceDate string) *VaultProvider {
	return &VaultProvider{client: client, referenceDate: referenceDate}
}

// ReferenceDate returns the date this provider anchors its lookups to.
func (p *VaultProvider) ReferenceDate() string {
	return p.referenceDate
}

// GetValue implements ruleengine.ServiceProvider by reading the secret at
// secret/<service>/<law> and extracting field from its value map.
func (p *VaultProvider) GetValue(
	_ context.Context,
	service, law, field string,
	_ interface{},
	_ map[string]interface{},
	_ map[string]interface{},
) (interface{}, error) {
	path := fmt.Sprintf("secret/%s/%s", service, law)

	var secret map[string]interface{}
	_, err := p.client.Get(path, &secret, nil)
	if err != nil {
		return nil, fmt.Errorf("vault provider: reading %s: %w", path, err)
	}

	value, ok := secret[field]
	if !ok {
		rlog.WARN("vault provider: %s has no field %q", path, field)
		return nil, nil
	}
	return value, nil
}
