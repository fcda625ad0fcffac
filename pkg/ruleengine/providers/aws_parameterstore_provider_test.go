package providers

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ssm"
	"github.com/aws/aws-sdk-go/service/ssm/ssmiface"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeSSMClient implements only GetParameter, embedding ssmiface.SSMAPI so
// every other method panics if ever called.
type fakeSSMClient struct {
	ssmiface.SSMAPI
	params map[string]string
	err    error
}

func (f *fakeSSMClient) GetParameter(in *ssm.GetParameterInput) (*ssm.GetParameterOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	value, ok := f.params[aws.StringValue(in.Name)]
	if !ok {
		return nil, errors.New("parameter not found")
	}
	return &ssm.GetParameterOutput{
		Parameter: &ssm.Parameter{Value: aws.String(value)},
	}, nil
}

func TestAWSParameterStoreProvider(t *testing.T) {
	Convey("GetValue extracts a field from a JSON-encoded parameter", t, func() {
		client := &fakeSSMClient{params: map[string]string{
			"/benefits/eligibility": `{"threshold": 1200}`,
		}}
		provider := NewAWSParameterStoreProvider(client, "2024-01-01")

		value, err := provider.GetValue(context.Background(), "benefits", "eligibility", "threshold", nil, nil, nil)
		So(err, ShouldBeNil)
		So(value, ShouldEqual, float64(1200))
	})

	Convey("GetValue warns and returns nil for a missing field", t, func() {
		client := &fakeSSMClient{params: map[string]string{
			"/benefits/eligibility": `{"threshold": 1200}`,
		}}
		provider := NewAWSParameterStoreProvider(client, "2024-01-01")

		value, err := provider.GetValue(context.Background(), "benefits", "eligibility", "rate", nil, nil, nil)
		So(err, ShouldBeNil)
		So(value, ShouldBeNil)
	})

	Convey("GetValue reports the parameter read failure", t, func() {
		client := &fakeSSMClient{err: errors.New("access denied")}
		provider := NewAWSParameterStoreProvider(client, "2024-01-01")

		_, err := provider.GetValue(context.Background(), "benefits", "eligibility", "threshold", nil, nil, nil)
		So(err, ShouldNotBeNil)
	})

	Convey("ReferenceDate reports the configured anchor date", t, func() {
		provider := NewAWSParameterStoreProvider(&fakeSSMClient{}, "2024-01-01")
		So(provider.ReferenceDate(), ShouldEqual, "2024-01-01")
	})
}
