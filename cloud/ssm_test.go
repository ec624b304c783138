package cloud_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/apex/log"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/mediamesh/livecast/cloud"
	"github.com/stretchr/testify/assert"
)

// fakeParameterStoreAPI test double recording the request passed to each call
type fakeParameterStoreAPI struct {
	putParameter func(*ssm.PutParameterInput) (*ssm.PutParameterOutput, error)
}

func (f *fakeParameterStoreAPI) PutParameter(
	_ context.Context,
	params *ssm.PutParameterInput,
	_ ...func(*ssm.Options),
) (*ssm.PutParameterOutput, error) {
	return f.putParameter(params)
}

func TestSecretStoreClientPutSecret(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)
	utCtxt := context.Background()

	fakeAPI := &fakeParameterStoreAPI{}

	uut, err := cloud.NewSecretStoreClient(fakeAPI)
	assert.Nil(err)

	// Case 0: entry recorded under the given name
	{
		fakeAPI.putParameter = func(params *ssm.PutParameterInput) (*ssm.PutParameterOutput, error) {
			assert.Equal("user1", aws.ToString(params.Name))
			assert.Equal("pass1", aws.ToString(params.Value))
			assert.Equal(
				"video-key MediaPackage Primary Ingest Username", aws.ToString(params.Description),
			)
			assert.Equal(types.ParameterTypeString, params.Type)
			return &ssm.PutParameterOutput{Version: 1}, nil
		}

		assert.Nil(uut.PutSecret(
			utCtxt, "user1", "pass1", "video-key MediaPackage Primary Ingest Username",
		))
	}

	// Case 1: store failure propagates
	{
		fakeAPI.putParameter = func(params *ssm.PutParameterInput) (*ssm.PutParameterOutput, error) {
			return nil, fmt.Errorf("dummy error")
		}

		assert.NotNil(uut.PutSecret(utCtxt, "user1", "pass1", "description"))
	}
}
