package cloud

import (
	"context"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

// SecretStoreClient client for recording secrets in an external parameter store
type SecretStoreClient interface {
	/*
		PutSecret record one secret in the store.

		Other services reference the entry by name instead of receiving the
		value directly.

			@param ctxt context.Context - execution context
			@param name string - entry name
			@param value string - secret value
			@param description string - human readable entry description
	*/
	PutSecret(ctxt context.Context, name, value, description string) error
}

// ParameterStoreAPI the subset of the AWS SSM API consumed by SecretStoreClient
type ParameterStoreAPI interface {
	PutParameter(
		ctx context.Context,
		params *ssm.PutParameterInput,
		optFns ...func(*ssm.Options),
	) (*ssm.PutParameterOutput, error)
}

// secretStoreClientImpl implements SecretStoreClient
type secretStoreClientImpl struct {
	goutils.Component
	ssm ParameterStoreAPI
}

/*
NewSecretStoreClient define a new parameter store client

	@param api ParameterStoreAPI - core AWS SSM API client
	@returns new client
*/
func NewSecretStoreClient(api ParameterStoreAPI) (SecretStoreClient, error) {
	logTags := log.Fields{"module": "cloud", "component": "ssm-client"}
	return &secretStoreClientImpl{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		}, ssm: api,
	}, nil
}

func (c *secretStoreClientImpl) PutSecret(
	ctxt context.Context, name, value, description string,
) error {
	logTags := c.GetLogTagsForContext(ctxt)

	_, err := c.ssm.PutParameter(ctxt, &ssm.PutParameterInput{
		Name:        aws.String(name),
		Value:       aws.String(value),
		Description: aws.String(description),
		Type:        types.ParameterTypeString,
	})
	if err != nil {
		log.
			WithError(err).
			WithFields(logTags).
			WithField("entry-name", name).
			Error("Secret store write failed")
	}
	return err
}
