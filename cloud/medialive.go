package cloud

import (
	"context"
	"encoding/json"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/medialive"
	"github.com/aws/aws-sdk-go-v2/service/medialive/types"
)

// EncodingClient client for interacting with the managed encoding service
type EncodingClient interface {
	/*
		ListInputSecurityGroups list all input security groups known to the provider

			@param ctxt context.Context - execution context
			@returns security groups in provider returned order
	*/
	ListInputSecurityGroups(ctxt context.Context) ([]InputSecurityGroup, error)

	/*
		CreateInputSecurityGroup create a new input security group

			@param ctxt context.Context - execution context
			@param whitelistCIDRs []string - CIDR whitelist rules
			@param tags map[string]string - resource tags
			@returns the new security group
	*/
	CreateInputSecurityGroup(
		ctxt context.Context, whitelistCIDRs []string, tags map[string]string,
	) (InputSecurityGroup, error)

	/*
		CreatePushInput create a new RTMP push ingest input

			@param ctxt context.Context - execution context
			@param name string - input name
			@param securityGroupIDs []string - security groups to attach
			@param streamNames []string - destination stream names, primary first
			@returns the new input
	*/
	CreatePushInput(
		ctxt context.Context, name string, securityGroupIDs, streamNames []string,
	) (PushInput, error)

	/*
		CreateChannel create a new encoding channel

			@param ctxt context.Context - execution context
			@param request EncodingChannelRequest - channel parameters
			@returns the new channel
	*/
	CreateChannel(ctxt context.Context, request EncodingChannelRequest) (EncodingChannel, error)

	/*
		StartChannel start an existing encoding channel

			@param ctxt context.Context - execution context
			@param channelID string - channel ID
	*/
	StartChannel(ctxt context.Context, channelID string) error
}

// MediaLiveAPI the subset of the AWS MediaLive API consumed by EncodingClient
type MediaLiveAPI interface {
	ListInputSecurityGroups(
		ctx context.Context,
		params *medialive.ListInputSecurityGroupsInput,
		optFns ...func(*medialive.Options),
	) (*medialive.ListInputSecurityGroupsOutput, error)
	CreateInputSecurityGroup(
		ctx context.Context,
		params *medialive.CreateInputSecurityGroupInput,
		optFns ...func(*medialive.Options),
	) (*medialive.CreateInputSecurityGroupOutput, error)
	CreateInput(
		ctx context.Context,
		params *medialive.CreateInputInput,
		optFns ...func(*medialive.Options),
	) (*medialive.CreateInputOutput, error)
	CreateChannel(
		ctx context.Context,
		params *medialive.CreateChannelInput,
		optFns ...func(*medialive.Options),
	) (*medialive.CreateChannelOutput, error)
	StartChannel(
		ctx context.Context,
		params *medialive.StartChannelInput,
		optFns ...func(*medialive.Options),
	) (*medialive.StartChannelOutput, error)
}

// encodingClientImpl implements EncodingClient
type encodingClientImpl struct {
	goutils.Component
	medialive MediaLiveAPI
}

/*
NewEncodingClient define a new encoding service client

	@param api MediaLiveAPI - core AWS MediaLive API client
	@returns new client
*/
func NewEncodingClient(api MediaLiveAPI) (EncodingClient, error) {
	logTags := log.Fields{"module": "cloud", "component": "medialive-client"}
	return &encodingClientImpl{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		}, medialive: api,
	}, nil
}

func (c *encodingClientImpl) ListInputSecurityGroups(
	ctxt context.Context,
) ([]InputSecurityGroup, error) {
	resp, err := c.medialive.ListInputSecurityGroups(
		ctxt, &medialive.ListInputSecurityGroupsInput{},
	)
	if err != nil {
		return nil, err
	}
	result := []InputSecurityGroup{}
	for _, group := range resp.InputSecurityGroups {
		result = append(result, InputSecurityGroup{
			ID: aws.ToString(group.Id), Tags: group.Tags,
		})
	}
	return result, nil
}

func (c *encodingClientImpl) CreateInputSecurityGroup(
	ctxt context.Context, whitelistCIDRs []string, tags map[string]string,
) (InputSecurityGroup, error) {
	var result InputSecurityGroup

	rules := []types.InputWhitelistRuleCidr{}
	for _, cidr := range whitelistCIDRs {
		rules = append(rules, types.InputWhitelistRuleCidr{Cidr: aws.String(cidr)})
	}

	resp, err := c.medialive.CreateInputSecurityGroup(
		ctxt, &medialive.CreateInputSecurityGroupInput{WhitelistRules: rules, Tags: tags},
	)
	if err != nil {
		return result, err
	}

	result.ID = aws.ToString(resp.SecurityGroup.Id)
	result.Tags = resp.SecurityGroup.Tags
	return result, nil
}

func (c *encodingClientImpl) CreatePushInput(
	ctxt context.Context, name string, securityGroupIDs, streamNames []string,
) (PushInput, error) {
	var result PushInput
	logTags := c.GetLogTagsForContext(ctxt)

	destinations := []types.InputDestinationRequest{}
	for _, streamName := range streamNames {
		destinations = append(
			destinations, types.InputDestinationRequest{StreamName: aws.String(streamName)},
		)
	}

	resp, err := c.medialive.CreateInput(ctxt, &medialive.CreateInputInput{
		Name:                aws.String(name),
		Type:                types.InputTypeRtmpPush,
		InputSecurityGroups: securityGroupIDs,
		Destinations:        destinations,
	})
	if err != nil {
		return result, err
	}

	result.ID = aws.ToString(resp.Input.Id)
	for _, destination := range resp.Input.Destinations {
		result.Destinations = append(
			result.Destinations, InputDestination{URL: aws.ToString(destination.Url)},
		)
	}
	log.
		WithFields(logTags).
		WithField("input-id", result.ID).
		Debug("Created new push input")
	return result, nil
}

func (c *encodingClientImpl) CreateChannel(
	ctxt context.Context, request EncodingChannelRequest,
) (EncodingChannel, error) {
	var result EncodingChannel
	logTags := c.GetLogTagsForContext(ctxt)

	// The encoder profile document is opaque to this system. It is decoded
	// into the provider request structure without interpretation.
	var encoderSettings types.EncoderSettings
	if err := json.Unmarshal(request.EncoderSettings, &encoderSettings); err != nil {
		log.WithError(err).WithFields(logTags).Error("Unable to decode encoder profile document")
		return result, err
	}

	sinkSettings := []types.OutputDestinationSettings{}
	for _, destination := range request.Destinations {
		sinkSettings = append(sinkSettings, types.OutputDestinationSettings{
			PasswordParam: aws.String(destination.PasswordParam),
			Url:           aws.String(destination.URL),
			Username:      aws.String(destination.Username),
		})
	}

	resp, err := c.medialive.CreateChannel(ctxt, &medialive.CreateChannelInput{
		InputSpecification: &types.InputSpecification{
			Codec:          types.InputCodecAvc,
			Resolution:     types.InputResolutionHd,
			MaximumBitrate: types.InputMaximumBitrateMax10Mbps,
		},
		InputAttachments: []types.InputAttachment{
			{InputId: aws.String(request.InputID)},
		},
		Destinations: []types.OutputDestination{
			{Id: aws.String("destination1"), Settings: sinkSettings},
		},
		Name:            aws.String(request.Name),
		RoleArn:         aws.String(request.RoleARN),
		EncoderSettings: &encoderSettings,
	})
	if err != nil {
		return result, err
	}

	result.ID = aws.ToString(resp.Channel.Id)
	log.
		WithFields(logTags).
		WithField("channel-id", result.ID).
		Debug("Created new encoding channel")
	return result, nil
}

func (c *encodingClientImpl) StartChannel(ctxt context.Context, channelID string) error {
	_, err := c.medialive.StartChannel(
		ctxt, &medialive.StartChannelInput{ChannelId: aws.String(channelID)},
	)
	return err
}
