package cloud_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/apex/log"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/medialive"
	"github.com/aws/aws-sdk-go-v2/service/medialive/types"
	"github.com/mediamesh/livecast/cloud"
	"github.com/stretchr/testify/assert"
)

// fakeMediaLiveAPI test double recording the request passed to each call
type fakeMediaLiveAPI struct {
	listSecurityGroups func(
		*medialive.ListInputSecurityGroupsInput,
	) (*medialive.ListInputSecurityGroupsOutput, error)
	createSecurityGroup func(
		*medialive.CreateInputSecurityGroupInput,
	) (*medialive.CreateInputSecurityGroupOutput, error)
	createInput   func(*medialive.CreateInputInput) (*medialive.CreateInputOutput, error)
	createChannel func(*medialive.CreateChannelInput) (*medialive.CreateChannelOutput, error)
	startChannel  func(*medialive.StartChannelInput) (*medialive.StartChannelOutput, error)
}

func (f *fakeMediaLiveAPI) ListInputSecurityGroups(
	_ context.Context,
	params *medialive.ListInputSecurityGroupsInput,
	_ ...func(*medialive.Options),
) (*medialive.ListInputSecurityGroupsOutput, error) {
	return f.listSecurityGroups(params)
}

func (f *fakeMediaLiveAPI) CreateInputSecurityGroup(
	_ context.Context,
	params *medialive.CreateInputSecurityGroupInput,
	_ ...func(*medialive.Options),
) (*medialive.CreateInputSecurityGroupOutput, error) {
	return f.createSecurityGroup(params)
}

func (f *fakeMediaLiveAPI) CreateInput(
	_ context.Context,
	params *medialive.CreateInputInput,
	_ ...func(*medialive.Options),
) (*medialive.CreateInputOutput, error) {
	return f.createInput(params)
}

func (f *fakeMediaLiveAPI) CreateChannel(
	_ context.Context,
	params *medialive.CreateChannelInput,
	_ ...func(*medialive.Options),
) (*medialive.CreateChannelOutput, error) {
	return f.createChannel(params)
}

func (f *fakeMediaLiveAPI) StartChannel(
	_ context.Context,
	params *medialive.StartChannelInput,
	_ ...func(*medialive.Options),
) (*medialive.StartChannelOutput, error) {
	return f.startChannel(params)
}

func TestEncodingClientSecurityGroups(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)
	utCtxt := context.Background()

	fakeAPI := &fakeMediaLiveAPI{}

	uut, err := cloud.NewEncodingClient(fakeAPI)
	assert.Nil(err)

	// Case 0: list returns groups in provider order
	{
		fakeAPI.listSecurityGroups = func(
			params *medialive.ListInputSecurityGroupsInput,
		) (*medialive.ListInputSecurityGroupsOutput, error) {
			return &medialive.ListInputSecurityGroupsOutput{
				InputSecurityGroups: []types.InputSecurityGroup{
					{Id: aws.String("group-0"), Tags: map[string]string{}},
					{Id: aws.String("group-1"), Tags: map[string]string{"marker": "1"}},
				},
			}, nil
		}

		groups, err := uut.ListInputSecurityGroups(utCtxt)
		assert.Nil(err)
		assert.Len(groups, 2)
		assert.Equal("group-0", groups[0].ID)
		assert.Equal("group-1", groups[1].ID)
		assert.Equal("1", groups[1].Tags["marker"])
	}

	// Case 1: create passes the whitelist and tags through
	{
		fakeAPI.createSecurityGroup = func(
			params *medialive.CreateInputSecurityGroupInput,
		) (*medialive.CreateInputSecurityGroupOutput, error) {
			assert.Len(params.WhitelistRules, 1)
			assert.Equal("0.0.0.0/0", aws.ToString(params.WhitelistRules[0].Cidr))
			assert.Equal(map[string]string{"marker": "1"}, params.Tags)
			return &medialive.CreateInputSecurityGroupOutput{
				SecurityGroup: &types.InputSecurityGroup{
					Id: aws.String("group-new"), Tags: params.Tags,
				},
			}, nil
		}

		group, err := uut.CreateInputSecurityGroup(
			utCtxt, []string{"0.0.0.0/0"}, map[string]string{"marker": "1"},
		)
		assert.Nil(err)
		assert.Equal("group-new", group.ID)
	}
}

func TestEncodingClientCreatePushInput(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)
	utCtxt := context.Background()

	fakeAPI := &fakeMediaLiveAPI{}
	fakeAPI.createInput = func(
		params *medialive.CreateInputInput,
	) (*medialive.CreateInputOutput, error) {
		assert.Equal("video-key", aws.ToString(params.Name))
		assert.Equal(types.InputTypeRtmpPush, params.Type)
		assert.Equal([]string{"security_group_1"}, params.InputSecurityGroups)
		assert.Len(params.Destinations, 2)
		assert.Equal("video-key-primary", aws.ToString(params.Destinations[0].StreamName))
		assert.Equal("video-key-secondary", aws.ToString(params.Destinations[1].StreamName))
		return &medialive.CreateInputOutput{
			Input: &types.Input{
				Id: aws.String("input1"),
				Destinations: []types.InputDestination{
					{Url: aws.String("rtmp://destination1/video-key-primary")},
					{Url: aws.String("rtmp://destination2/video-key-secondary")},
				},
			},
		}, nil
	}

	uut, err := cloud.NewEncodingClient(fakeAPI)
	assert.Nil(err)

	input, err := uut.CreatePushInput(
		utCtxt,
		"video-key",
		[]string{"security_group_1"},
		[]string{"video-key-primary", "video-key-secondary"},
	)
	assert.Nil(err)
	assert.Equal("input1", input.ID)
	assert.Len(input.Destinations, 2)
	assert.Equal("rtmp://destination1/video-key-primary", input.Destinations[0].URL)
}

func TestEncodingClientCreateChannel(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)
	utCtxt := context.Background()

	testProfile := json.RawMessage(`{
		"timecodeConfig": {"source": "EMBEDDED"},
		"audioDescriptions": []
	}`)

	fakeAPI := &fakeMediaLiveAPI{}
	fakeAPI.createChannel = func(
		params *medialive.CreateChannelInput,
	) (*medialive.CreateChannelOutput, error) {
		assert.Equal("video-key", aws.ToString(params.Name))
		assert.Equal("test-role-arn", aws.ToString(params.RoleArn))
		// Fixed input specification
		assert.Equal(types.InputCodecAvc, params.InputSpecification.Codec)
		assert.Equal(types.InputResolutionHd, params.InputSpecification.Resolution)
		assert.Equal(types.InputMaximumBitrateMax10Mbps, params.InputSpecification.MaximumBitrate)
		// Input attachment
		assert.Len(params.InputAttachments, 1)
		assert.Equal("input1", aws.ToString(params.InputAttachments[0].InputId))
		// Single destination group with the well known ID
		assert.Len(params.Destinations, 1)
		assert.Equal("destination1", aws.ToString(params.Destinations[0].Id))
		assert.Len(params.Destinations[0].Settings, 2)
		for idx, settings := range params.Destinations[0].Settings {
			// The password field must carry the secret store entry name
			assert.Equal(
				aws.ToString(settings.Username), aws.ToString(settings.PasswordParam), "idx %d", idx,
			)
		}
		// Encoder profile decoded into the provider request
		assert.Equal(types.TimecodeConfigSourceEmbedded, params.EncoderSettings.TimecodeConfig.Source)
		return &medialive.CreateChannelOutput{
			Channel: &types.Channel{Id: aws.String("medialive_channel1")},
		}, nil
	}

	uut, err := cloud.NewEncodingClient(fakeAPI)
	assert.Nil(err)

	channel, err := uut.CreateChannel(utCtxt, cloud.EncodingChannelRequest{
		Name:    "video-key",
		InputID: "input1",
		Destinations: []cloud.EncodingDestination{
			{URL: "https://ingest0/channel", Username: "user0", PasswordParam: "user0"},
			{URL: "https://ingest1/channel", Username: "user1", PasswordParam: "user1"},
		},
		RoleARN:         "test-role-arn",
		EncoderSettings: testProfile,
	})
	assert.Nil(err)
	assert.Equal("medialive_channel1", channel.ID)

	// Case 1: malformed encoder profile
	{
		_, err := uut.CreateChannel(utCtxt, cloud.EncodingChannelRequest{
			Name:            "video-key",
			InputID:         "input1",
			RoleARN:         "test-role-arn",
			EncoderSettings: json.RawMessage(`{not json`),
		})
		assert.NotNil(err)
	}
}

func TestEncodingClientStartChannel(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)
	utCtxt := context.Background()

	fakeAPI := &fakeMediaLiveAPI{}
	fakeAPI.startChannel = func(
		params *medialive.StartChannelInput,
	) (*medialive.StartChannelOutput, error) {
		assert.Equal("medialive_channel1", aws.ToString(params.ChannelId))
		return &medialive.StartChannelOutput{}, nil
	}

	uut, err := cloud.NewEncodingClient(fakeAPI)
	assert.Nil(err)

	assert.Nil(uut.StartChannel(utCtxt, "medialive_channel1"))
}
