package provision

import (
	"context"
	"fmt"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/mediamesh/livecast/cloud"
	"github.com/mediamesh/livecast/common"
	"github.com/prometheus/client_golang/prometheus"
)

// Marker tag identifying the input security group owned by this system.
// Provider accounts cap the number of input security groups, so one tagged
// group is created on first use and reused afterwards.
const (
	SecurityGroupMarkerTag      = "marsha_live"
	securityGroupMarkerTagValue = "1"
)

// allowAllCIDR the whitelist rule attached to the shared security group
const allowAllCIDR = "0.0.0.0/0"

// StreamProvisioner builds and operates the cloud resource stack backing a live stream
type StreamProvisioner interface {
	/*
		ResolveInputSecurityGroup find or create the shared input security group.

		Existing groups are scanned in provider returned order; the first one
		carrying the marker tag wins. Groups without the tag are never reused.

			@param ctxt context.Context - execution context
			@returns security group ID
	*/
	ResolveInputSecurityGroup(ctxt context.Context) (string, error)

	/*
		CreatePackagingChannel create the packaging channel for a stream key.

		Both sets of ingest credentials are registered in the secret store, and
		the two distribution endpoints are created on the channel.

			@param ctxt context.Context - execution context
			@param key string - stream key
			@returns the channel and its CMAF and DASH distribution endpoints
	*/
	CreatePackagingChannel(ctxt context.Context, key string) (
		cloud.PackagingChannel, cloud.OriginEndpoint, cloud.OriginEndpoint, error,
	)

	/*
		CreateIngestInput create the RTMP push input for a stream key

			@param ctxt context.Context - execution context
			@param key string - stream key
			@returns the new input
	*/
	CreateIngestInput(ctxt context.Context, key string) (cloud.PushInput, error)

	/*
		CreateEncodingChannel create the encoding channel binding an ingest input
		to a packaging channel's credentialed ingest endpoints

			@param ctxt context.Context - execution context
			@param key string - stream key
			@param input cloud.PushInput - the ingest input to attach as source
			@param packagingChannel cloud.PackagingChannel - the packaging channel to push to
			@returns the new channel
	*/
	CreateEncodingChannel(
		ctxt context.Context,
		key string,
		input cloud.PushInput,
		packagingChannel cloud.PackagingChannel,
	) (cloud.EncodingChannel, error)

	/*
		CreateLiveStream provision the complete resource stack for a stream key.

		Steps run strictly in order; the first failure aborts the sequence.
		Already created resources are not rolled back.

			@param ctxt context.Context - execution context
			@param key string - stream key
			@returns descriptor of all provisioned resources
	*/
	CreateLiveStream(ctxt context.Context, key string) (common.StreamResources, error)

	/*
		StartChannel start a previously created encoding channel.

		Fire-and-forget: channel state is not verified before or after.

			@param ctxt context.Context - execution context
			@param channelID string - encoding channel ID
	*/
	StartChannel(ctxt context.Context, channelID string) error
}

// streamProvisionerImpl implements StreamProvisioner
type streamProvisionerImpl struct {
	goutils.Component
	packaging   cloud.PackagingClient
	encoding    cloud.EncodingClient
	secrets     cloud.SecretStoreClient
	profiles    EncoderProfileStore
	profileName string
	roleARN     string

	/* Metrics Collection Agents */
	provisionMetrics *prometheus.CounterVec
}

/*
NewStreamProvisioner define a new stream provisioner

	@param packaging cloud.PackagingClient - packaging service client
	@param encoding cloud.EncodingClient - encoding service client
	@param secrets cloud.SecretStoreClient - secret store client
	@param profiles EncoderProfileStore - encoder profile store
	@param profileName string - encoder profile used for every channel
	@param roleARN string - service role identity for encoding channel creation
	@param provisionMetrics *prometheus.CounterVec - optionally, counter tracking
	    provisioning outcomes. Must carry a "status" label.
	@returns new StreamProvisioner
*/
func NewStreamProvisioner(
	packaging cloud.PackagingClient,
	encoding cloud.EncodingClient,
	secrets cloud.SecretStoreClient,
	profiles EncoderProfileStore,
	profileName string,
	roleARN string,
	provisionMetrics *prometheus.CounterVec,
) (StreamProvisioner, error) {
	return &streamProvisionerImpl{
		Component: goutils.Component{
			LogTags: log.Fields{"module": "provision", "component": "stream-provisioner"},
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		packaging:        packaging,
		encoding:         encoding,
		secrets:          secrets,
		profiles:         profiles,
		profileName:      profileName,
		roleARN:          roleARN,
		provisionMetrics: provisionMetrics,
	}, nil
}

func (p *streamProvisionerImpl) ResolveInputSecurityGroup(ctxt context.Context) (string, error) {
	logTags := p.GetLogTagsForContext(ctxt)

	existing, err := p.encoding.ListInputSecurityGroups(ctxt)
	if err != nil {
		return "", err
	}
	for _, group := range existing {
		if group.Tags[SecurityGroupMarkerTag] != "" {
			return group.ID, nil
		}
	}

	// List-then-create is not atomic. Concurrent first time callers can each
	// create a tagged group; later calls settle on whichever the provider
	// lists first. Accepted: the provider has no conditional create.
	created, err := p.encoding.CreateInputSecurityGroup(
		ctxt,
		[]string{allowAllCIDR},
		map[string]string{SecurityGroupMarkerTag: securityGroupMarkerTagValue},
	)
	if err != nil {
		return "", err
	}
	log.
		WithFields(logTags).
		WithField("security-group", created.ID).
		Info("Created shared input security group")
	return created.ID, nil
}

func (p *streamProvisionerImpl) CreatePackagingChannel(ctxt context.Context, key string) (
	cloud.PackagingChannel, cloud.OriginEndpoint, cloud.OriginEndpoint, error,
) {
	var cmafEndpoint, dashEndpoint cloud.OriginEndpoint
	logTags := p.GetLogTagsForContext(ctxt)

	channel, err := p.packaging.CreateChannel(ctxt, key)
	if err != nil {
		return channel, cmafEndpoint, dashEndpoint, err
	}

	// The ingest credentials go into the secret store under the ingest
	// username. The encoding channel later references the entry by name.
	if err := p.secrets.PutSecret(
		ctxt,
		channel.IngestEndpoints[0].Username,
		channel.IngestEndpoints[0].Password,
		fmt.Sprintf("%s MediaPackage Primary Ingest Username", key),
	); err != nil {
		return channel, cmafEndpoint, dashEndpoint, err
	}
	if err := p.secrets.PutSecret(
		ctxt,
		channel.IngestEndpoints[1].Username,
		channel.IngestEndpoints[1].Password,
		fmt.Sprintf("%s MediaPackage Secondary Ingest Username", key),
	); err != nil {
		return channel, cmafEndpoint, dashEndpoint, err
	}

	// The CMAF endpoint's client facing manifest keeps the original key as
	// its name rather than the derived endpoint ID.
	cmafEndpoint, err = p.packaging.CreateCMAFEndpoint(
		ctxt, channel.ID, fmt.Sprintf("%s-cmaf", channel.ID), key,
	)
	if err != nil {
		return channel, cmafEndpoint, dashEndpoint, err
	}

	dashEndpoint, err = p.packaging.CreateDASHEndpoint(
		ctxt, channel.ID, fmt.Sprintf("%s-dash", channel.ID),
	)
	if err != nil {
		return channel, cmafEndpoint, dashEndpoint, err
	}

	log.
		WithFields(logTags).
		WithField("key", key).
		WithField("channel-id", channel.ID).
		Info("Provisioned packaging channel")
	return channel, cmafEndpoint, dashEndpoint, nil
}

func (p *streamProvisionerImpl) CreateIngestInput(
	ctxt context.Context, key string,
) (cloud.PushInput, error) {
	securityGroupID, err := p.ResolveInputSecurityGroup(ctxt)
	if err != nil {
		return cloud.PushInput{}, err
	}

	return p.encoding.CreatePushInput(
		ctxt,
		key,
		[]string{securityGroupID},
		[]string{fmt.Sprintf("%s-primary", key), fmt.Sprintf("%s-secondary", key)},
	)
}

func (p *streamProvisionerImpl) CreateEncodingChannel(
	ctxt context.Context,
	key string,
	input cloud.PushInput,
	packagingChannel cloud.PackagingChannel,
) (cloud.EncodingChannel, error) {
	encoderSettings, err := p.profiles.Get(ctxt, p.profileName)
	if err != nil {
		return cloud.EncodingChannel{}, err
	}

	destinations := []cloud.EncodingDestination{}
	for _, endpoint := range packagingChannel.IngestEndpoints {
		destinations = append(destinations, cloud.EncodingDestination{
			URL:      endpoint.URL,
			Username: endpoint.Username,
			// Password referenced indirectly through the secret store entry
			PasswordParam: endpoint.Username,
		})
	}

	return p.encoding.CreateChannel(ctxt, cloud.EncodingChannelRequest{
		Name:            key,
		InputID:         input.ID,
		Destinations:    destinations,
		RoleARN:         p.roleARN,
		EncoderSettings: encoderSettings,
	})
}

func (p *streamProvisionerImpl) CreateLiveStream(
	ctxt context.Context, key string,
) (common.StreamResources, error) {
	var result common.StreamResources
	logTags := p.GetLogTagsForContext(ctxt)

	// Each step consumes the previous step's response. On failure the partial
	// stack is left in place for the operator to clean up.
	packagingChannel, cmafEndpoint, dashEndpoint, err := p.CreatePackagingChannel(ctxt, key)
	if err != nil {
		p.recordProvisionResult("failure")
		return result, err
	}

	input, err := p.CreateIngestInput(ctxt, key)
	if err != nil {
		p.recordProvisionResult("failure")
		return result, err
	}

	encodingChannel, err := p.CreateEncodingChannel(ctxt, key, input, packagingChannel)
	if err != nil {
		p.recordProvisionResult("failure")
		return result, err
	}

	result = common.StreamResources{
		MediaLive: common.MediaLiveResources{
			Input: common.MediaLiveInput{
				ID: input.ID,
				Endpoints: []string{
					input.Destinations[0].URL,
					input.Destinations[1].URL,
				},
			},
			Channel: common.MediaLiveChannel{ID: encodingChannel.ID},
		},
		MediaPackage: common.MediaPackageResources{
			Channel: common.MediaPackageChannel{ID: packagingChannel.ID},
			Endpoints: common.DistributionEndpoints{
				CMAF: common.DistributionEndpoint{ID: cmafEndpoint.ID, URL: cmafEndpoint.URL},
				DASH: common.DistributionEndpoint{ID: dashEndpoint.ID, URL: dashEndpoint.URL},
			},
		},
	}

	p.recordProvisionResult("success")
	log.
		WithFields(logTags).
		WithField("key", key).
		WithField("encoding-channel", encodingChannel.ID).
		WithField("packaging-channel", packagingChannel.ID).
		Info("Provisioned live stream stack")
	return result, nil
}

func (p *streamProvisionerImpl) StartChannel(ctxt context.Context, channelID string) error {
	logTags := p.GetLogTagsForContext(ctxt)

	if err := p.encoding.StartChannel(ctxt, channelID); err != nil {
		return err
	}
	log.WithFields(logTags).WithField("channel-id", channelID).Info("Started encoding channel")
	return nil
}

func (p *streamProvisionerImpl) recordProvisionResult(status string) {
	if p.provisionMetrics != nil {
		p.provisionMetrics.With(prometheus.Labels{"status": status}).Inc()
	}
}
