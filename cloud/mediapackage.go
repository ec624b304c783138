package cloud

import (
	"context"
	"fmt"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/mediapackage"
	"github.com/aws/aws-sdk-go-v2/service/mediapackage/types"
)

// PackagingClient client for interacting with the managed packaging / distribution service
type PackagingClient interface {
	/*
		CreateChannel create a new packaging channel

			@param ctxt context.Context - execution context
			@param id string - channel ID
			@returns the new channel with its ingest endpoints
	*/
	CreateChannel(ctxt context.Context, id string) (PackagingChannel, error)

	/*
		CreateCMAFEndpoint create a CMAF distribution endpoint on a channel.

		The endpoint serves an HLS manifest over CMAF segments: 6 sec segments,
		EVENT style playlist with a 60 sec window, passthrough ad markers.

			@param ctxt context.Context - execution context
			@param channelID string - parent channel ID
			@param endpointID string - endpoint ID
			@param manifestName string - name of the client facing HLS manifest
			@returns the new endpoint
	*/
	CreateCMAFEndpoint(
		ctxt context.Context, channelID, endpointID, manifestName string,
	) (OriginEndpoint, error)

	/*
		CreateDASHEndpoint create a DASH distribution endpoint on a channel.

		The endpoint serves a DASH manifest: 2 sec segments, 60 sec manifest
		window, no DRM profile, full manifest layout with number-with-timeline
		segment templates.

			@param ctxt context.Context - execution context
			@param channelID string - parent channel ID
			@param endpointID string - endpoint ID
			@returns the new endpoint
	*/
	CreateDASHEndpoint(ctxt context.Context, channelID, endpointID string) (OriginEndpoint, error)
}

// MediaPackageAPI the subset of the AWS MediaPackage API consumed by PackagingClient
type MediaPackageAPI interface {
	CreateChannel(
		ctx context.Context,
		params *mediapackage.CreateChannelInput,
		optFns ...func(*mediapackage.Options),
	) (*mediapackage.CreateChannelOutput, error)
	CreateOriginEndpoint(
		ctx context.Context,
		params *mediapackage.CreateOriginEndpointInput,
		optFns ...func(*mediapackage.Options),
	) (*mediapackage.CreateOriginEndpointOutput, error)
}

// packagingClientImpl implements PackagingClient
type packagingClientImpl struct {
	goutils.Component
	mediapackage MediaPackageAPI
}

/*
NewPackagingClient define a new packaging service client

	@param api MediaPackageAPI - core AWS MediaPackage API client
	@returns new client
*/
func NewPackagingClient(api MediaPackageAPI) (PackagingClient, error) {
	logTags := log.Fields{"module": "cloud", "component": "mediapackage-client"}
	return &packagingClientImpl{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		}, mediapackage: api,
	}, nil
}

func (c *packagingClientImpl) CreateChannel(
	ctxt context.Context, id string,
) (PackagingChannel, error) {
	var result PackagingChannel
	logTags := c.GetLogTagsForContext(ctxt)

	resp, err := c.mediapackage.CreateChannel(
		ctxt, &mediapackage.CreateChannelInput{Id: aws.String(id)},
	)
	if err != nil {
		return result, err
	}
	if resp.HlsIngest == nil || len(resp.HlsIngest.IngestEndpoints) < 2 {
		return result, fmt.Errorf(
			"packaging channel '%s' created without the expected two ingest endpoints", id,
		)
	}

	result.ID = aws.ToString(resp.Id)
	for _, endpoint := range resp.HlsIngest.IngestEndpoints {
		result.IngestEndpoints = append(result.IngestEndpoints, IngestEndpoint{
			ID:       aws.ToString(endpoint.Id),
			URL:      aws.ToString(endpoint.Url),
			Username: aws.ToString(endpoint.Username),
			Password: aws.ToString(endpoint.Password),
		})
	}
	log.
		WithFields(logTags).
		WithField("channel-id", result.ID).
		Debug("Created new packaging channel")
	return result, nil
}

func (c *packagingClientImpl) CreateCMAFEndpoint(
	ctxt context.Context, channelID, endpointID, manifestName string,
) (OriginEndpoint, error) {
	var result OriginEndpoint

	resp, err := c.mediapackage.CreateOriginEndpoint(
		ctxt, &mediapackage.CreateOriginEndpointInput{
			ChannelId:              aws.String(channelID),
			Id:                     aws.String(endpointID),
			ManifestName:           aws.String(endpointID),
			StartoverWindowSeconds: aws.Int32(0),
			TimeDelaySeconds:       aws.Int32(0),
			CmafPackage: &types.CmafPackageCreateOrUpdateParameters{
				HlsManifests: []types.HlsManifestCreateOrUpdateParameters{
					{
						Id:                             aws.String(fmt.Sprintf("%s-hls", endpointID)),
						AdMarkers:                      types.AdMarkersPassthrough,
						IncludeIframeOnlyStream:        aws.Bool(false),
						ManifestName:                   aws.String(manifestName),
						PlaylistType:                   types.PlaylistTypeEvent,
						PlaylistWindowSeconds:          aws.Int32(60),
						ProgramDateTimeIntervalSeconds: aws.Int32(0),
					},
				},
				SegmentDurationSeconds: aws.Int32(6),
				SegmentPrefix:          aws.String(channelID),
			},
		},
	)
	if err != nil {
		return result, err
	}
	if resp.CmafPackage == nil || len(resp.CmafPackage.HlsManifests) == 0 {
		return result, fmt.Errorf(
			"CMAF endpoint '%s' created without an HLS manifest", endpointID,
		)
	}

	// The playable URL of a CMAF endpoint lives on its HLS manifest
	result.ID = aws.ToString(resp.Id)
	result.URL = aws.ToString(resp.CmafPackage.HlsManifests[0].Url)
	return result, nil
}

func (c *packagingClientImpl) CreateDASHEndpoint(
	ctxt context.Context, channelID, endpointID string,
) (OriginEndpoint, error) {
	var result OriginEndpoint

	resp, err := c.mediapackage.CreateOriginEndpoint(
		ctxt, &mediapackage.CreateOriginEndpointInput{
			ChannelId:              aws.String(channelID),
			Id:                     aws.String(endpointID),
			ManifestName:           aws.String(endpointID),
			StartoverWindowSeconds: aws.Int32(0),
			TimeDelaySeconds:       aws.Int32(0),
			DashPackage: &types.DashPackage{
				SegmentDurationSeconds:            aws.Int32(2),
				ManifestWindowSeconds:             aws.Int32(60),
				Profile:                           types.ProfileNone,
				MinUpdatePeriodSeconds:            aws.Int32(15),
				MinBufferTimeSeconds:              aws.Int32(30),
				SuggestedPresentationDelaySeconds: aws.Int32(25),
				PeriodTriggers:                    []types.PeriodTriggersElement{},
				ManifestLayout:                    types.ManifestLayoutFull,
				SegmentTemplateFormat:             types.SegmentTemplateFormatNumberWithTimeline,
			},
		},
	)
	if err != nil {
		return result, err
	}

	result.ID = aws.ToString(resp.Id)
	result.URL = aws.ToString(resp.Url)
	return result, nil
}
