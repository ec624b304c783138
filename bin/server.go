package bin

import (
	"context"
	"net/http"

	"github.com/apex/log"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/medialive"
	"github.com/aws/aws-sdk-go-v2/service/mediapackage"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/mediamesh/livecast/api"
	"github.com/mediamesh/livecast/cloud"
	"github.com/mediamesh/livecast/common"
	"github.com/mediamesh/livecast/control"
	"github.com/mediamesh/livecast/db"
	"github.com/mediamesh/livecast/provision"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ServerNode livecast server node
type ServerNode struct {
	profileStore  provision.EncoderProfileStore
	MgmtAPIServer *http.Server
	MetricsServer *http.Server
}

/*
Cleanup stop and clean up the server node

	@param ctxt context.Context - execution context
*/
func (n ServerNode) Cleanup(ctxt context.Context) error {
	return n.profileStore.Stop(ctxt)
}

/*
DefineServerNode setup new livecast server node

	@param parentCtxt context.Context - parent execution context
	@param config common.ServerNodeConfig - server node configuration
	@param psqlPassword string - Postgres SQL user password
	@returns new server node
*/
func DefineServerNode(
	parentCtxt context.Context,
	config common.ServerNodeConfig,
	psqlPassword string,
) (ServerNode, error) {
	/*
		Steps for preparing the server node are

		* Prepare database
		* Prepare AWS provider clients
		* Prepare encoder profile store
		* Prepare stream provisioner
		* Prepare session manager
		* Prepare HTTP servers
	*/

	theNode := ServerNode{}

	// Define the persistence manager
	var sqlDialector gorm.Dialector
	if config.Database.Postgres != nil {
		dialector, err := db.GetPostgresDialector(*config.Database.Postgres, psqlPassword)
		if err != nil {
			log.WithError(err).Error("Failed to define Postgres connection DSN")
			return theNode, err
		}
		sqlDialector = dialector
	} else {
		sqlDialector = db.GetSqliteDialector(config.Database.Sqlite.DBFile)
	}
	dbManager, err := db.NewManager(sqlDialector, logger.Error)
	if err != nil {
		log.WithError(err).Error("Failed to define persistence manager")
		return theNode, err
	}

	// Define AWS provider clients
	awsCfg, err := awsconfig.LoadDefaultConfig(
		parentCtxt, awsconfig.WithRegion(config.AWS.Region),
	)
	if err != nil {
		log.WithError(err).Error("Failed to load AWS client configuration")
		return theNode, err
	}
	encodingClient, err := cloud.NewEncodingClient(medialive.NewFromConfig(awsCfg))
	if err != nil {
		log.WithError(err).Error("Failed to create encoding service client")
		return theNode, err
	}
	packagingClient, err := cloud.NewPackagingClient(mediapackage.NewFromConfig(awsCfg))
	if err != nil {
		log.WithError(err).Error("Failed to create packaging service client")
		return theNode, err
	}
	secretClient, err := cloud.NewSecretStoreClient(ssm.NewFromConfig(awsCfg))
	if err != nil {
		log.WithError(err).Error("Failed to create secret store client")
		return theNode, err
	}

	// Define encoder profile store
	profileStore, err := provision.NewEncoderProfileStore(config.EncoderProfiles.ProfileDir)
	if err != nil {
		log.WithError(err).Error("Failed to create encoder profile store")
		return theNode, err
	}
	if err := profileStore.Start(parentCtxt, parentCtxt); err != nil {
		log.WithError(err).Error("Failed to start encoder profile watcher")
		return theNode, err
	}
	theNode.profileStore = profileStore

	// Define metrics framework
	metricsRegistry := prometheus.NewRegistry()
	metricsRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	provisionMetrics := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "livecast_stream_provision_total",
		Help: "Total number of stream stack provisioning attempts",
	}, []string{"status"})
	metricsRegistry.MustRegister(provisionMetrics)

	// Define the stream provisioner
	provisioner, err := provision.NewStreamProvisioner(
		packagingClient,
		encodingClient,
		secretClient,
		profileStore,
		config.EncoderProfiles.DefaultProfile,
		config.MediaLive.RoleARN,
		provisionMetrics,
	)
	if err != nil {
		log.WithError(err).Error("Failed to create stream provisioner")
		return theNode, err
	}

	// Define the session manager
	sessionManager, err := control.NewSessionManager(dbManager, provisioner)
	if err != nil {
		log.WithError(err).Error("Failed to create session manager")
		return theNode, err
	}

	// Define session management API HTTP server
	mgmtAPIServer, err := api.BuildSessionManagementServer(
		config.Management.APIServer, config.Management.Callback, sessionManager,
	)
	if err != nil {
		log.WithError(err).Error("Failed to create session management API HTTP server")
		return theNode, err
	}
	theNode.MgmtAPIServer = mgmtAPIServer

	// Define metrics HTTP server
	metricsServer, err := api.BuildMetricsServer(
		config.Metrics.Server,
		promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{}),
		config.Metrics.MetricsEndpoint,
	)
	if err != nil {
		log.WithError(err).Error("Failed to create metrics HTTP server")
		return theNode, err
	}
	theNode.MetricsServer = metricsServer

	return theNode, nil
}
