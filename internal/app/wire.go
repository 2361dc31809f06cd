package app

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	etcdadapter "github.com/Meesho/BharatMLStack/matrix-planner/internal/adapters/etcd"
	"github.com/Meesho/BharatMLStack/matrix-planner/internal/adapters/redisq"
	"github.com/Meesho/BharatMLStack/matrix-planner/internal/api"
	"github.com/Meesho/BharatMLStack/matrix-planner/internal/application"
	mpconfig "github.com/Meesho/BharatMLStack/matrix-planner/internal/config"
	"github.com/Meesho/BharatMLStack/matrix-planner/internal/data/models"
	"github.com/Meesho/BharatMLStack/matrix-planner/internal/ports"
	"github.com/Meesho/BharatMLStack/matrix-planner/internal/types"
	"github.com/Meesho/BharatMLStack/matrix-planner/pkg/config"
)

func BuildHandler() (http.Handler, error) {
	envCfg := config.Instance()

	var store ports.ProfileStore
	var watchStore *etcdadapter.EtcdProfileStore

	if envCfg.UseMockAdapters {
		log.Warn().Msg("USE_MOCK_ADAPTERS=true, serving the built-in default planner profile")
		store = etcdadapter.NewMemoryProfileStore(defaultProfile())
	} else {
		log.Info().Strs("endpoints", envCfg.EtcdEndpoints).Dur("etcd_timeout", envCfg.EtcdTimeout).Msg("initializing etcd-backed profile store")
		etcdClient, err := etcdadapter.NewClient(etcdadapter.ClientConfig{
			Endpoints: envCfg.EtcdEndpoints,
			Username:  envCfg.EtcdUsername,
			Password:  envCfg.EtcdPassword,
			Timeout:   envCfg.EtcdTimeout,
		})
		if err != nil {
			return nil, err
		}
		watchStore = etcdadapter.NewEtcdProfileStore(etcdClient.Raw())
		store = watchStore
	}

	configManager, err := mpconfig.NewManager(store)
	if err != nil {
		return nil, err
	}
	if watchStore != nil {
		watchStore.Watch(context.Background(), configManager.Refresh)
	}

	publisher := redisq.NewInMemoryPublisher()
	planService := application.NewPlanService(configManager, publisher)
	handler := api.NewHandler(planService)

	mux := http.NewServeMux()
	handler.Register(mux)
	return mux, nil
}

// defaultProfile mirrors the collection defaults of the offline training
// pipeline: a single binary outcome label over active entities.
func defaultProfile() models.PlannerProfile {
	return models.PlannerProfile{
		LabelNames:      []string{"outcome"},
		LabelTypes:      []string{"binary"},
		States:          []string{types.DefaultActiveState},
		MatrixDirectory: "/data/matrices",
		CohortName:      types.DefaultCohortName,
	}
}
