package etcd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	clientv3 "go.etcd.io/etcd/client/v3"

	"github.com/Meesho/BharatMLStack/matrix-planner/internal/data/models"
	mperrors "github.com/Meesho/BharatMLStack/matrix-planner/internal/errors"
)

// EtcdProfileStore reads the deployed planner profile, a single JSON
// document under the service config prefix.
type EtcdProfileStore struct {
	client *clientv3.Client
}

func NewEtcdProfileStore(client *clientv3.Client) *EtcdProfileStore {
	return &EtcdProfileStore{client: client}
}

func (s *EtcdProfileStore) Load(ctx context.Context) (models.PlannerProfile, error) {
	key := profileKey()
	resp, err := s.client.Get(ctx, key)
	if err != nil {
		return models.PlannerProfile{}, err
	}
	if len(resp.Kvs) == 0 {
		return models.PlannerProfile{}, mperrors.ErrProfileNotFound
	}

	var profile models.PlannerProfile
	if err := json.Unmarshal(resp.Kvs[0].Value, &profile); err != nil {
		return models.PlannerProfile{}, fmt.Errorf("invalid planner profile at %s: %w", key, err)
	}
	return profile, nil
}

// Watch invokes onChange whenever the profile key is written. Runs until the
// context is cancelled; watch errors are logged and the stream resumes on
// the next event delivery.
func (s *EtcdProfileStore) Watch(ctx context.Context, onChange func() error) {
	key := profileKey()
	watchChan := s.client.Watch(ctx, key, clientv3.WithPrefix())
	go func() {
		for watchResp := range watchChan {
			if err := watchResp.Err(); err != nil {
				log.Error().Err(err).Str("key", key).Msg("planner profile watch error")
				continue
			}
			if len(watchResp.Events) == 0 {
				continue
			}
			if err := onChange(); err != nil {
				log.Error().Err(err).Str("key", key).Msg("planner profile refresh failed")
			}
		}
	}()
}

func profileKey() string {
	base := strings.TrimSpace(os.Getenv("ETCD_APP_NAME"))
	if base == "" {
		base = strings.TrimSpace(os.Getenv("APP_NAME"))
	}
	if base == "" {
		base = "matrix-planner"
	}
	return "/config/" + base + "/planner-profile"
}
