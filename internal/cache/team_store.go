package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"quadplus/api/internal/models"
)

const teamMembersKey = "quadplus:team-members"

// TeamStore keeps the team register's persisted snapshot under a single key:
// a plain serialized list of members, read once at startup and rewritten
// after every change. There is no schema versioning.
type TeamStore struct {
	client *redis.Client
}

func NewTeamStore(client *redis.Client) *TeamStore {
	return &TeamStore{client: client}
}

func (t *TeamStore) Save(ctx context.Context, members []models.TeamMember) error {
	data, err := json.Marshal(members)
	if err != nil {
		return fmt.Errorf("marshal team members: %w", err)
	}
	if err := t.client.Set(ctx, teamMembersKey, data, 0).Err(); err != nil {
		return fmt.Errorf("save team members: %w", err)
	}
	return nil
}

func (t *TeamStore) Load(ctx context.Context) ([]models.TeamMember, error) {
	data, err := t.client.Get(ctx, teamMembersKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load team members: %w", err)
	}

	var members []models.TeamMember
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, fmt.Errorf("unmarshal team members: %w", err)
	}
	return members, nil
}
