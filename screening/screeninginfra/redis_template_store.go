package screeninginfra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/Abraxas-365/sift/pkg/kernel"
	"github.com/Abraxas-365/sift/screening"
)

const (
	templateKeyPrefix = "screening:template:"
	templateIndexKey  = "screening:templates"
)

// RedisTemplateStore keeps job description templates in Redis, one JSON value
// per template plus a set of known IDs for listing.
type RedisTemplateStore struct {
	client *redis.Client
}

func NewRedisTemplateStore(client *redis.Client) *RedisTemplateStore {
	return &RedisTemplateStore{client: client}
}

func templateKey(id kernel.TemplateID) string {
	return templateKeyPrefix + id.String()
}

func (s *RedisTemplateStore) Save(ctx context.Context, tpl *screening.JDTemplate) error {
	data, err := json.Marshal(tpl)
	if err != nil {
		return screening.ErrTemplateSaveFailed(err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, templateKey(tpl.ID), data, 0)
	pipe.SAdd(ctx, templateIndexKey, tpl.ID.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return screening.ErrTemplateSaveFailed(err)
	}
	return nil
}

func (s *RedisTemplateStore) Get(ctx context.Context, id kernel.TemplateID) (*screening.JDTemplate, error) {
	data, err := s.client.Get(ctx, templateKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, screening.ErrTemplateNotFound(id.String())
	}
	if err != nil {
		return nil, fmt.Errorf("get template %s: %w", id, err)
	}

	var tpl screening.JDTemplate
	if err := json.Unmarshal(data, &tpl); err != nil {
		return nil, fmt.Errorf("decode template %s: %w", id, err)
	}
	return &tpl, nil
}

func (s *RedisTemplateStore) List(ctx context.Context) ([]screening.JDTemplate, error) {
	ids, err := s.client.SMembers(ctx, templateIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	templates := make([]screening.JDTemplate, 0, len(ids))
	for _, id := range ids {
		tpl, err := s.Get(ctx, kernel.NewTemplateID(id))
		if err != nil {
			// Index entries without a value are stale, skip them.
			continue
		}
		templates = append(templates, *tpl)
	}
	return templates, nil
}

func (s *RedisTemplateStore) Delete(ctx context.Context, id kernel.TemplateID) error {
	pipe := s.client.TxPipeline()
	del := pipe.Del(ctx, templateKey(id))
	pipe.SRem(ctx, templateIndexKey, id.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete template %s: %w", id, err)
	}
	if del.Val() == 0 {
		return screening.ErrTemplateNotFound(id.String())
	}
	return nil
}
