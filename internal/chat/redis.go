package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	dnderr "github.com/KirkDiggler/saves-helper/internal/errors"
	"github.com/KirkDiggler/saves-helper/internal/uuid"
)

const (
	messageKeyPrefix = "chat:message:"
	transcriptKey    = "chat:messages"
	sequenceKey      = "chat:seq"
)

// RedisStore keeps each message as a hash with one field per leaf, so a dotted patch
// only touches the fields under its path. The transcript order lives in a sorted set.
type RedisStore struct {
	client redis.UniversalClient
	ids    uuid.Generator
	now    func() time.Time
}

// RedisStoreConfig configures a RedisStore
type RedisStoreConfig struct {
	Client        redis.UniversalClient
	UUIDGenerator uuid.Generator
	Now           func() time.Time
}

// NewRedisStore creates a Redis backed store
func NewRedisStore(cfg *RedisStoreConfig) *RedisStore {
	if cfg == nil || cfg.Client == nil {
		panic("redis client is required")
	}

	store := &RedisStore{
		client: cfg.Client,
		ids:    cfg.UUIDGenerator,
		now:    cfg.Now,
	}
	if store.ids == nil {
		store.ids = uuid.NewGoogleUUIDGenerator()
	}
	if store.now == nil {
		store.now = time.Now
	}
	return store
}

func messageKey(id string) string {
	return messageKeyPrefix + id
}

// Create implements Store
func (r *RedisStore) Create(ctx context.Context, msg *Message) (*Message, error) {
	if msg == nil {
		return nil, dnderr.InvalidArgument("message is required")
	}

	stored := msg.Clone()
	if stored.ID == "" {
		stored.ID = r.ids.New()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = r.now()
	}
	stored.CreatedAt = stored.CreatedAt.UTC()

	key := messageKey(stored.ID)
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to check message %s: %w", stored.ID, err)
	}
	if exists > 0 {
		return nil, dnderr.InvalidArgumentf("message %s already exists", stored.ID)
	}

	fields, err := encodeMessage(stored)
	if err != nil {
		return nil, err
	}

	seq, err := r.client.Incr(ctx, sequenceKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to allocate transcript position: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key, hashArgs(fields)...)
	pipe.ZAdd(ctx, transcriptKey, redis.Z{Score: float64(seq), Member: stored.ID})
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create message %s: %w", stored.ID, err)
	}

	return decodeMessage(fields)
}

// Get implements Store
func (r *RedisStore) Get(ctx context.Context, id string) (*Message, error) {
	fields, err := r.client.HGetAll(ctx, messageKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get message %s: %w", id, err)
	}
	if len(fields) == 0 {
		return nil, dnderr.NotFoundf("message %s not found", id)
	}
	return decodeMessage(fields)
}

// maxUpdateAttempts bounds the optimistic retries when a watched message changes mid-update.
const maxUpdateAttempts = 5

// Update implements Store. The leaf fields are read under WATCH so a concurrent
// update that reshapes a subtree forces a retry instead of leaving orphans.
func (r *RedisStore) Update(ctx context.Context, id string, patch Patch) (*Message, error) {
	key := messageKey(id)
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := r.client.Watch(ctx, func(tx *redis.Tx) error {
			existing, err := tx.HKeys(ctx, key).Result()
			if err != nil {
				return fmt.Errorf("failed to read message %s: %w", id, err)
			}
			if len(existing) == 0 {
				return dnderr.NotFoundf("message %s not found", id)
			}

			sets, delFields, err := planUpdate(existing, patch)
			if err != nil {
				return err
			}
			if len(delFields) == 0 && len(sets) == 0 {
				return nil
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				if len(delFields) > 0 {
					pipe.HDel(ctx, key, delFields...)
				}
				if len(sets) > 0 {
					pipe.HSet(ctx, key, hashArgs(sets)...)
				}
				return nil
			})
			if err != nil {
				return fmt.Errorf("failed to update message %s: %w", id, err)
			}
			return nil
		}, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return r.Get(ctx, id)
	}
	return nil, dnderr.Unavailablef("message %s kept changing during update", id)
}

// planUpdate works out which hash fields a patch sets and which existing fields it
// removes. A field both removed and rewritten is only set.
func planUpdate(existing []string, patch Patch) (map[string]string, []string, error) {
	sets := make(map[string]string)
	dels := make(map[string]bool)
	for _, path := range patch.sortedPaths() {
		parts, err := splitPath(path)
		if err != nil {
			return nil, nil, err
		}

		for _, field := range existing {
			if overlaps(field, path) {
				dels[field] = true
			}
		}
		for field := range sets {
			if overlaps(field, path) {
				delete(sets, field)
			}
		}

		value := patch[path]
		if IsDeleted(value) {
			continue
		}

		if parts[0] == "flags" {
			normalized, err := normalize(value)
			if err != nil {
				return nil, nil, err
			}
			if err := flatten(path, normalized, sets); err != nil {
				return nil, nil, err
			}
			continue
		}

		if err := encodeTopLevel(parts[0], value, sets); err != nil {
			return nil, nil, err
		}
	}

	delFields := make([]string, 0, len(dels))
	for field := range dels {
		if _, overwritten := sets[field]; !overwritten {
			delFields = append(delFields, field)
		}
	}
	slices.Sort(delFields)
	return sets, delFields, nil
}

// Delete implements Store
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, messageKey(id))
	pipe.ZRem(ctx, transcriptKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete message %s: %w", id, err)
	}
	if del.Val() == 0 {
		return dnderr.NotFoundf("message %s not found", id)
	}
	return nil
}

// List implements Store
func (r *RedisStore) List(ctx context.Context) ([]*Message, error) {
	ids, err := r.client.ZRange(ctx, transcriptKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}

	messages := make([]*Message, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			msg, err := r.Get(ctx, id)
			if err != nil {
				if dnderr.IsNotFound(err) {
					return nil
				}
				return err
			}
			messages[i] = msg
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := messages[:0]
	for _, msg := range messages {
		if msg != nil {
			out = append(out, msg)
		}
	}
	return out, nil
}

// overlaps reports whether writing path must drop field: the field is the path,
// lies under it, or is a leaf ancestor of it.
func overlaps(field, path string) bool {
	return field == path ||
		strings.HasPrefix(field, path+".") ||
		strings.HasPrefix(path, field+".")
}

func hashArgs(fields map[string]string) []any {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	slices.Sort(names)

	args := make([]any, 0, len(fields)*2)
	for _, name := range names {
		args = append(args, name, fields[name])
	}
	return args
}

func flatten(prefix string, value any, out map[string]string) error {
	if m, ok := value.(map[string]any); ok && len(m) > 0 {
		for k, child := range m {
			if err := flatten(prefix+"."+k, child, out); err != nil {
				return err
			}
		}
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode field %s: %w", prefix, err)
	}
	out[prefix] = string(data)
	return nil
}

func putJSON(out map[string]string, field string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode field %s: %w", field, err)
	}
	out[field] = string(data)
	return nil
}

func encodeTopLevel(field string, value any, out map[string]string) error {
	scratch := &Message{}
	if err := applyTopLevel(scratch, field, value); err != nil {
		return err
	}
	switch field {
	case "content":
		return putJSON(out, field, scratch.Content)
	case "speaker":
		return putJSON(out, field, scratch.Speaker)
	case "whisper":
		return putJSON(out, field, scratch.Whisper)
	}
	return nil
}

func encodeMessage(msg *Message) (map[string]string, error) {
	fields := make(map[string]string)

	if err := putJSON(fields, "id", msg.ID); err != nil {
		return nil, err
	}
	if err := putJSON(fields, "author", msg.AuthorID); err != nil {
		return nil, err
	}
	if err := putJSON(fields, "speaker", msg.Speaker); err != nil {
		return nil, err
	}
	if err := putJSON(fields, "content", msg.Content); err != nil {
		return nil, err
	}
	if err := putJSON(fields, "createdAt", msg.CreatedAt.Format(time.RFC3339Nano)); err != nil {
		return nil, err
	}
	if len(msg.Rolls) > 0 {
		if err := putJSON(fields, "rolls", msg.Rolls); err != nil {
			return nil, err
		}
	}
	if msg.Attack != nil {
		if err := putJSON(fields, "attack", msg.Attack); err != nil {
			return nil, err
		}
	}
	if len(msg.Whisper) > 0 {
		if err := putJSON(fields, "whisper", msg.Whisper); err != nil {
			return nil, err
		}
	}
	if msg.Flags != nil {
		normalized, err := normalize(msg.Flags)
		if err != nil {
			return nil, err
		}
		if err := flatten("flags", normalized, fields); err != nil {
			return nil, err
		}
	}

	return fields, nil
}

func decodeMessage(fields map[string]string) (*Message, error) {
	msg := &Message{}
	var createdAt string

	for name, raw := range fields {
		var target any
		switch name {
		case "id":
			target = &msg.ID
		case "author":
			target = &msg.AuthorID
		case "speaker":
			target = &msg.Speaker
		case "content":
			target = &msg.Content
		case "createdAt":
			target = &createdAt
		case "rolls":
			target = &msg.Rolls
		case "attack":
			target = &msg.Attack
		case "whisper":
			target = &msg.Whisper
		}

		if target != nil {
			if err := json.Unmarshal([]byte(raw), target); err != nil {
				return nil, fmt.Errorf("failed to decode field %s: %w", name, err)
			}
			continue
		}

		if name != "flags" && !strings.HasPrefix(name, "flags.") {
			continue
		}

		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			return nil, fmt.Errorf("failed to decode field %s: %w", name, err)
		}
		if msg.Flags == nil {
			msg.Flags = make(map[string]any)
		}
		if name == "flags" {
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					msg.Flags[k] = v
				}
			}
			continue
		}
		setPath(msg.Flags, strings.Split(strings.TrimPrefix(name, "flags."), "."), value)
	}

	if createdAt != "" {
		t, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to decode createdAt: %w", err)
		}
		msg.CreatedAt = t
	}
	if msg.ID == "" {
		return nil, errors.New("stored message has no id")
	}

	return msg, nil
}
