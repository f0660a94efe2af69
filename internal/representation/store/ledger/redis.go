package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"counsel/internal/representation/models"
	id "counsel/pkg/domain"
	"counsel/pkg/platform/sentinel"
)

// Key layout:
//
//	application:{id}                 hash of the application fields
//	lawyer:{lawyerID}:pending        sorted set of pending ids, score = created_at unix micros
//	prisoner:{prisonerID}:applications  set of every application id of the prisoner
//	pending:{prisonerID}:{lawyerID}  id of the pair's pending application
func applicationKey(applicationID id.ApplicationID) string {
	return "application:" + applicationID.String()
}

func lawyerPendingKey(lawyerID id.LawyerID) string {
	return "lawyer:" + lawyerID.String() + ":pending"
}

func prisonerAppsKey(prisonerID id.PrisonerID) string {
	return "prisoner:" + prisonerID.String() + ":applications"
}

func pendingPairKey(prisonerID id.PrisonerID, lawyerID id.LawyerID) string {
	return "pending:" + prisonerID.String() + ":" + lawyerID.String()
}

// createScript claims the pair key with SET NX and writes the application in
// the same script. Returns 1 on insert, 0 when the pair already has a pending
// application, -1 when the id is taken.
var createScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[2]) == 1 then
	return -1
end
if not redis.call('SET', KEYS[1], ARGV[1], 'NX') then
	return 0
end
redis.call('HSET', KEYS[2],
	'id', ARGV[1], 'prisoner_id', ARGV[2], 'lawyer_id', ARGV[3], 'case_id', ARGV[4],
	'status', 'pending', 'created_at', ARGV[5], 'decided_at', '')
redis.call('ZADD', KEYS[3], ARGV[6], ARGV[1])
redis.call('SADD', KEYS[4], ARGV[1])
return 1
`)

// finalizeScript is the compare-and-swap on status. Returns 1 on transition,
// 0 when the application is already terminal, -1 when it does not exist.
var finalizeScript = redis.NewScript(`
local status = redis.call('HGET', KEYS[1], 'status')
if not status then
	return -1
end
if status ~= 'pending' then
	return 0
end
redis.call('HSET', KEYS[1], 'status', ARGV[1], 'decided_at', ARGV[2])
redis.call('ZREM', KEYS[2], ARGV[3])
if redis.call('GET', KEYS[3]) == ARGV[3] then
	redis.call('DEL', KEYS[3])
end
return 1
`)

// RedisStore keeps the ledger in Redis. All keys of one operation are
// touched by a single Lua script, so it needs a non-clustered deployment or
// hash-tagged keys.
type RedisStore struct {
	client redis.UniversalClient
}

func NewRedis(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Create(ctx context.Context, app *models.Application) error {
	caseID := ""
	if app.CaseID != nil {
		caseID = app.CaseID.String()
	}
	keys := []string{
		pendingPairKey(app.PrisonerID, app.LawyerID),
		applicationKey(app.ID),
		lawyerPendingKey(app.LawyerID),
		prisonerAppsKey(app.PrisonerID),
	}
	res, err := createScript.Run(ctx, s.client, keys,
		app.ID.String(), app.PrisonerID.String(), app.LawyerID.String(), caseID,
		formatTime(app.CreatedAt), app.CreatedAt.UnixMicro(),
	).Int()
	if err != nil {
		return classifyRedis("create application", err)
	}
	if res != 1 {
		return sentinel.ErrConflict
	}
	return nil
}

func (s *RedisStore) FindByID(ctx context.Context, applicationID id.ApplicationID) (*models.Application, error) {
	fields, err := s.client.HGetAll(ctx, applicationKey(applicationID)).Result()
	if err != nil {
		return nil, classifyRedis("find application", err)
	}
	if len(fields) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return decodeApplication(fields)
}

// ListPendingByLawyer reads the sorted set in score order. Equal scores come
// back in member order, which is id order.
func (s *RedisStore) ListPendingByLawyer(ctx context.Context, lawyerID id.LawyerID) ([]*models.Application, error) {
	ids, err := s.client.ZRange(ctx, lawyerPendingKey(lawyerID), 0, -1).Result()
	if err != nil {
		return nil, classifyRedis("list pending applications", err)
	}
	apps, err := s.loadAll(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := apps[:0]
	for _, app := range apps {
		if app.IsPending() {
			out = append(out, app)
		}
	}
	return out, nil
}

func (s *RedisStore) ListByPrisoner(ctx context.Context, prisonerID id.PrisonerID) ([]*models.Application, error) {
	ids, err := s.client.SMembers(ctx, prisonerAppsKey(prisonerID)).Result()
	if err != nil {
		return nil, classifyRedis("list prisoner applications", err)
	}
	apps, err := s.loadAll(ctx, ids)
	if err != nil {
		return nil, err
	}
	SortByCreated(apps)
	return apps, nil
}

// Finalize reads the immutable pair ids to build the key set, then runs the
// compare-and-swap script.
func (s *RedisStore) Finalize(ctx context.Context, applicationID id.ApplicationID, target models.Status, decidedAt time.Time) (*models.Application, error) {
	key := applicationKey(applicationID)
	vals, err := s.client.HMGet(ctx, key, "prisoner_id", "lawyer_id").Result()
	if err != nil {
		return nil, classifyRedis("finalize application", err)
	}
	rawPrisoner, _ := vals[0].(string)
	rawLawyer, _ := vals[1].(string)
	if rawPrisoner == "" || rawLawyer == "" {
		return nil, sentinel.ErrNotFound
	}
	prisonerID, err := id.ParsePrisonerID(rawPrisoner)
	if err != nil {
		return nil, fmt.Errorf("finalize application: %w", err)
	}
	lawyerID, err := id.ParseLawyerID(rawLawyer)
	if err != nil {
		return nil, fmt.Errorf("finalize application: %w", err)
	}

	keys := []string{key, lawyerPendingKey(lawyerID), pendingPairKey(prisonerID, lawyerID)}
	res, err := finalizeScript.Run(ctx, s.client, keys, string(target), formatTime(decidedAt), applicationID.String()).Int()
	if err != nil {
		return nil, classifyRedis("finalize application", err)
	}
	switch res {
	case -1:
		return nil, sentinel.ErrNotFound
	case 0:
		return nil, sentinel.ErrInvalidState
	}
	return s.FindByID(ctx, applicationID)
}

func (s *RedisStore) loadAll(ctx context.Context, ids []string) ([]*models.Application, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	pipe := s.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, raw := range ids {
		cmds[i] = pipe.HGetAll(ctx, "application:"+raw)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, classifyRedis("load applications", err)
	}

	out := make([]*models.Application, 0, len(ids))
	for _, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			continue
		}
		app, err := decodeApplication(fields)
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, nil
}

func decodeApplication(fields map[string]string) (*models.Application, error) {
	var (
		app models.Application
		err error
	)
	if app.ID, err = id.ParseApplicationID(fields["id"]); err != nil {
		return nil, fmt.Errorf("decode application: %w", err)
	}
	if app.PrisonerID, err = id.ParsePrisonerID(fields["prisoner_id"]); err != nil {
		return nil, fmt.Errorf("decode application: %w", err)
	}
	if app.LawyerID, err = id.ParseLawyerID(fields["lawyer_id"]); err != nil {
		return nil, fmt.Errorf("decode application: %w", err)
	}
	if raw := fields["case_id"]; raw != "" {
		caseID, err := id.ParseCaseID(raw)
		if err != nil {
			return nil, fmt.Errorf("decode application: %w", err)
		}
		app.CaseID = &caseID
	}
	app.Status = models.Status(fields["status"])
	if !app.Status.IsValid() {
		return nil, fmt.Errorf("decode application: unknown status %q", fields["status"])
	}
	if app.CreatedAt, err = time.Parse(time.RFC3339Nano, fields["created_at"]); err != nil {
		return nil, fmt.Errorf("decode application: %w", err)
	}
	if raw := fields["decided_at"]; raw != "" {
		decided, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, fmt.Errorf("decode application: %w", err)
		}
		app.DecidedAt = &decided
	}
	return &app, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func classifyRedis(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}
	if errors.Is(err, redis.ErrClosed) || isConnErr(err) {
		return fmt.Errorf("%s: %w: %w", op, sentinel.ErrUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
