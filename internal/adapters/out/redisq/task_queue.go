// Package redisq keeps delayed tasks in Redis and publishes notifications over
// Redis pub/sub.
//
// Task layout under a key prefix:
//
//	<prefix>:delay   ZSET  task id -> run time (unix ms)
//	<prefix>:leased  ZSET  task id -> lease expiry (unix ms)
//	<prefix>:data    HASH  task id -> task JSON
//	<prefix>:dead    HASH  task id -> task JSON with the last error
//
// A task lives in exactly one of delay and leased until it is acked or dead-lettered.
package redisq

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"jobmatch/internal/core/ports"

	"github.com/google/uuid"
	r "github.com/redis/go-redis/v9"
)

// leaseScript moves due tasks from the delay set to the leased set atomically and
// returns their ids. Expired leases are put back first so a crashed consumer's tasks
// run again.
var leaseScript = r.NewScript(`
local expired = redis.call('ZRANGEBYSCORE', KEYS[2], '-inf', ARGV[1])
for _, id in ipairs(expired) do
  redis.call('ZREM', KEYS[2], id)
  redis.call('ZADD', KEYS[1], ARGV[1], id)
end
local ids = redis.call('ZRANGEBYSCORE', KEYS[1], '-inf', ARGV[1], 'LIMIT', 0, tonumber(ARGV[3]))
for _, id in ipairs(ids) do
  redis.call('ZREM', KEYS[1], id)
  redis.call('ZADD', KEYS[2], ARGV[2], id)
end
return ids
`)

// TaskQueue implements ports.TaskQueue on Redis sorted sets.
type TaskQueue struct {
	rdb    *r.Client
	prefix string
	lease  time.Duration
	now    func() time.Time
}

// NewTaskQueue creates a queue under prefix. lease bounds how long a consumer may
// hold a task before it becomes due again.
func NewTaskQueue(rdb *r.Client, prefix string, lease time.Duration, now func() time.Time) *TaskQueue {
	if now == nil {
		now = time.Now
	}
	return &TaskQueue{rdb: rdb, prefix: prefix, lease: lease, now: now}
}

func (q *TaskQueue) key(name string) string {
	return q.prefix + ":" + name
}

// ScheduleOnce stores the task and arms it delay from now.
func (q *TaskQueue) ScheduleOnce(ctx context.Context, task ports.Task, delay time.Duration) error {
	if err := task.JobID.Validate(); err != nil {
		return err
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	task.RunAt = q.now().Add(delay).UTC()

	raw, err := encodeTask(task, "")
	if err != nil {
		return err
	}

	pipe := q.rdb.TxPipeline()
	pipe.HSet(ctx, q.key("data"), task.ID, raw)
	pipe.ZAdd(ctx, q.key("delay"), r.Z{Score: score(task.RunAt), Member: task.ID})
	_, err = pipe.Exec(ctx)
	return err
}

// Due leases up to limit tasks whose run time is at or before now.
func (q *TaskQueue) Due(ctx context.Context, now time.Time, limit int) ([]ports.Task, error) {
	ids, err := leaseScript.Run(ctx, q.rdb,
		[]string{q.key("delay"), q.key("leased")},
		fmtScore(now), fmtScore(now.Add(q.lease)), limit,
	).StringSlice()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, nil
		}
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	raws, err := q.rdb.HMGet(ctx, q.key("data"), ids...).Result()
	if err != nil {
		return nil, err
	}

	tasks := make([]ports.Task, 0, len(ids))
	for i, raw := range raws {
		s, ok := raw.(string)
		if !ok {
			// data vanished after an ack raced the lease; drop the orphan id
			q.rdb.ZRem(ctx, q.key("leased"), ids[i])
			continue
		}
		task, _, decodeErr := decodeTask(s)
		if decodeErr != nil {
			if err = q.parkUndecodable(ctx, ids[i], s, decodeErr); err != nil {
				return nil, fmt.Errorf("dead-letter undecodable task %s: %w", ids[i], err)
			}
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// parkUndecodable moves a leased id whose record cannot be decoded into the dead hash,
// keeping the raw payload, so it never holds back the rest of its batch.
func (q *TaskQueue) parkUndecodable(ctx context.Context, id, raw string, cause error) error {
	rec, err := encodeUndecodable(id, raw, cause)
	if err != nil {
		return err
	}

	pipe := q.rdb.TxPipeline()
	pipe.ZRem(ctx, q.key("leased"), id)
	pipe.HDel(ctx, q.key("data"), id)
	pipe.HSet(ctx, q.key("dead"), id, rec)
	_, err = pipe.Exec(ctx)
	return err
}

// Ack forgets a finished task.
func (q *TaskQueue) Ack(ctx context.Context, task ports.Task) error {
	pipe := q.rdb.TxPipeline()
	pipe.ZRem(ctx, q.key("leased"), task.ID)
	pipe.HDel(ctx, q.key("data"), task.ID)
	_, err := pipe.Exec(ctx)
	return err
}

// Retry puts a failed task back into the delay set at the given time.
func (q *TaskQueue) Retry(ctx context.Context, task ports.Task, at time.Time) error {
	task.Attempts++
	task.RunAt = at.UTC()
	raw, err := encodeTask(task, "")
	if err != nil {
		return err
	}

	pipe := q.rdb.TxPipeline()
	pipe.HSet(ctx, q.key("data"), task.ID, raw)
	pipe.ZRem(ctx, q.key("leased"), task.ID)
	pipe.ZAdd(ctx, q.key("delay"), r.Z{Score: score(task.RunAt), Member: task.ID})
	_, err = pipe.Exec(ctx)
	return err
}

// DeadLetter moves a task that exhausted its attempts to the dead hash.
func (q *TaskQueue) DeadLetter(ctx context.Context, task ports.Task, cause error) error {
	lastError := ""
	if cause != nil {
		lastError = cause.Error()
	}
	raw, err := encodeTask(task, lastError)
	if err != nil {
		return err
	}

	pipe := q.rdb.TxPipeline()
	pipe.ZRem(ctx, q.key("leased"), task.ID)
	pipe.HDel(ctx, q.key("data"), task.ID)
	pipe.HSet(ctx, q.key("dead"), task.ID, raw)
	_, err = pipe.Exec(ctx)
	return err
}

// DeadLetters returns the parked tasks with their last error, keyed by task id.
func (q *TaskQueue) DeadLetters(ctx context.Context) (map[string]string, error) {
	entries, err := q.rdb.HGetAll(ctx, q.key("dead")).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(entries))
	for id, raw := range entries {
		rec, decodeErr := decodeRecord(raw)
		if decodeErr != nil {
			return nil, decodeErr
		}
		out[id] = rec.LastError
	}
	return out, nil
}

func score(t time.Time) float64 {
	return float64(t.UnixMilli())
}

func fmtScore(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}
