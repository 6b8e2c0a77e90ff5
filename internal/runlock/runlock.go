package runlock

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Lock 基于 redis SETNX 的排班互斥锁
// 同一个排班表上不允许并发执行两次排班，否则会在同一批班次上产生竞争，
// 不同排班表之间互不影响
// TTL 用来兜底：进程异常退出时锁会自动过期
type Lock struct {
	client           *redis.Client
	ttl              time.Duration
	operationTimeout time.Duration
}

func New(client *redis.Client, ttl time.Duration, operationTimeout time.Duration) *Lock {
	return &Lock{
		client:           client,
		ttl:              ttl,
		operationTimeout: operationTimeout,
	}
}

// Acquire 尝试获取某个排班表的排班锁，返回是否获取成功
func (l *Lock) Acquire(scheduleID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), l.operationTimeout)
	defer cancel()

	return l.client.SetNX(ctx, lockKey(scheduleID), 1, l.ttl).Result()
}

// Release 释放某个排班表的排班锁
func (l *Lock) Release(scheduleID int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), l.operationTimeout)
	defer cancel()

	return l.client.Del(ctx, lockKey(scheduleID)).Err()
}

func lockKey(scheduleID int64) string {
	return fmt.Sprintf("assignment_run_lock_%d", scheduleID)
}
