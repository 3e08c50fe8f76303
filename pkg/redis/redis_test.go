package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewFromRedis(rdb, zap.NewNop()), mr
}

func TestSession_SetGetDelete(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	if err := c.SetSession(ctx, "abc", []byte(`{"token":"t"}`), time.Hour); err != nil {
		t.Fatalf("SetSession 失败: %v", err)
	}

	got, err := c.GetSession(ctx, "abc")
	if err != nil {
		t.Fatalf("GetSession 失败: %v", err)
	}
	if string(got) != `{"token":"t"}` {
		t.Errorf("期望原样返回，实际 %s", got)
	}

	if ttl := mr.TTL(sessionPrefix + "abc"); ttl != time.Hour {
		t.Errorf("期望 TTL=1h，实际 %v", ttl)
	}

	if err := c.DeleteSession(ctx, "abc"); err != nil {
		t.Fatalf("DeleteSession 失败: %v", err)
	}
	if _, err := c.GetSession(ctx, "abc"); err != ErrNil {
		t.Errorf("删除后期望 ErrNil，实际 %v", err)
	}
}

func TestSession_Expiry(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	_ = c.SetSession(ctx, "exp", []byte("x"), time.Minute)
	mr.FastForward(2 * time.Minute)

	if _, err := c.GetSession(ctx, "exp"); err != ErrNil {
		t.Errorf("过期后期望 ErrNil，实际 %v", err)
	}
}

func TestDeleteSession_Missing(t *testing.T) {
	c, _ := newTestClient(t)
	if err := c.DeleteSession(context.Background(), "missing"); err != nil {
		t.Errorf("删除不存在的键不应报错: %v", err)
	}
}

func TestCheckRateLimit(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := c.CheckRateLimit(ctx, "login:1.2.3.4", 3, time.Minute)
		if err != nil {
			t.Fatalf("CheckRateLimit 失败: %v", err)
		}
		if !ok {
			t.Fatalf("第 %d 次请求不应被限流", i+1)
		}
	}

	ok, err := c.CheckRateLimit(ctx, "login:1.2.3.4", 3, time.Minute)
	if err != nil {
		t.Fatalf("CheckRateLimit 失败: %v", err)
	}
	if ok {
		t.Error("超过上限后应被限流")
	}

	// 不同 key 互不影响
	ok, _ = c.CheckRateLimit(ctx, "login:5.6.7.8", 3, time.Minute)
	if !ok {
		t.Error("其他 IP 不应被限流")
	}
}
