package queue_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/JaimeStill/lab-catalog/pkg/lifecycle"
	"github.com/JaimeStill/lab-catalog/pkg/queue"
)

func TestRedis_SubmitPushesToKindList(t *testing.T) {
	mr := miniredis.RunT(t)

	q, err := queue.NewRedis(&queue.RedisConfig{Addr: mr.Addr(), Prefix: "lab"}, 0, discardLogger())
	if err != nil {
		t.Fatalf("NewRedis() error = %v", err)
	}

	task, _ := queue.NewTask("document.parse", parsePayload{DocumentID: "abc"})
	if err := q.Submit(context.Background(), task); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	items, err := mr.List("lab:document.parse")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len(list) = %d, want 1", len(items))
	}
}

func TestRedis_WorkerConsumes(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &queue.RedisConfig{Addr: mr.Addr(), Prefix: "lab"}

	producer, _ := queue.NewRedis(cfg, 0, discardLogger())
	consumer, _ := queue.NewRedis(cfg, 1, discardLogger())

	got := make(chan string, 1)
	consumer.Handle("document.parse", func(ctx context.Context, task queue.Task) error {
		p, err := queue.Decode[parsePayload](task)
		if err != nil {
			return err
		}
		got <- p.DocumentID
		return nil
	})

	lc := lifecycle.New()
	if err := consumer.Start(lc); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	lc.WaitForStartup()

	task, _ := queue.NewTask("document.parse", parsePayload{DocumentID: "xyz"})
	if err := producer.Submit(context.Background(), task); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	select {
	case id := <-got:
		if id != "xyz" {
			t.Errorf("DocumentID = %q, want xyz", id)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for redis task")
	}

	if err := lc.Shutdown(3 * time.Second); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestNewRedis_RequiresAddr(t *testing.T) {
	if _, err := queue.NewRedis(&queue.RedisConfig{}, 1, discardLogger()); err == nil {
		t.Error("NewRedis() should fail without addr")
	}
}
