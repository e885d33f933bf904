package service

import (
	"context"
	"log"
	"time"

	"Lee_Feed/internal/model"
	"Lee_Feed/internal/pkg"
	"Lee_Feed/internal/repository/mysql"
)

// Sender outbox 投递函数，可替换（Kafka / 日志）
type Sender func(ctx context.Context, ob *model.FeedOutbox) error

// OutboxRelayer 定时扫 outbox 表，把帖子/举报事件异步投出去
type OutboxRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	interval  time.Duration
	sender    Sender
}

func NewOutboxRelayer(sender Sender) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      &mysql.OutboxRepository{DB: mysql.DB},
		batchSize: 200,
		interval:  time.Second,
		sender:    sender,
	}
}

// Run 启动投递循环，ctx 取消即退出
func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

func (r *OutboxRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.List(ctx, r.batchSize)
	if err != nil {
		log.Printf("outbox query err: %v", err)
		return
	}
	for i := range rows {
		ob := rows[i]
		if err = r.sender(ctx, &ob); err != nil {
			_ = r.repo.RetryUpdate(ctx, ob.ID)
			continue
		}
		_ = r.repo.SuccessUpdate(ctx, ob.ID)
	}
}

// LogSender 默认 sender：没配 Kafka 时只打日志
func LogSender(ctx context.Context, ob *model.FeedOutbox) error {
	log.Printf("OUTBOX SEND type=%s post=%d actor=%d payload=%s", ob.EventType, ob.PostID, ob.ActorID, ob.Payload)
	return nil
}

// KafkaSender 以 post_id 作分区键，同一帖子的事件保序
func KafkaSender(p *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, ob *model.FeedOutbox) error {
		return p.Send(ctx, pkg.MakeKeyFromID(ob.PostID), []byte(ob.Payload))
	}
}
