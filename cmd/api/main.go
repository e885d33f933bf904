package main

import (
	"context"
	"log"
	"os"
	"strings"

	"Lee_Feed/internal/model"
	"Lee_Feed/internal/pkg"
	"Lee_Feed/internal/repository/mysql"
	"Lee_Feed/internal/repository/redis"
	"Lee_Feed/internal/router"
	"Lee_Feed/internal/service"
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	dsn := envOr("FEED_MYSQL_DSN", "user:password@tcp(127.0.0.1:3306)/feed?charset=utf8mb4&parseTime=True")
	if err := mysql.InitDB(dsn); err != nil {
		panic(err)
	}

	// 连接redis
	if err := redis.Init(envOr("FEED_REDIS_ADDR", "127.0.0.1:6379"), os.Getenv("FEED_REDIS_PASSWORD"), 0); err != nil {
		panic(err)
	}

	// 自动建表（开发阶段 OK）
	mysql.DB.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.PostReport{},
		&model.Follow{},
		&model.PostLike{},
		&model.Comment{},
		&model.FeedOutbox{},
	)

	// outbox 投递：配了 broker 走 Kafka，否则只打日志
	sender := service.Sender(service.LogSender)
	if brokers := os.Getenv("FEED_KAFKA_BROKERS"); brokers != "" {
		producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{
			Brokers: strings.Split(brokers, ","),
			Topic:   envOr("FEED_KAFKA_TOPIC", "feed-events"),
		})
		if err != nil {
			log.Fatalf("kafka init err: %v", err)
		}
		defer producer.Close()
		sender = service.KafkaSender(producer)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go service.NewOutboxRelayer(sender).Run(ctx)

	smtpCfg := pkg.SMTPConfig{
		Host:     envOr("FEED_SMTP_HOST", "smtp.qq.com"),
		Port:     587,
		Username: envOr("FEED_SMTP_USER", "no-reply@qq.com"),
		Password: os.Getenv("FEED_SMTP_PASSWORD"),
		From:     envOr("FEED_SMTP_FROM", "NoReply <no-reply@example.com>"),
	}

	// Gin
	r := router.InitRouter(smtpCfg)
	if err := r.Run(envOr("FEED_HTTP_ADDR", ":8080")); err != nil {
		log.Fatalf("http server err: %v", err)
	}
}
