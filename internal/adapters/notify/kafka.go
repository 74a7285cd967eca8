package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	lg "github.com/Miraines/MoonyAndStarry/menu-service/internal/infra/log"
)

// VerificationRequested is published for an external mail service to deliver.
type VerificationRequested struct {
	Email       string    `json:"email"`
	Link        string    `json:"link"`
	RequestedAt time.Time `json:"requested_at"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaNotifier struct {
	writer messageWriter
	log    *zap.Logger
	now    func() time.Time
}

func NewKafkaNotifier(brokers []string, topic string, log *zap.Logger) *KafkaNotifier {
	return &KafkaNotifier{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			WriteTimeout: 10 * time.Second,
		},
		log: log,
		now: time.Now,
	}
}

func (k *KafkaNotifier) SendVerificationEmail(ctx context.Context, to, link string) error {
	value, err := json.Marshal(VerificationRequested{
		Email:       to,
		Link:        link,
		RequestedAt: k.now().UTC(),
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// keyed by recipient so one user's requests stay ordered on a partition
	err = k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(to),
		Value: value,
		Time:  k.now(),
	})
	if err != nil {
		return err
	}
	k.log.Info("verification event published", lg.Email(to))
	return nil
}

func (k *KafkaNotifier) Close() error {
	return k.writer.Close()
}
