package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"habit-store/internal/config"
	"habit-store/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Event types published to the habit events topic.
const (
	EventTypeHabitCreated      = "habit.created"
	EventTypeCompletionToggled = "habit.completion_toggled"
	EventTypeHabitDeleted      = "habit.deleted"
	EventTypeDataReset         = "habit.data_reset"
)

// Event is the envelope for every habit event. Payload fields are
// omitted when they do not apply to the event type.
type Event struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	OwnerID   string    `json:"owner_id"`
	Timestamp time.Time `json:"timestamp"`

	HabitID       string `json:"habit_id,omitempty"`
	HabitName     string `json:"habit_name,omitempty"`
	Date          string `json:"date,omitempty"`
	Completed     bool   `json:"completed"`
	CurrentStreak int32  `json:"current_streak"`
	LongestStreak int32  `json:"longest_streak"`
}

// Producer publishes habit events to Kafka.
type Producer struct {
	writer *kafka.Writer
}

// NewProducer creates a new Kafka producer.
func NewProducer(cfg *config.KafkaConfig) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    10,
		BatchTimeout: 10 * time.Millisecond,
		Async:        true, // Async for better performance
	}

	return &Producer{
		writer: writer,
	}
}

func (p *Producer) publish(ctx context.Context, event *Event) error {
	event.EventID = uuid.New().String()
	event.Timestamp = time.Now().UTC()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	message := kafka.Message{
		Key:   []byte(event.OwnerID),
		Value: data,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.EventType, err)
	}

	return nil
}

// PublishHabitCreated publishes a habit creation event.
func (p *Producer) PublishHabitCreated(ctx context.Context, ownerID string, habit *entity.Habit) error {
	return p.publish(ctx, &Event{
		EventType: EventTypeHabitCreated,
		OwnerID:   ownerID,
		HabitID:   habit.ID,
		HabitName: habit.Name,
	})
}

// PublishCompletionToggled publishes a completion toggle event with the
// recomputed streak values.
func (p *Producer) PublishCompletionToggled(ctx context.Context, ownerID string, habit *entity.Habit, date string, completed bool) error {
	return p.publish(ctx, &Event{
		EventType:     EventTypeCompletionToggled,
		OwnerID:       ownerID,
		HabitID:       habit.ID,
		HabitName:     habit.Name,
		Date:          date,
		Completed:     completed,
		CurrentStreak: habit.CurrentStreak,
		LongestStreak: habit.LongestStreak,
	})
}

// PublishHabitDeleted publishes a habit deletion event.
func (p *Producer) PublishHabitDeleted(ctx context.Context, ownerID, habitID string) error {
	return p.publish(ctx, &Event{
		EventType: EventTypeHabitDeleted,
		OwnerID:   ownerID,
		HabitID:   habitID,
	})
}

// PublishDataReset publishes a reset-all event.
func (p *Producer) PublishDataReset(ctx context.Context, ownerID string) error {
	return p.publish(ctx, &Event{
		EventType: EventTypeDataReset,
		OwnerID:   ownerID,
	})
}

// Close closes the Kafka producer.
func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
