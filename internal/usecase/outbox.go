package usecase

import "time"

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const (
	ProductCreated OutboxEventType = "product.created"
	ProductUpdated OutboxEventType = "product.updated"
	ProductDeleted OutboxEventType = "product.deleted"
)

// OutboxEvent — событие изменения каталога, записываемое в одной
// транзакции с мутацией и публикуемое воркером в Kafka.
type OutboxEvent struct {
	ID          int64
	EventID     string // uuid
	EventType   OutboxEventType
	ProductID   string
	Payload     []byte // JSON ProductChangeEvent
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// ProductChangeEvent — полезная нагрузка события для потребителей топика.
type ProductChangeEvent struct {
	EventID        string        `json:"event_id"`
	EventTimestamp int64         `json:"event_timestamp"`
	Operation      string        `json:"operation"` // created | updated | deleted
	ProductID      string        `json:"product_id"`
	Product        *EventProduct `json:"product,omitempty"`
}

// EventProduct — компактный снимок товара внутри события.
type EventProduct struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	OriginalPrice int64  `json:"original_price_kurus"`
	CurrentPrice  int64  `json:"current_price_kurus"`
	InStock       bool   `json:"in_stock"`
}
func nowUnix() int64 {
	return time.Now().UTC().Unix()
}

func NewOutboxEvent(eventID string, eventType OutboxEventType, productID string, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:   eventID,
		EventType: eventType,
		ProductID: productID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now().UTC(),
	}
}
