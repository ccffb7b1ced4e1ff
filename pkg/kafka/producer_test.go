package kafka

import (
	"testing"

	kafkago "github.com/segmentio/kafka-go"
)

func TestNewProducer(t *testing.T) {
	p := NewProducer(Config{
		Brokers:       []string{"localhost:9092", "localhost:9093"},
		ConsumerGroup: "underwriting-service",
	})

	if len(p.brokers) != 2 {
		t.Fatalf("brokers = %d, want 2", len(p.brokers))
	}
	if p.writers == nil || len(p.writers) != 0 {
		t.Fatalf("writers map = %v, want initialized and empty", p.writers)
	}
	if p.transport == nil {
		t.Fatal("expected a transport")
	}
	if p.transport.TLS != nil {
		t.Error("TLS config set without TLS enabled")
	}
	if p.transport.SASL != nil {
		t.Error("SASL mechanism set without SASL enabled")
	}
}

func TestNewProducerWithAuth(t *testing.T) {
	p := NewProducer(Config{
		Brokers:      []string{"kafka:9092"},
		TLS:          true,
		SASLEnabled:  true,
		SASLUsername: "svc-underwriting",
		SASLPassword: "secret",
	})

	if p.transport.TLS == nil {
		t.Error("expected TLS config on transport")
	}
	if p.transport.SASL == nil {
		t.Error("expected SASL mechanism on transport")
	}
}

func TestWriterFor(t *testing.T) {
	p := NewProducer(Config{Brokers: []string{"localhost:9092"}})

	w1 := p.writerFor("underwriting.deals")
	if w1 == nil {
		t.Fatal("expected a writer")
	}
	if _, ok := w1.Balancer.(*kafkago.Hash); !ok {
		t.Errorf("balancer = %T, want *kafka.Hash for keyed ordering", w1.Balancer)
	}
	if w1.RequiredAcks != kafkago.RequireAll {
		t.Errorf("acks = %v, want RequireAll", w1.RequiredAcks)
	}

	// Same topic reuses the writer, a second topic gets its own.
	if w2 := p.writerFor("underwriting.deals"); w1 != w2 {
		t.Error("expected the same writer for the same topic")
	}
	if w3 := p.writerFor("underwriting.deals.dlq"); w1 == w3 {
		t.Error("expected a distinct writer per topic")
	}
	if len(p.writers) != 2 {
		t.Errorf("writers = %d, want 2", len(p.writers))
	}
}

func TestProducerClose(t *testing.T) {
	p := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	_ = p.writerFor("underwriting.deals")
	_ = p.writerFor("underwriting.deals.dlq")

	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if len(p.writers) != 0 {
		t.Errorf("writers after close = %d, want 0", len(p.writers))
	}
}

func TestMessageHeaders(t *testing.T) {
	msg := Message{
		Key:   []byte("deal-123"),
		Value: []byte(`{"requested_amount":"50000"}`),
		Headers: map[string]string{
			"event_type": "underwriting.deal.created",
			"tenant_id":  "tenant-001",
		},
	}

	if string(msg.Key) != "deal-123" {
		t.Errorf("key = %s, want deal-123", msg.Key)
	}
	if msg.Headers["event_type"] != "underwriting.deal.created" {
		t.Errorf("event_type header = %s", msg.Headers["event_type"])
	}

	var empty Message
	if empty.Headers != nil {
		t.Error("zero-value message should have nil headers")
	}
}
