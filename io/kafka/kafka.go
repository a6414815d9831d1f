// Package kafka adds Kafka egress helpers on top of statefun.Effects,
// for workers whose module deploys a Kafka egress binding (SPEC_FULL C9).
package kafka

import (
	"github.com/statefun-io/statefun-go"
	"github.com/statefun-io/statefun-go/internal"
)

// Egress sends value to the Kafka topic topic via the egress identified
// by id, with no explicit record key.
func Egress(e *statefun.Effects, id statefun.EgressIdentifier, topic string, value statefun.Message) error {
	return KeyedEgress(e, id, topic, "", value)
}

// KeyedEgress sends value to the Kafka topic topic via the egress
// identified by id, setting key on the produced record.
func KeyedEgress(e *statefun.Effects, id statefun.EgressIdentifier, topic, key string, value statefun.Message) error {
	record := &internal.KafkaProducerRecord{
		Topic:      topic,
		Key:        key,
		ValueBytes: value.Value,
	}
	msg := statefun.NewMessage(internal.KafkaProducerRecordTypename, record.Marshal())
	return e.Egress(id, msg)
}
