package internal

import "google.golang.org/protobuf/encoding/protowire"

// KafkaProducerRecordTypename is the coordinator-recognized TypeName for a
// KafkaProducerRecord egress payload, per spec §6.
const KafkaProducerRecordTypename = "type.googleapis.com/io.statefun.sdk.egress.KafkaProducerRecord"

// KafkaProducerRecord mirrors io.statefun.sdk.egress.KafkaProducerRecord.
type KafkaProducerRecord struct {
	Topic      string
	Key        string
	ValueBytes []byte
}

func (m *KafkaProducerRecord) Marshal() []byte {
	if m == nil {
		return nil
	}
	var b []byte
	b = appendString(b, 1, m.Topic)
	b = appendString(b, 2, m.Key)
	b = appendBytes(b, 3, m.ValueBytes)
	return b
}

func UnmarshalKafkaProducerRecord(b []byte) (*KafkaProducerRecord, error) {
	m := &KafkaProducerRecord{}
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeString(typ, rest)
			if err != nil {
				return 0, err
			}
			m.Topic = v
			return n, nil
		case 2:
			v, n, err := consumeString(typ, rest)
			if err != nil {
				return 0, err
			}
			m.Key = v
			return n, nil
		case 3:
			v, n, err := consumeBytes(typ, rest)
			if err != nil {
				return 0, err
			}
			m.ValueBytes = v
			return n, nil
		default:
			return skipField(typ, rest)
		}
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}
