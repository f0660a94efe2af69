package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"counsel/internal/audit"
)

type recordingProducer struct {
	records []*kgo.Record
	err     error
}

func (p *recordingProducer) ProduceSync(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	results := make(kgo.ProduceResults, 0, len(rs))
	for _, r := range rs {
		p.records = append(p.records, r)
		results = append(results, kgo.ProduceResult{Record: r, Err: p.err})
	}
	return results
}

func TestAppendProducesKeyedRecord(t *testing.T) {
	producer := &recordingProducer{}
	sink := NewWithProducer(producer, "counsel.audit")

	e := audit.Event{Action: audit.ActionApplicationSubmitted, Subject: "app-7", PrisonerID: "p1", LawyerID: "l1"}
	require.NoError(t, sink.Append(context.Background(), e))

	require.Len(t, producer.records, 1)
	rec := producer.records[0]
	assert.Equal(t, "counsel.audit", rec.Topic)
	assert.Equal(t, []byte("app-7"), rec.Key)
	require.Len(t, rec.Headers, 1)
	assert.Equal(t, "action", rec.Headers[0].Key)

	decoded, err := Decode(rec)
	require.NoError(t, err)
	assert.Equal(t, e, decoded)
}

func TestAppendPropagatesProduceError(t *testing.T) {
	producer := &recordingProducer{err: errors.New("broker down")}
	sink := NewWithProducer(producer, "counsel.audit")

	err := sink.Append(context.Background(), audit.Event{Action: audit.ActionApplicationSubmitted, Subject: "a"})
	assert.ErrorContains(t, err, "broker down")
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode(&kgo.Record{Value: []byte("{")})
	assert.Error(t, err)
}
