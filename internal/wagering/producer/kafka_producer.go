package producer

import (
	"context"
	"encoding/json"
	"time"

	skafka "github.com/radieske/treasure-table-poc/internal/shared/kafka"
	"github.com/radieske/treasure-table-poc/pkg/contracts/events"
)

// KafkaPublisher publica eventos de aposta no tópico bet_placed.
// Integração opcional: um publisher nil simplesmente não publica.
type KafkaPublisher struct {
	Writer *skafka.Writer
	Topic  string
}

func NewKafkaPublisher(w *skafka.Writer, topic string) *KafkaPublisher {
	return &KafkaPublisher{Writer: w, Topic: topic}
}

// PublishBetPlaced serializa o evento e envia usando o id da aposta como chave,
// mantendo eventos da mesma aposta na mesma partição.
func (p *KafkaPublisher) PublishBetPlaced(ctx context.Context, e events.BetPlaced) error {
	if p == nil || p.Writer == nil {
		return nil
	}
	e.TsUnixMs = time.Now().UnixMilli()
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return skafka.WriteJSON(ctx, p.Writer, e.BetID, b)
}
