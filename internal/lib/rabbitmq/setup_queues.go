package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

// MaintenanceEventsQueue — очередь событий жизненного цикла работ по ВС.
const MaintenanceEventsQueue = "maintenance_events"

// SetupQueues объявляет очереди, используемые сервисом.
// Повторный вызов безопасен: durable-очереди объявляются идемпотентно.
func SetupQueues(ch *amqp.Channel) error {
	const op = "rabbitmq.SetupQueues"
	_, err := ch.QueueDeclare(
		MaintenanceEventsQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
