package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/calgorix23-creator/AttendEase-v2/internal/engine"
	"github.com/calgorix23-creator/AttendEase-v2/internal/models"
	"github.com/calgorix23-creator/AttendEase-v2/internal/service"
	amqp "github.com/rabbitmq/amqp091-go"
)

// GatewayPayment is the confirmation the payment gateway sends once a
// trainee has paid for a package outside the app.
type GatewayPayment struct {
	PaymentID string `json:"payment_id"`
	TraineeID string `json:"trainee_id"`
	PackageID string `json:"package_id"`
}

type PaymentCompleter interface {
	Complete(ctx context.Context, paymentID, traineeID, packageID string) (*models.Payment, error)
}

type PaymentConsumer struct {
	purchases PaymentCompleter
}

func NewPaymentConsumer(purchases PaymentCompleter) *PaymentConsumer {
	return &PaymentConsumer{purchases: purchases}
}

// Start handles deliveries until msgs is closed.
func (pc *PaymentConsumer) Start(ctx context.Context, msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			pc.handleMessage(ctx, msg)
		}
		log.Println("[PaymentConsumer] channel closed, stopping consumer")
	}()
}

func (pc *PaymentConsumer) handleMessage(ctx context.Context, msg amqp.Delivery) {
	var p GatewayPayment
	if err := json.Unmarshal(msg.Body, &p); err != nil {
		log.Printf("[PaymentConsumer] failed to unmarshal: %v", err)
		msg.Nack(false, false)
		return
	}

	payment, err := pc.purchases.Complete(ctx, p.PaymentID, p.TraineeID, p.PackageID)
	switch {
	case err == nil:
		log.Printf("[PaymentConsumer] credited %d to trainee %s (payment %s)", payment.Credits, payment.TraineeID, payment.ID)
		msg.Ack(false)
	case errors.Is(err, service.ErrPaymentExists):
		log.Printf("[PaymentConsumer] payment %s already recorded, skipping", p.PaymentID)
		msg.Ack(false)
	case errors.Is(err, service.ErrPackageNotFound) || engine.CodeOf(err) != "":
		log.Printf("[PaymentConsumer] rejected payment %s: %v", p.PaymentID, err)
		msg.Nack(false, false)
	default:
		log.Printf("[PaymentConsumer] failed to record payment %s: %v", p.PaymentID, err)
		msg.Nack(false, true) // requeue
	}
}
