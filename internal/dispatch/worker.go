package dispatch

import (
	"context"
	"fmt"

	"leadintel_backend/internal/delivery/email"
	"leadintel_backend/internal/delivery/whatsapp"
	"leadintel_backend/internal/followup"
	"leadintel_backend/platform/config"
	"leadintel_backend/platform/logger"

	"github.com/hibiken/asynq"
)

type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	engine   Engine
	email    email.Sender
	whatsapp *whatsapp.Client
	log      *logger.Logger
}

func NewWorker(cfg config.DispatchConfig, engine Engine, emailSender email.Sender, waClient *whatsapp.Client, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:   server,
		mux:      mux,
		engine:   engine,
		email:    emailSender,
		whatsapp: waClient,
		log:      log,
	}

	mux.HandleFunc(TaskFollowUpAction, w.handleFollowUpAction)

	return w, nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("dispatch worker stopped", "error", err)
	}
}

// handleFollowUpAction delivers one action and reports the outcome to the
// engine. Delivery failures mark the action failed rather than retrying
// the task: the scheduler state is the source of truth, and a retried
// task would find the action already terminal.
func (w *Worker) handleFollowUpAction(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseFollowUpActionPayload(task)
	if err != nil {
		return err
	}

	action := followup.Action{
		ID:         payload.ActionID,
		LeadID:     payload.LeadID,
		Type:       followup.ActionType(payload.ActionType),
		TemplateID: payload.TemplateID,
	}

	message, lead, ok := w.engine.Render(action)
	if !ok {
		w.engine.CompleteAction(ctx, payload.ActionID, false, payload.ActionType, "no lead snapshot")
		return nil
	}

	deliverErr := w.deliver(ctx, action, message, lead.Email, lead.Phone)
	success := deliverErr == nil
	errMsg := ""
	if deliverErr != nil {
		errMsg = deliverErr.Error()
		w.log.Warn("follow-up delivery failed", "action_id", payload.ActionID, "channel", payload.ActionType, "error", deliverErr)
	}

	w.engine.CompleteAction(ctx, payload.ActionID, success, payload.ActionType, errMsg)
	w.log.ActionDispatched(payload.ActionID, payload.LeadID, payload.ActionType, success)
	return nil
}

func (w *Worker) deliver(ctx context.Context, action followup.Action, message followup.RenderedMessage, toEmail, toPhone string) error {
	switch action.Type {
	case followup.ActionEmail:
		if toEmail == "" {
			return fmt.Errorf("lead has no email address")
		}
		if message.Body == "" {
			return fmt.Errorf("no content rendered for template %q", action.TemplateID)
		}
		return w.email.SendFollowUp(ctx, toEmail, message.Subject, message.Body)
	case followup.ActionWhatsApp:
		if message.Body == "" {
			return fmt.Errorf("no content rendered for template %q", action.TemplateID)
		}
		return w.whatsapp.SendMessage(ctx, toPhone, message.Body)
	default:
		return fmt.Errorf("channel %s is not automated", action.Type)
	}
}
