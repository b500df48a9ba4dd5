// FILE: internal/service/generation_consumer_service.go
// Worker side of the plan-generation workflow: consumes queued jobs,
// drives them running -> completed/failed, and stores the draft.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Fordjour12/monthly-zen-sub002/internal/dto"
	"github.com/Fordjour12/monthly-zen-sub002/internal/entity"
	"github.com/Fordjour12/monthly-zen-sub002/internal/pkg/logger"
	"github.com/Fordjour12/monthly-zen-sub002/internal/repository/memory"
	"github.com/Fordjour12/monthly-zen-sub002/pkg/llm"
	plannerEvents "github.com/Fordjour12/monthly-zen-sub002/pkg/planner/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IGenerationConsumerService interface {
	Consume(ctx context.Context) error
}

type generationConsumerService struct {
	pubSub        *gochannel.GoChannel
	topicName     string
	jobService    GenerationJobService
	draftService  DraftService
	llmProvider   llm.LLMProvider
	inflight      *memory.InflightRepository
	events        plannerEvents.Publisher
	logger        logger.ILogger
	draftTTLHours int
}

func NewGenerationConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	jobService GenerationJobService,
	draftService DraftService,
	llmProvider llm.LLMProvider,
	inflight *memory.InflightRepository,
	events plannerEvents.Publisher,
	logger logger.ILogger,
	draftTTLHours int,
) IGenerationConsumerService {
	return &generationConsumerService{
		pubSub:        pubSub,
		topicName:     topicName,
		jobService:    jobService,
		draftService:  draftService,
		llmProvider:   llmProvider,
		inflight:      inflight,
		events:        events,
		logger:        logger,
		draftTTLHours: draftTTLHours,
	}
}

func (cs *generationConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *generationConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.GenerationJobMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("PLANNER", "Failed to unmarshal job message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // malformed, retrying cannot help
		return
	}

	running := string(entity.JobStatusRunning)
	job, err := cs.jobService.UpdateJob(ctx, payload.JobId, &dto.UpdateJobRequest{Status: &running})
	if err != nil {
		var transitionErr *dto.InvalidTransitionError
		if errors.As(err, &transitionErr) {
			// Already picked up (redelivery after restart); nothing to do.
			cs.logger.Warn("PLANNER", "Job already past pending, skipping", map[string]interface{}{
				"job_id": payload.JobId,
			})
			msg.Ack()
			return
		}
		cs.logger.Error("PLANNER", "Failed to mark job running", map[string]interface{}{
			"job_id": payload.JobId,
			"error":  err.Error(),
		})
		msg.Nack()
		return
	}
	if job == nil {
		cs.logger.Error("PLANNER", "Job not found", map[string]interface{}{
			"job_id": payload.JobId,
		})
		msg.Ack()
		return
	}

	var req dto.GeneratePlanRequest
	if err := json.Unmarshal(job.RequestPayload, &req); err != nil {
		cs.failJob(ctx, job, "stored request payload is unreadable: "+err.Error())
		msg.Ack()
		return
	}

	responseText, err := cs.llmProvider.Generate(ctx, buildPlanPrompt(&req), llm.WithTemperature(0.7))
	if err != nil {
		cs.failJob(ctx, job, err.Error())
		msg.Ack() // terminal for this attempt; the user retries explicitly
		return
	}

	planData, err := json.Marshal(map[string]interface{}{
		"month_year": req.MonthYear,
		"goals":      req.Goals,
		"plan_text":  responseText,
	})
	if err != nil {
		cs.failJob(ctx, job, "failed to encode plan data: "+err.Error())
		msg.Ack()
		return
	}

	draft, err := cs.draftService.CreateDraft(ctx, job.UserId, planData, req.GoalPreferenceId, req.MonthYear, cs.draftTTLHours)
	if err != nil {
		cs.logger.Error("PLANNER", "Failed to store draft", map[string]interface{}{
			"job_id": job.Id,
			"error":  err.Error(),
		})
		msg.Nack() // store hiccup, safe to retry from running
		return
	}

	completed := string(entity.JobStatusCompleted)
	if _, err := cs.jobService.UpdateJob(ctx, job.Id, &dto.UpdateJobRequest{
		Status:       &completed,
		ResponseText: &responseText,
		PlanId:       &draft.Id,
	}); err != nil {
		cs.logger.Error("PLANNER", "Failed to mark job completed", map[string]interface{}{
			"job_id": job.Id,
			"error":  err.Error(),
		})
		msg.Nack()
		return
	}

	cs.inflight.Clear(job.UserId)
	cs.events.PublishGenerationCompleted(ctx, job.Id, job.UserId, draft.DraftKey)
	cs.logger.Info("PLANNER", "Plan generation completed", map[string]interface{}{
		"job_id":    job.Id,
		"draft_key": draft.DraftKey,
	})
	msg.Ack()
}

func (cs *generationConsumerService) failJob(ctx context.Context, job *entity.PlanGenerationJob, reason string) {
	failed := string(entity.JobStatusFailed)
	if _, err := cs.jobService.UpdateJob(ctx, job.Id, &dto.UpdateJobRequest{
		Status:       &failed,
		ErrorMessage: &reason,
	}); err != nil {
		cs.logger.Error("PLANNER", "Failed to mark job failed", map[string]interface{}{
			"job_id": job.Id,
			"error":  err.Error(),
		})
	}

	cs.inflight.Clear(job.UserId)
	cs.events.PublishGenerationFailed(ctx, job.Id, job.UserId, reason)
	cs.logger.Warn("PLANNER", "Plan generation failed", map[string]interface{}{
		"job_id": job.Id,
		"reason": reason,
	})
}

func buildPlanPrompt(req *dto.GeneratePlanRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a structured monthly plan for %s.\n\nGoals:\n", req.MonthYear)
	for _, goal := range req.Goals {
		fmt.Fprintf(&b, "- %s\n", goal)
	}
	if len(req.FocusAreas) > 0 {
		b.WriteString("\nFocus areas:\n")
		for _, area := range req.FocusAreas {
			fmt.Fprintf(&b, "- %s\n", area)
		}
	}
	b.WriteString("\nBreak the month into weekly milestones with concrete daily actions.")
	return b.String()
}
