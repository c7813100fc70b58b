package tableorder

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/events"
	"github.com/google/uuid"

	"github.com/appetiteclub/tableorder/internal/enums/itemstatus"
	"github.com/appetiteclub/tableorder/internal/event"
)

// Submitter fans out one request per eligible item and settles each item
// independently. A failing item never blocks or cancels its siblings; the
// call returns only after every dispatched item reached a terminal status.
type Submitter struct {
	dispatcher ItemDispatcher
	publisher  events.Publisher
	logger     aqm.Logger
}

func NewSubmitter(dispatcher ItemDispatcher, publisher events.Publisher, logger aqm.Logger) *Submitter {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &Submitter{
		dispatcher: dispatcher,
		publisher:  publisher,
		logger:     logger,
	}
}

// Submit dispatches every eligible item of the session concurrently and
// waits for all of them to settle. Individual failures are recorded on the
// session and published as events, never returned as the call's error.
func (s *Submitter) Submit(ctx context.Context, sess *Session) error {
	table := sess.Table()
	if table == "" {
		return &ValidationError{Field: "table", Message: "no active table"}
	}

	dispatches, err := sess.BeginSubmission()
	if err != nil {
		return err
	}
	if len(dispatches) == 0 {
		return nil
	}

	// The wire format carries the table as a number. A token that cannot
	// be converted fails every dispatched item the same way a remote
	// rejection would.
	tableNum, convErr := strconv.Atoi(table)

	submissionID := uuid.New().String()
	s.logger.Info("submitting order items", "submission_id", submissionID, "table", table, "count", len(dispatches))

	var wg sync.WaitGroup
	for _, d := range dispatches {
		wg.Add(1)
		go func(d ItemDispatch) {
			defer wg.Done()
			s.submitOne(ctx, sess, submissionID, table, tableNum, convErr, d)
		}(d)
	}
	wg.Wait()

	return nil
}

func (s *Submitter) submitOne(ctx context.Context, sess *Session, submissionID, table string, tableNum int, convErr error, d ItemDispatch) {
	err := convErr
	if err == nil {
		err = s.dispatcher.SubmitItem(ctx, SubmitItemRequest{
			Code:     d.Code,
			Quantity: d.Quantity,
			Table:    tableNum,
		})
	}

	if err == nil {
		sess.ApplyOutcome(d.Code, d.Gen, itemstatus.Statuses.Success.Code())
		s.publish(ctx, event.EventOrderItemAccepted, submissionID, table, d, "")
		return
	}

	subErr := &SubmissionError{Code: d.Code, Name: d.Name, Reason: err.Error()}
	s.logger.Error("item submission failed", "submission_id", submissionID, "code", d.Code, "error", err)

	if sess.ApplyOutcome(d.Code, d.Gen, itemstatus.Statuses.Error.Code()) {
		sess.SetError(fmt.Sprintf("Could not submit %s", d.Name))
	}
	s.publish(ctx, event.EventOrderItemRejected, submissionID, table, d, subErr.Reason)
}

func (s *Submitter) publish(ctx context.Context, eventType, submissionID, table string, d ItemDispatch, reason string) {
	if s.publisher == nil {
		return
	}

	payload := event.OrderItemSubmissionEvent{
		EventType:    eventType,
		OccurredAt:   time.Now().UTC(),
		SubmissionID: submissionID,
		Table:        table,
		Code:         d.Code,
		Quantity:     d.Quantity,
		Name:         d.Name,
		Reason:       reason,
	}

	msg, _ := json.Marshal(payload)
	if err := s.publisher.Publish(ctx, event.SubmissionsTopic, msg); err != nil {
		s.logger.Errorf("Failed to publish %s event: %v", eventType, err)
	}
}
