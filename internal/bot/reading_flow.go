package bot

import (
	"context"
	"errors"
	"strings"

	"fleetfuel/internal/numfmt"
	"fleetfuel/internal/service"
)

// Callback data of the full-tank choice buttons.
const (
	callbackFullYes = "full_yes"
	callbackFullNo  = "full_no"
)

// startNewReading opens the reading workflow and lists the available IDs.
func (d *Dispatcher) startNewReading(ctx context.Context, in Incoming) {
	ids, err := d.services.Fleet.ListObjectIDs(ctx)
	if err != nil {
		d.storeFailure(in, "list_objects", err)
		return
	}
	if len(ids) == 0 {
		d.send(in.ChatID, "⚠️ The 'Objects' sheet is empty.")
		return
	}
	d.sessions.put(in.UserID, &session{Flow: flowNewReading, Step: stepObjectID})
	d.send(in.ChatID, "Enter the object ID:\nAvailable: "+strings.Join(ids, ", "))
}

func (d *Dispatcher) readingObjectID(in Incoming, sess *session, text string) {
	sess.ObjectID = strings.TrimSpace(text)
	sess.Step = stepHours
	d.send(in.ChatID, "Enter the current engine hours ⏱️ (a number):")
}

// readingHours validates the entered value at entry time: strict parse, then
// monotonicity against the stored record. Both failures re-prompt the same
// state; an unknown object ends the workflow.
func (d *Dispatcher) readingHours(ctx context.Context, in Incoming, sess *session, text string) {
	entered, err := numfmt.ParseStrict(text)
	if err != nil {
		d.send(in.ChatID, msgEnterNumber)
		return
	}

	stored, err := d.findObject(ctx, sess.ObjectID)
	if err != nil {
		d.storeFailure(in, "find_object", err)
		return
	}
	if stored == nil {
		d.sessions.drop(in.UserID)
		d.send(in.ChatID, "⚠️ Object "+sess.ObjectID+" not found. Use /start")
		return
	}
	if entered < stored.EngineHours {
		merr := &service.MonotonicityError{Entered: entered, Minimum: stored.EngineHours}
		d.send(in.ChatID, "❌ "+merr.Error())
		return
	}

	sess.NewHours = entered
	sess.Step = stepFuelAmount
	d.send(in.ChatID, "How many liters were refueled? ⛽ (0 is fine):")
}

func (d *Dispatcher) readingFuelAmount(in Incoming, sess *session, text string) {
	added, err := numfmt.ParseStrict(text)
	if err != nil {
		d.send(in.ChatID, msgEnterNumber)
		return
	}
	sess.FuelAdded = added
	sess.Step = stepFullTankChoice
	d.askFullTank(in)
}

func (d *Dispatcher) askFullTank(in Incoming) {
	err := d.sender.SendChoice(in.ChatID, "Is the tank full after refueling?", []Choice{
		{Label: "Yes, full", Data: callbackFullYes},
		{Label: "No", Data: callbackFullNo},
	})
	if err != nil && d.log != nil {
		d.log.Errorw("send_choice_failed", "err", err, "chat_id", in.ChatID)
	}
}

// handleCallback answers the full-tank buttons; it is the terminal
// transition of the reading workflow.
func (d *Dispatcher) handleCallback(ctx context.Context, in Incoming) {
	if in.CallbackData != callbackFullYes && in.CallbackData != callbackFullNo {
		return
	}
	sess := d.sessions.get(in.UserID)
	if sess == nil || sess.Flow != flowNewReading || sess.Step != stepFullTankChoice {
		d.send(in.ChatID, msgChooseAction)
		return
	}
	d.sessions.drop(in.UserID)

	res, err := d.services.Readings.Apply(ctx, service.ReadingInput{
		ObjectID:  sess.ObjectID,
		NewHours:  sess.NewHours,
		FuelAdded: sess.FuelAdded,
		FullTank:  in.CallbackData == callbackFullYes,
		UserID:    in.UserID,
		Username:  in.Username,
	})
	if err != nil {
		// The stored hours may have advanced since entry; the commit-time
		// check presents the same message shape instead of crashing.
		var merr *service.MonotonicityError
		switch {
		case errors.As(err, &merr):
			d.send(in.ChatID, "❌ "+merr.Error())
		case errors.Is(err, service.ErrObjectNotFound):
			d.send(in.ChatID, "❌ Object not found.")
		default:
			d.storeFailure(in, "apply_reading", err)
		}
		return
	}

	d.send(in.ChatID, renderSaved(res))
	d.sendMenu(in, "Done ✅")
}

func (d *Dispatcher) findObject(ctx context.Context, objectID string) (*service.ObjectReport, error) {
	rep, err := d.services.Reports.Single(ctx, objectID)
	if err != nil {
		if errors.Is(err, service.ErrObjectNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rep, nil
}
